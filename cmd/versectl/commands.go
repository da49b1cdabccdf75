package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/quran-verse-api/internal/session"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
)

const fetchFailed = "failed to fetch verse, please try again"

var (
	removeFavorite string
	removeHistory  string
	serverHistory  bool
	historyLimit   int
	prayerCity     string
	prayerCountry  string
	prayerMethod   int
	tafsirID       int
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random verse",
	Args:  cobra.NoArgs,
	RunE:  runFetch(func(cmd *cobra.Command, args []string) error { _, err := app.session.Random(cmd.Context()); return err }),
}

var showCmd = &cobra.Command{
	Use:   "show <surah> <verse> | show <surah:verse>",
	Short: "Show a verse by address",
	Example: `  versectl show 2 255
  versectl show 36:58`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFetch(func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddressArgs(args)
		if err != nil {
			return err
		}
		_, err = app.session.Load(cmd.Context(), addr)
		return err
	}),
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next verse of the current surah",
	Args:  cobra.NoArgs,
	RunE:  runFetch(func(cmd *cobra.Command, args []string) error { _, err := app.session.Next(cmd.Context()); return err }),
}

var prevCmd = &cobra.Command{
	Use:     "prev",
	Aliases: []string{"previous"},
	Short:   "Show the previous verse of the current surah",
	Args:    cobra.NoArgs,
	RunE:    runFetch(func(cmd *cobra.Command, args []string) error { _, err := app.session.Previous(cmd.Context()); return err }),
}

var recitersCmd = &cobra.Command{
	Use:   "reciters",
	Short: "List available reciters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reciters, err := app.client.Reciters(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch reciters: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderReciters(reciters, app.session.Snapshot().Reciter))
		return nil
	},
}

var reciterCmd = &cobra.Command{
	Use:   "reciter <identifier>",
	Short: "Switch reciter and refresh the current verse's audio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := app.session.ChangeReciter(cmd.Context(), args[0])
		if err != nil {
			cmd.PrintErrln(renderError(fetchFailed))
			return err
		}
		if v == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Reciter set to %s\n", args[0])
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderVerse(app.session.Snapshot()))
		return nil
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Add or remove the current verse from favorites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		added, err := app.session.ToggleFavorite(cmd.Context())
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintln(cmd.OutOrStdout(), "Added to favorites")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Removed from favorites")
		}
		return nil
	},
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorites, or remove one with --remove",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if removeFavorite != "" {
			addr, err := verse.ParseAddress(removeFavorite)
			if err != nil {
				return err
			}
			removed, err := app.session.RemoveFavorite(cmd.Context(), addr)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%s is not a favorite", addr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", addr)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderFavorites(app.session.Favorites(cmd.Context())))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List viewed verses, or remove one with --remove",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serverHistory {
			verses, err := app.client.History(cmd.Context(), historyLimit)
			if err != nil {
				return fmt.Errorf("failed to fetch history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderServerHistory(verses))
			return nil
		}

		if removeHistory != "" {
			addr, err := verse.ParseAddress(removeHistory)
			if err != nil {
				return err
			}
			removed, err := app.session.RemoveHistory(cmd.Context(), addr)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%s is not in history", addr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from history\n", addr)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderHistory(app.session.History(cmd.Context())))
		return nil
	},
}

var prayerTimesCmd = &cobra.Command{
	Use:   "prayer-times",
	Short: "Show today's prayer times",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		times, err := app.client.PrayerTimes(cmd.Context(), prayerCity, prayerCountry, prayerMethod)
		if err != nil {
			return fmt.Errorf("failed to fetch prayer times: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderPrayerTimes(times))
		return nil
	},
}

var tafsirCmd = &cobra.Command{
	Use:   "tafsir",
	Short: "List tafsirs, or show one for the current verse with --id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tafsirID == 0 {
			books, err := app.client.Tafsirs(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch tafsir list: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTafsirBooks(books))
			return nil
		}

		snap := app.session.Snapshot()
		if snap.Verse == nil {
			return session.ErrNoVerse
		}
		addr := snap.Verse.Address()

		entry, err := app.client.Tafsir(cmd.Context(), tafsirID, addr)
		if err != nil {
			return fmt.Errorf("failed to load tafsir: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTafsirEntry(addr, entry))
		return nil
	},
}

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print the current verse as shareable text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := app.session.ShareText()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the current verse's recitation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := app.session.Play()
		if errors.Is(err, session.ErrNoAudio) {
			return fmt.Errorf("%w; pick one with `versectl reciter <identifier>`", err)
		}
		return err
	},
}

func registerCommands(root *cobra.Command) {
	favoritesCmd.Flags().StringVar(&removeFavorite, "remove", "", "remove the favorite at surah:verse")

	historyCmd.Flags().StringVar(&removeHistory, "remove", "", "remove the entry at surah:verse")
	historyCmd.Flags().BoolVar(&serverHistory, "server", false, "show what every client fetched recently")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "with --server, how many entries (max 30)")

	prayerTimesCmd.Flags().StringVar(&prayerCity, "city", "", "city (server default if empty)")
	prayerTimesCmd.Flags().StringVar(&prayerCountry, "country", "", "country")
	prayerTimesCmd.Flags().IntVar(&prayerMethod, "method", 0, "calculation method (default 2)")

	tafsirCmd.Flags().IntVar(&tafsirID, "id", 0, "tafsir id from the list")

	root.AddCommand(
		randomCmd,
		showCmd,
		nextCmd,
		prevCmd,
		recitersCmd,
		reciterCmd,
		favoriteCmd,
		favoritesCmd,
		historyCmd,
		prayerTimesCmd,
		tafsirCmd,
		shareCmd,
		playCmd,
	)
}

// runFetch runs a session fetch and prints the verse, or the generic
// failure notice. The last good verse stays current after a failure.
func runFetch(fetch func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fetch(cmd, args); err != nil {
			if errors.Is(err, verse.ErrInvalidAddress) || errors.Is(err, session.ErrNoVerse) {
				return err
			}
			cmd.PrintErrln(renderError(fetchFailed))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderVerse(app.session.Snapshot()))
		return nil
	}
}

func parseAddressArgs(args []string) (verse.Address, error) {
	if len(args) == 1 {
		if !strings.Contains(args[0], ":") {
			return verse.Address{}, fmt.Errorf("%w: use <surah> <verse> or <surah:verse>", verse.ErrInvalidAddress)
		}
		return verse.ParseAddress(args[0])
	}
	return verse.ParseAddressParts(args[0], args[1])
}
