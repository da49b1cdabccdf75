// Command versectl is a terminal client for the Quran verse API. It keeps
// favorites, history and the current verse in a local SQLite file so that
// next/prev work across invocations.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/quran-verse-api/internal/apiclient"
	"github.com/taiwoajasa245/quran-verse-api/internal/localstore"
	"github.com/taiwoajasa245/quran-verse-api/internal/session"
	"github.com/taiwoajasa245/quran-verse-api/pkg/logger"
)

var (
	// Global flags
	configPath string
	verbose    bool

	app *appState
)

type appState struct {
	cfg     *clientConfig
	logger  *zap.Logger
	store   localstore.Store
	client  *apiclient.Client
	session *session.Session
}

var rootCmd = &cobra.Command{
	Use:   "versectl",
	Short: "Quran verse of the day in your terminal",
	Long: `versectl fetches verses from a Quran verse API server, lets you step
through a surah verse by verse, switch reciters, and keep favorites and a
viewing history on this machine.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		state, err := newAppState(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		app = state
		app.session.Restore(cmd.Context())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeApp()
	},
}

// closeApp releases the local store. Cobra skips PersistentPostRun when a
// command fails, so main calls it too.
func closeApp() {
	if app == nil {
		return
	}
	if err := app.store.Close(); err != nil {
		app.logger.Warn("failed to close local store", zap.Error(err))
	}
	_ = app.logger.Sync()
	app = nil
}

func newAppState(out io.Writer) (*appState, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	zl := zap.NewNop()
	if verbose {
		zl, err = logger.New("development")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	var store localstore.Store
	if cfg.StorePath == "" {
		store = localstore.NewMemoryStore()
	} else {
		store, err = localstore.OpenSQLite(cfg.StorePath)
		if err != nil {
			return nil, err
		}
	}

	client := apiclient.New(cfg.APIURL, cfg.Timeout, zl)
	s := session.New(client, store,
		session.WithLogger(zl),
		session.WithReciter(cfg.Reciter),
		session.WithPlayer(&linkPlayer{out: out}),
	)

	return &appState{cfg: cfg, logger: zl, store: store, client: client, session: s}, nil
}

// linkPlayer "plays" by printing the audio URL for an external player.
type linkPlayer struct {
	out io.Writer
	url string
}

func (p *linkPlayer) Load(url string) error {
	p.url = url
	return nil
}

func (p *linkPlayer) Play() error {
	_, err := fmt.Fprintf(p.out, "▶ %s\n", p.url)
	return err
}

func (p *linkPlayer) Stop() {}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./versectl.yaml or ~/.config/versectl/versectl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")

	registerCommands(rootCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeApp()
	if err != nil {
		stop()
		os.Exit(1)
	}
}
