package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taiwoajasa245/quran-verse-api/internal/prayer"
	"github.com/taiwoajasa245/quran-verse-api/internal/session"
	"github.com/taiwoajasa245/quran-verse-api/internal/tafsir"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7AA2F7"))

	arabicStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E0AF68")).
			Padding(1, 2)

	translationStyle = lipgloss.NewStyle().
				Italic(true).
				Padding(0, 2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565F89"))

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0AF68"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F7768E"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B4261")).
			Padding(0, 1)
)

func renderVerse(snap session.Snapshot) string {
	v := snap.Verse
	if v == nil {
		return mutedStyle.Render("No verse loaded. Try `versectl random`.")
	}

	star := ""
	if snap.Favorite {
		star = favoriteStyle.Render(" ★")
	}

	title := titleStyle.Render(fmt.Sprintf("%s (%s) · Verse %d", v.Surah.EnglishName, v.Address(), v.Number)) + star

	lines := []string{
		title,
		arabicStyle.Render(v.Text),
		translationStyle.Render(v.Translation),
	}
	if v.AudioURL != "" {
		lines = append(lines, mutedStyle.Render("♪ "+snap.Reciter))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderError(msg string) string {
	return errorStyle.Render(msg)
}

func renderVerseLine(v verse.Verse, suffix string) string {
	line := fmt.Sprintf("%-8s %s %d  %s", v.Address(), v.Surah.EnglishName, v.Number, truncate(v.Translation, 60))
	if suffix != "" {
		line += "  " + mutedStyle.Render(suffix)
	}
	return line
}

func renderFavorites(favorites []session.Favorite) string {
	if len(favorites) == 0 {
		return mutedStyle.Render("No favorites yet.")
	}

	lines := []string{titleStyle.Render("Favorites")}
	for _, f := range favorites {
		lines = append(lines, renderVerseLine(f.Verse, f.Date.Local().Format("2006-01-02")))
	}
	return strings.Join(lines, "\n")
}

func renderHistory(history []session.HistoryEntry) string {
	if len(history) == 0 {
		return mutedStyle.Render("No history yet.")
	}

	lines := []string{titleStyle.Render("History")}
	for _, h := range history {
		lines = append(lines, renderVerseLine(h.Verse, h.ViewedAt.Local().Format("2006-01-02 15:04")))
	}
	return strings.Join(lines, "\n")
}

func renderServerHistory(verses []verse.Verse) string {
	if len(verses) == 0 {
		return mutedStyle.Render("Nothing has been fetched yet.")
	}

	lines := []string{titleStyle.Render("Recently fetched (all clients)")}
	for _, v := range verses {
		lines = append(lines, renderVerseLine(v, v.RetrievedAt.Local().Format("2006-01-02 15:04")))
	}
	return strings.Join(lines, "\n")
}

func renderReciters(reciters []verse.Reciter, current string) string {
	lines := []string{titleStyle.Render("Reciters")}
	for _, r := range reciters {
		marker := "  "
		if r.Identifier == current {
			marker = favoriteStyle.Render("▸ ")
		}
		lines = append(lines, fmt.Sprintf("%s%-24s %s", marker, r.Identifier, r.EnglishName))
	}
	return strings.Join(lines, "\n")
}

func renderPrayerTimes(t *prayer.Times) string {
	header := titleStyle.Render(fmt.Sprintf("Prayer times · %s, %s · %s", t.City, t.Country, t.Date))
	if t.Hijri != "" {
		header += mutedStyle.Render("  (" + t.Hijri + " AH)")
	}

	lines := []string{header}
	seen := make(map[string]bool, len(prayer.Order))
	for _, name := range prayer.Order {
		if at, ok := t.Timings[name]; ok {
			lines = append(lines, fmt.Sprintf("  %-8s %s", name, at))
			seen[name] = true
		}
	}

	// anything else aladhan returned (Imsak, Midnight, ...), in a stable order
	var rest []string
	for name := range t.Timings {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %-8s %s", name, t.Timings[name])))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderTafsirBooks(books []tafsir.Book) string {
	lines := []string{titleStyle.Render("Tafsirs")}
	for _, b := range books {
		lines = append(lines, fmt.Sprintf("  %3d  %s - %s", b.ID, b.Name, b.Author))
	}
	return strings.Join(lines, "\n")
}

func renderTafsirEntry(addr verse.Address, e *tafsir.Entry) string {
	title := titleStyle.Render(fmt.Sprintf("%s · %s", e.TafseerName, addr))
	return boxStyle.Render(title + "\n" + translationStyle.Render(e.Text))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
