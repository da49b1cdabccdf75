package session

import (
	"time"

	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
)

// HistoryCapacity bounds the local history.
const HistoryCapacity = 50

// Favorite is a saved verse snapshot.
type Favorite struct {
	verse.Verse
	Date time.Time `json:"date"`
}

// HistoryEntry is a viewed verse snapshot.
type HistoryEntry struct {
	verse.Verse
	ViewedAt time.Time `json:"viewedAt"`
}

// InsertHistory puts e at the front, dropping any older entry for the same
// address, and trims to HistoryCapacity. The input slice is not modified.
func InsertHistory(history []HistoryEntry, e HistoryEntry) []HistoryEntry {
	addr := e.Address()

	out := make([]HistoryEntry, 0, min(len(history)+1, HistoryCapacity))
	out = append(out, e)
	for _, h := range history {
		if len(out) == HistoryCapacity {
			break
		}
		if h.Address() == addr {
			continue
		}
		out = append(out, h)
	}
	return out
}

func RemoveHistory(history []HistoryEntry, addr verse.Address) ([]HistoryEntry, bool) {
	out := make([]HistoryEntry, 0, len(history))
	for _, h := range history {
		if h.Address() != addr {
			out = append(out, h)
		}
	}
	return out, len(out) != len(history)
}

// ToggleFavorite removes every favorite matching v's address, or appends v
// when there is none. It reports whether v is a favorite afterwards.
func ToggleFavorite(favorites []Favorite, v verse.Verse, now time.Time) ([]Favorite, bool) {
	if out, removed := RemoveFavorite(favorites, v.Address()); removed {
		return out, false
	}

	out := make([]Favorite, len(favorites), len(favorites)+1)
	copy(out, favorites)
	return append(out, Favorite{Verse: v, Date: now}), true
}

func RemoveFavorite(favorites []Favorite, addr verse.Address) ([]Favorite, bool) {
	out := make([]Favorite, 0, len(favorites))
	for _, f := range favorites {
		if f.Address() != addr {
			out = append(out, f)
		}
	}
	return out, len(out) != len(favorites)
}

func IsFavorite(favorites []Favorite, addr verse.Address) bool {
	for _, f := range favorites {
		if f.Address() == addr {
			return true
		}
	}
	return false
}
