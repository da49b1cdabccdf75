package session

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/quran-verse-api/internal/localstore"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
)

const (
	keyFavorites = "favorites"
	keyHistory   = "verseHistory"
	keyCurrent   = "currentVerse"
	keyReciter   = "reciter"
)

// storage validates everything it reads. A value that does not decode is
// treated as absent; entries that are not a well-formed verse are dropped.
type storage struct {
	store  localstore.Store
	logger *zap.Logger
}

func (s *storage) favorites(ctx context.Context) []Favorite {
	var raw []Favorite
	if !s.read(ctx, keyFavorites, &raw) {
		return []Favorite{}
	}

	out := make([]Favorite, 0, len(raw))
	for _, f := range raw {
		if validVerse(f.Verse) {
			out = append(out, f)
		}
	}
	return out
}

func (s *storage) history(ctx context.Context) []HistoryEntry {
	var raw []HistoryEntry
	if !s.read(ctx, keyHistory, &raw) {
		return []HistoryEntry{}
	}

	out := make([]HistoryEntry, 0, min(len(raw), HistoryCapacity))
	seen := make(map[verse.Address]bool, len(raw))
	for _, h := range raw {
		if len(out) == HistoryCapacity {
			break
		}
		if !validVerse(h.Verse) || seen[h.Address()] {
			continue
		}
		seen[h.Address()] = true
		out = append(out, h)
	}
	return out
}

func (s *storage) current(ctx context.Context) *verse.Verse {
	var v verse.Verse
	if !s.read(ctx, keyCurrent, &v) || !validVerse(v) {
		return nil
	}
	return &v
}

// reciter reports the saved reciter; ok is false when none was ever saved.
// An empty saved reciter means audio is off.
func (s *storage) reciter(ctx context.Context) (string, bool) {
	var r string
	if !s.read(ctx, keyReciter, &r) {
		return "", false
	}
	return r, true
}

func (s *storage) saveFavorites(ctx context.Context, f []Favorite) error {
	return s.write(ctx, keyFavorites, f)
}

func (s *storage) saveHistory(ctx context.Context, h []HistoryEntry) error {
	return s.write(ctx, keyHistory, h)
}

func (s *storage) saveCurrent(ctx context.Context, v *verse.Verse) error {
	return s.write(ctx, keyCurrent, v)
}

func (s *storage) saveReciter(ctx context.Context, r string) error {
	return s.write(ctx, keyReciter, r)
}

func (s *storage) read(ctx context.Context, key string, out interface{}) bool {
	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("local store read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("discarding corrupt local value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *storage) write(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func validVerse(v verse.Verse) bool {
	return v.Address().Validate() == nil && v.Text != ""
}
