// Package session is the client side of the verse service: it fetches
// verses, tracks the current address for next/previous, switches reciters,
// owns the single audio player, and mirrors favorites and history into a
// local store.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/quran-verse-api/internal/localstore"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
)

// DefaultReciter is used until the user picks one.
const DefaultReciter = "ar.alafasy"

type State int

const (
	Idle State = iota
	Loading
	Ready
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrSuperseded is returned to a fetch whose result arrived after a newer
	// fetch was issued. Its result is dropped.
	ErrSuperseded = errors.New("fetch superseded by a newer request")

	ErrNoVerse  = errors.New("no verse loaded")
	ErrNoAudio  = errors.New("current verse has no audio")
	ErrNoPlayer = errors.New("no audio player")
)

// Source is the verse server as seen by the session.
type Source interface {
	RandomVerse(ctx context.Context, reciter string) (*verse.Verse, error)
	VerseByAddress(ctx context.Context, addr verse.Address, reciter string) (*verse.Verse, error)
}

// Snapshot is a copy of the session's visible state.
type Snapshot struct {
	State    State
	Verse    *verse.Verse
	Err      error
	Reciter  string
	Favorite bool
	Playing  bool
}

type Session struct {
	mu       sync.Mutex
	source   Source
	storage  *storage
	player   Player
	logger   *zap.Logger
	now      func() time.Time
	state    State
	current  *verse.Verse
	lastErr  error
	reciter  string
	favorite bool
	playing  bool
	token    uint64
}

type Option func(*Session)

func WithPlayer(p Player) Option {
	return func(s *Session) { s.player = p }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.logger = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithReciter sets the reciter used until one is restored or chosen. An empty
// value keeps DefaultReciter; audio is turned off with ChangeReciter.
func WithReciter(reciter string) Option {
	return func(s *Session) {
		if reciter != "" {
			s.reciter = reciter
		}
	}
}

func New(source Source, store localstore.Store, opts ...Option) *Session {
	s := &Session{
		source:  source,
		logger:  zap.NewNop(),
		now:     time.Now,
		reciter: DefaultReciter,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.storage = &storage{store: store, logger: s.logger}
	return s
}

// Restore reloads the reciter (an empty one included) and the last current
// verse from the store. The session is Ready afterwards if a verse was found,
// Idle otherwise.
func (s *Session) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.storage.reciter(ctx); ok {
		s.reciter = r
	}
	if v := s.storage.current(ctx); v != nil {
		s.current = v
		s.state = Ready
		s.favorite = IsFavorite(s.storage.favorites(ctx), v.Address())
	}
}

func (s *Session) Random(ctx context.Context) (*verse.Verse, error) {
	return s.fetch(ctx, func(ctx context.Context, reciter string) (*verse.Verse, error) {
		return s.source.RandomVerse(ctx, reciter)
	})
}

func (s *Session) Load(ctx context.Context, addr verse.Address) (*verse.Verse, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return s.fetch(ctx, func(ctx context.Context, reciter string) (*verse.Verse, error) {
		return s.source.VerseByAddress(ctx, addr, reciter)
	})
}

// Next loads the following verse of the same surah. There is no upper bound
// check: past the last verse the server's error is returned.
func (s *Session) Next(ctx context.Context) (*verse.Verse, error) {
	addr, err := s.currentAddress()
	if err != nil {
		return nil, err
	}
	addr.Verse++
	return s.Load(ctx, addr)
}

// Previous loads the preceding verse of the same surah. At verse 1 it does
// nothing and returns the current verse.
func (s *Session) Previous(ctx context.Context) (*verse.Verse, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, ErrNoVerse
	}
	if s.current.Number <= 1 {
		v := *s.current
		s.mu.Unlock()
		return &v, nil
	}
	addr := s.current.Address()
	s.mu.Unlock()

	addr.Verse--
	return s.Load(ctx, addr)
}

// ChangeReciter switches reciters. With no verse shown the reciter is stored
// right away; otherwise the shown verse is refetched with it and the reciter
// is kept only if that fetch succeeds. Only the audio URL of the shown verse
// changes. An empty reciter turns audio off.
func (s *Session) ChangeReciter(ctx context.Context, reciter string) (*verse.Verse, error) {
	s.mu.Lock()
	if s.current == nil {
		s.stopLocked()
		s.applyReciterLocked(ctx, reciter)
		s.mu.Unlock()
		return nil, nil
	}
	base := *s.current
	s.mu.Unlock()

	return s.run(ctx, &reciter, func(ctx context.Context, reciter string) (*verse.Verse, error) {
		fetched, err := s.source.VerseByAddress(ctx, base.Address(), reciter)
		if err != nil {
			return nil, err
		}
		merged := base
		merged.AudioURL = fetched.AudioURL
		merged.ID = fetched.ID
		merged.RetrievedAt = fetched.RetrievedAt
		return &merged, nil
	})
}

func (s *Session) applyReciterLocked(ctx context.Context, reciter string) {
	s.reciter = reciter
	if err := s.storage.saveReciter(ctx, reciter); err != nil {
		s.logger.Warn("failed to save reciter", zap.Error(err))
	}
}

// ToggleFavorite adds or removes the current verse from favorites and
// reports whether it is a favorite afterwards.
func (s *Session) ToggleFavorite(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false, ErrNoVerse
	}

	favorites, added := ToggleFavorite(s.storage.favorites(ctx), *s.current, s.now().UTC())
	if err := s.storage.saveFavorites(ctx, favorites); err != nil {
		return s.favorite, err
	}
	s.favorite = added
	return added, nil
}

func (s *Session) Favorites(ctx context.Context) []Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.favorites(ctx)
}

func (s *Session) RemoveFavorite(ctx context.Context, addr verse.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, removed := RemoveFavorite(s.storage.favorites(ctx), addr)
	if !removed {
		return false, nil
	}
	if err := s.storage.saveFavorites(ctx, favorites); err != nil {
		return false, err
	}
	if s.current != nil && s.current.Address() == addr {
		s.favorite = false
	}
	return true, nil
}

func (s *Session) History(ctx context.Context) []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.history(ctx)
}

func (s *Session) RemoveHistory(ctx context.Context, addr verse.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, removed := RemoveHistory(s.storage.history(ctx), addr)
	if !removed {
		return false, nil
	}
	return true, s.storage.saveHistory(ctx, history)
}

// Play loads the current verse's audio into the player and starts it.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return ErrNoPlayer
	}
	if s.current == nil {
		return ErrNoVerse
	}
	if s.current.AudioURL == "" {
		return ErrNoAudio
	}

	s.stopLocked()
	if err := s.player.Load(s.current.AudioURL); err != nil {
		return err
	}
	if err := s.player.Play(); err != nil {
		return err
	}
	s.playing = true
	return nil
}

func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// ShareText formats the current verse for sharing.
func (s *Session) ShareText() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return "", ErrNoVerse
	}
	return fmt.Sprintf("Quran %s %d: %s", s.current.Surah.EnglishName, s.current.Number, s.current.Translation), nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:    s.state,
		Err:      s.lastErr,
		Reciter:  s.reciter,
		Favorite: s.favorite,
		Playing:  s.playing,
	}
	if s.current != nil {
		v := *s.current
		snap.Verse = &v
	}
	return snap
}

func (s *Session) fetch(ctx context.Context, do func(ctx context.Context, reciter string) (*verse.Verse, error)) (*verse.Verse, error) {
	return s.run(ctx, nil, do)
}

// run performs one request. Each call takes a new token; when it resolves, its
// result is applied only if no later fetch has been issued since. A non-nil
// reciter is used for the request and becomes the session's reciter on success.
func (s *Session) run(ctx context.Context, nextReciter *string, do func(ctx context.Context, reciter string) (*verse.Verse, error)) (*verse.Verse, error) {
	s.mu.Lock()
	s.token++
	token := s.token
	s.state = Loading
	s.stopLocked()
	reciter := s.reciter
	if nextReciter != nil {
		reciter = *nextReciter
	}
	s.mu.Unlock()

	v, err := do(ctx, reciter)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		return nil, ErrSuperseded
	}
	if err != nil {
		// the last good verse stays visible
		s.state = Error
		s.lastErr = err
		return nil, err
	}

	s.current = v
	s.state = Ready
	s.lastErr = nil
	s.playing = false
	if nextReciter != nil {
		s.applyReciterLocked(ctx, *nextReciter)
	}
	s.record(ctx, *v)

	out := *v
	return &out, nil
}

func (s *Session) record(ctx context.Context, v verse.Verse) {
	history := InsertHistory(s.storage.history(ctx), HistoryEntry{Verse: v, ViewedAt: s.now().UTC()})
	if err := s.storage.saveHistory(ctx, history); err != nil {
		s.logger.Warn("failed to save history", zap.Error(err))
	}
	if err := s.storage.saveCurrent(ctx, &v); err != nil {
		s.logger.Warn("failed to save current verse", zap.Error(err))
	}
	s.favorite = IsFavorite(s.storage.favorites(ctx), v.Address())
}

func (s *Session) stopLocked() {
	if s.player != nil {
		s.player.Stop()
	}
	s.playing = false
}

func (s *Session) currentAddress() (verse.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return verse.Address{}, ErrNoVerse
	}
	return s.current.Address(), nil
}
