package verse

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/quran-verse-api/internal/alquran"
	"github.com/taiwoajasa245/quran-verse-api/internal/cache"
	"github.com/taiwoajasa245/quran-verse-api/internal/upstream"
)

const recitersCacheKey = "reciters"

var (
	ErrInvalidReciter = errors.New("invalid reciter edition")

	editionPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// Provider is the external verse source.
type Provider interface {
	Ayah(ctx context.Context, ref string, editions ...string) ([]alquran.Ayah, error)
	AudioEditions(ctx context.Context) ([]alquran.Edition, error)
}

// Service fetches verses from the provider and records every successful
// fetch in the repository. RandomVerse and VerseByAddress are therefore not
// read-only: each call appends one record, which feeds RecentHistory.
type Service struct {
	provider Provider
	repo     Repository
	loader   *cache.Loader
	cacheTTL time.Duration
	logger   *zap.Logger
	randIntN func(n int) int
	now      func() time.Time
}

func NewService(provider Provider, repo Repository, loader *cache.Loader, cacheTTL time.Duration, log *zap.Logger) *Service {
	if loader == nil {
		loader = cache.NewLoader(nil, log)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		provider: provider,
		repo:     repo,
		loader:   loader,
		cacheTTL: cacheTTL,
		logger:   log,
		randIntN: rand.Intn,
		now:      time.Now,
	}
}

// RandomVerse picks a flattened ayah index uniformly from 1..TotalAyahs.
func (s *Service) RandomVerse(ctx context.Context, reciter string) (*Verse, error) {
	n := s.randIntN(TotalAyahs) + 1
	return s.fetchAndRecord(ctx, strconv.Itoa(n), nil, reciter)
}

func (s *Service) VerseByAddress(ctx context.Context, addr Address, reciter string) (*Verse, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return s.fetchAndRecord(ctx, addr.String(), &addr, reciter)
}

// RecentHistory returns the newest stored fetches across all clients.
func (s *Service) RecentHistory(ctx context.Context, limit int) ([]Verse, error) {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return s.repo.Recent(ctx, limit)
}

// Reciters lists the provider's audio editions, cached for cacheTTL.
func (s *Service) Reciters(ctx context.Context) ([]Reciter, error) {
	return cache.Fetch(ctx, s.loader, recitersCacheKey, s.cacheTTL, s.loadReciters)
}

// WarmReciters refreshes the cached reciter listing.
func (s *Service) WarmReciters(ctx context.Context) error {
	return cache.Warm(ctx, s.loader, recitersCacheKey, s.cacheTTL, s.loadReciters)
}

func (s *Service) loadReciters(ctx context.Context) ([]Reciter, error) {
	editions, err := s.provider.AudioEditions(ctx)
	if err != nil {
		return nil, err
	}

	reciters := make([]Reciter, 0, len(editions))
	for _, e := range editions {
		reciters = append(reciters, Reciter{
			Identifier:  e.Identifier,
			Name:        e.Name,
			EnglishName: e.EnglishName,
		})
	}
	return reciters, nil
}

func (s *Service) fetchAndRecord(ctx context.Context, ref string, want *Address, reciter string) (*Verse, error) {
	reciter = strings.TrimSpace(reciter)
	editions := []string{alquran.TextEdition, alquran.TranslationEdition}
	if reciter != "" {
		if !editionPattern.MatchString(reciter) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidReciter, reciter)
		}
		editions = append(editions, reciter)
	}

	ayahs, err := s.provider.Ayah(ctx, ref, editions...)
	if err != nil {
		s.logger.Error("error fetching verse", zap.String("ref", ref), zap.Error(err))
		return nil, err
	}

	v, err := assemble(ayahs, reciter != "")
	if err != nil {
		return nil, fmt.Errorf("ayah %s: %w", ref, err)
	}
	if want != nil && v.Address() != *want {
		return nil, fmt.Errorf("%w: asked for %s, got %s", upstream.ErrUpstreamMalformed, want, v.Address())
	}

	v.RetrievedAt = s.now().UTC()
	if err := s.repo.Save(ctx, v); err != nil {
		s.logger.Error("error saving verse", zap.Stringer("address", v.Address()), zap.Error(err))
		return nil, err
	}

	return v, nil
}

// assemble builds a Verse from [text, translation, audio?] editions.
func assemble(ayahs []alquran.Ayah, withAudio bool) (*Verse, error) {
	want := 2
	if withAudio {
		want = 3
	}
	if len(ayahs) < want {
		return nil, fmt.Errorf("%w: %d editions, want %d", upstream.ErrUpstreamMalformed, len(ayahs), want)
	}

	text, translation := ayahs[0], ayahs[1]
	switch {
	case text.Text == "":
		return nil, fmt.Errorf("%w: empty arabic text", upstream.ErrUpstreamMalformed)
	case translation.Text == "":
		return nil, fmt.Errorf("%w: empty translation", upstream.ErrUpstreamMalformed)
	case text.Surah.Number < 1 || text.Surah.Number > SurahCount:
		return nil, fmt.Errorf("%w: surah %d", upstream.ErrUpstreamMalformed, text.Surah.Number)
	case text.NumberInSurah < 1:
		return nil, fmt.Errorf("%w: verse %d", upstream.ErrUpstreamMalformed, text.NumberInSurah)
	}

	v := &Verse{
		Number:      text.NumberInSurah,
		Text:        text.Text,
		Translation: translation.Text,
		Surah: Surah{
			Number:      text.Surah.Number,
			Name:        text.Surah.Name,
			EnglishName: text.Surah.EnglishName,
		},
	}

	if withAudio {
		if ayahs[2].Audio == "" {
			return nil, fmt.Errorf("%w: edition %s has no audio", upstream.ErrUpstreamMalformed, ayahs[2].Edition.Identifier)
		}
		v.AudioURL = ayahs[2].Audio
	}

	return v, nil
}
