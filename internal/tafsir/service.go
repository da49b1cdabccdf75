package tafsir

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taiwoajasa245/quran-verse-api/internal/cache"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
)

const booksCacheKey = "tafsir:books"

var ErrInvalidTafsir = errors.New("invalid tafsir id")

type Provider interface {
	Books(ctx context.Context) ([]Book, error)
	Entry(ctx context.Context, tafsirID, surah, verse int) (*Entry, error)
}

// Service caches both listings and entries; commentary text never changes.
type Service struct {
	provider Provider
	loader   *cache.Loader
	cacheTTL time.Duration
}

func NewService(provider Provider, loader *cache.Loader, cacheTTL time.Duration) *Service {
	if loader == nil {
		loader = cache.NewLoader(nil, nil)
	}
	return &Service{provider: provider, loader: loader, cacheTTL: cacheTTL}
}

func (s *Service) Books(ctx context.Context) ([]Book, error) {
	return cache.Fetch(ctx, s.loader, booksCacheKey, s.cacheTTL, s.provider.Books)
}

func (s *Service) WarmBooks(ctx context.Context) error {
	return cache.Warm(ctx, s.loader, booksCacheKey, s.cacheTTL, s.provider.Books)
}

func (s *Service) Entry(ctx context.Context, tafsirID int, addr verse.Address) (*Entry, error) {
	if tafsirID < 1 {
		return nil, fmt.Errorf("%w: tafsir id %d", ErrInvalidTafsir, tafsirID)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tafsir:%d:%s", tafsirID, addr)
	return cache.Fetch(ctx, s.loader, key, s.cacheTTL, func(ctx context.Context) (*Entry, error) {
		return s.provider.Entry(ctx, tafsirID, addr.Surah, addr.Verse)
	})
}
