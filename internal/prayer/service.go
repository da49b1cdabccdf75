package prayer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/quran-verse-api/internal/cache"
)

// Order is the display order of the daily prayers.
var Order = []string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}

type Times struct {
	City     string            `json:"city"`
	Country  string            `json:"country"`
	Method   int               `json:"method"`
	Date     string            `json:"date"`
	Hijri    string            `json:"hijri,omitempty"`
	Timezone string            `json:"timezone,omitempty"`
	Timings  map[string]string `json:"timings"`
}

type Provider interface {
	TimingsByCity(ctx context.Context, q Query) (*Times, error)
}

type Service struct {
	provider       Provider
	loader         *cache.Loader
	cacheTTL       time.Duration
	defaultCity    string
	defaultCountry string
	logger         *zap.Logger
	now            func() time.Time
}

func NewService(provider Provider, loader *cache.Loader, cacheTTL time.Duration, city, country string, log *zap.Logger) *Service {
	if loader == nil {
		loader = cache.NewLoader(nil, log)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		provider:       provider,
		loader:         loader,
		cacheTTL:       cacheTTL,
		defaultCity:    city,
		defaultCountry: country,
		logger:         log,
		now:            time.Now,
	}
}

// Resolve fills the defaults for any empty field. The date is always today.
func (s *Service) Resolve(city, country string, method int) Query {
	q := Query{
		City:    strings.TrimSpace(city),
		Country: strings.TrimSpace(country),
		Method:  method,
		Date:    s.now().UTC(),
	}
	if q.City == "" {
		q.City = s.defaultCity
		if q.Country == "" {
			q.Country = s.defaultCountry
		}
	}
	if q.Method <= 0 {
		q.Method = DefaultMethod
	}
	return q
}

// Times returns the day's timings, cached per city, country, method and date.
func (s *Service) Times(ctx context.Context, q Query) (*Times, error) {
	return cache.Fetch(ctx, s.loader, cacheKey(q), s.cacheTTL, func(ctx context.Context) (*Times, error) {
		return s.provider.TimingsByCity(ctx, q)
	})
}

// WarmDefault refreshes today's timings for the default city.
func (s *Service) WarmDefault(ctx context.Context) error {
	q := s.Resolve("", "", 0)
	return cache.Warm(ctx, s.loader, cacheKey(q), s.cacheTTL, func(ctx context.Context) (*Times, error) {
		return s.provider.TimingsByCity(ctx, q)
	})
}

func cacheKey(q Query) string {
	return fmt.Sprintf("prayer:%s:%s:%d:%s",
		strings.ToLower(q.City), strings.ToLower(q.Country), q.Method, q.Date.Format("2006-01-02"))
}
