package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/quran-verse-api/internal/alquran"
	"github.com/taiwoajasa245/quran-verse-api/internal/cache"
	"github.com/taiwoajasa245/quran-verse-api/internal/database"
	"github.com/taiwoajasa245/quran-verse-api/internal/prayer"
	"github.com/taiwoajasa245/quran-verse-api/internal/tafsir"
	"github.com/taiwoajasa245/quran-verse-api/internal/upstream"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
	"github.com/taiwoajasa245/quran-verse-api/pkg/config"
)

type Server struct {
	port    string
	db      database.Service
	handler http.Handler
	cfg     *config.Config
	logger  *zap.Logger
	verses  *verse.Service
	prayer  *prayer.Service
	tafsir  *tafsir.Service
	warmer  *cache.Warmer
	cancel  context.CancelFunc
	done    chan struct{}
}

// Deps are the collaborators a Server is built from. Repo and Cache may be
// nil: the repository then comes from DB, and responses are not cached.
type Deps struct {
	DB     database.Service
	Repo   verse.Repository
	Cache  cache.Cache
	Logger *zap.Logger
}

// NewServer constructs your app server with all dependencies injected.
func NewServer(cfg *config.Config, deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	repo := deps.Repo
	if repo == nil {
		repo = verse.NewRepository(deps.DB)
	}

	loader := cache.NewLoader(deps.Cache, log)

	alquranClient := alquran.NewClient(upstream.NewClient(upstreamConfig(cfg, "alquran", cfg.AlQuranBaseURL), log))
	prayerClient := prayer.NewClient(upstream.NewClient(upstreamConfig(cfg, "aladhan", cfg.AladhanBaseURL), log))
	tafsirClient := tafsir.NewClient(upstream.NewClient(upstreamConfig(cfg, "tafsir", cfg.TafsirBaseURL), log))

	s := &Server{
		port:   cfg.Port,
		db:     deps.DB,
		cfg:    cfg,
		logger: log,
		verses: verse.NewService(alquranClient, repo, loader, cfg.CacheTTL, log),
		prayer: prayer.NewService(prayerClient, loader, cfg.CacheTTL, cfg.DefaultCity, cfg.DefaultCountry, log),
		tafsir: tafsir.NewService(tafsirClient, loader, cfg.CacheTTL),
	}

	s.warmer = cache.NewWarmer(cfg.WarmupInterval, log,
		cache.WarmupTask{Name: "reciters", Run: s.verses.WarmReciters},
		cache.WarmupTask{Name: "tafsir-books", Run: s.tafsir.WarmBooks},
		cache.WarmupTask{Name: "prayer-times", Run: s.prayer.WarmDefault},
	)

	s.handler = s.RegisterRoutes()
	return s
}

func upstreamConfig(cfg *config.Config, name, baseURL string) upstream.Config {
	return upstream.Config{
		Name:       name,
		BaseURL:    baseURL,
		Timeout:    cfg.UpstreamTimeout,
		MaxRetries: cfg.UpstreamMaxRetries,
		RateLimit:  cfg.UpstreamRateLimit,
	}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// StartBackgroundJobs runs the cache warmer until StopBackgroundJobs.
func (s *Server) StartBackgroundJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.warmer.Start(ctx)
	}()
}

func (s *Server) StopBackgroundJobs() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info("background jobs stopped")
}
