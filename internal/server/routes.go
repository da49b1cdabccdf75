package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/taiwoajasa245/quran-verse-api/docs"
	"github.com/taiwoajasa245/quran-verse-api/internal/prayer"
	"github.com/taiwoajasa245/quran-verse-api/internal/tafsir"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
	"github.com/taiwoajasa245/quran-verse-api/pkg/response"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", s.ServerIsWorking)
	r.Get("/health", s.HealthHandler)

	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})

	// Serve swagger files from swaggo/files
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route("/api", func(r chi.Router) {
		s.loadVerseRoutes(r)
		s.loadPrayerRoutes(r)
		s.loadTafsirRoutes(r)
	})

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to Quran verse api"
	response.Success(w, resp)
}

// HealthHandler godoc
// @Summary      Service health
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.db.Health()
	if stats["status"] != "up" {
		response.JSON(w, http.StatusServiceUnavailable, stats)
		return
	}
	response.Success(w, stats)
}

func (s *Server) loadVerseRoutes(router chi.Router) {
	verseHandler := verse.NewVerseHandler(s.verses)

	router.Get("/verses/random", verseHandler.RandomVerseHandler)
	router.Get("/verses/history", verseHandler.HistoryHandler)
	router.Get("/verses/reciters", verseHandler.RecitersHandler)
	router.Get("/verses/{surahNumber}/{verseNumber}", verseHandler.VerseByAddressHandler)
}

func (s *Server) loadPrayerRoutes(router chi.Router) {
	prayerHandler := prayer.NewPrayerHandler(s.prayer)

	router.Get("/prayer-times", prayerHandler.PrayerTimesHandler)
}

func (s *Server) loadTafsirRoutes(router chi.Router) {
	tafsirHandler := tafsir.NewTafsirHandler(s.tafsir)

	router.Get("/tafsir", tafsirHandler.BooksHandler)
	router.Get("/tafsir/{tafsirId}/{surah}/{verse}", tafsirHandler.EntryHandler)
}
