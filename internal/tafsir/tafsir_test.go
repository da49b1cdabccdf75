package tafsir

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/quran-verse-api/internal/upstream"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	uc := upstream.NewClient(upstream.Config{Name: "tafsir", BaseURL: srv.URL, Timeout: time.Second}, nil)
	return NewService(NewClient(uc), nil, time.Hour)
}

func TestBooks(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tafseer/", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"التفسير الميسر","language":"ar","author":"نخبة من العلماء","book_name":"التفسير الميسر"},
			{"id":8,"name":"تفسير ابن كثير","language":"ar","author":"ابن كثير","book_name":"تفسير القرآن العظيم"}]`))
	})

	books, err := svc.Books(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 8, books[1].ID)
	assert.Equal(t, "ابن كثير", books[1].Author)
}

func TestEntry(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tafseer/1/2/255", r.URL.Path)
		w.Write([]byte(`{"tafseer_id":1,"tafseer_name":"التفسير الميسر","ayah_url":"/quran/2/255/","ayah_number":255,"text":"الله الذي لا يستحق الألوهية..."}`))
	})

	e, err := svc.Entry(context.Background(), 1, verse.Address{Surah: 2, Verse: 255})
	require.NoError(t, err)
	assert.Equal(t, 255, e.AyahNumber)
	assert.NotEmpty(t, e.Text)
}

func TestEntryValidation(t *testing.T) {
	var calls int32
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := svc.Entry(context.Background(), 0, verse.Address{Surah: 1, Verse: 1})
	assert.ErrorIs(t, err, ErrInvalidTafsir)

	_, err = svc.Entry(context.Background(), 1, verse.Address{Surah: 0, Verse: 1})
	assert.ErrorIs(t, err, verse.ErrInvalidAddress)

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestEntryWithoutText(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"detail":"Not found."}`))
	})

	_, err := svc.Entry(context.Background(), 1, verse.Address{Surah: 1, Verse: 1})
	assert.True(t, errors.Is(err, upstream.ErrUpstreamMalformed))
}

func TestHandlers(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tafseer/":
			w.Write([]byte(`[{"id":1,"name":"التفسير الميسر","language":"ar","author":"نخبة من العلماء","book_name":"التفسير الميسر"}]`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})
	h := NewTafsirHandler(svc)

	r := chi.NewRouter()
	r.Get("/api/tafsir", h.BooksHandler)
	r.Get("/api/tafsir/{tafsirId}/{surah}/{verse}", h.EntryHandler)

	tests := []struct {
		target string
		code   int
	}{
		{"/api/tafsir", http.StatusOK},
		{"/api/tafsir/x/1/1", http.StatusBadRequest},
		{"/api/tafsir/1/115/1", http.StatusBadRequest},
		{"/api/tafsir/1/1/1", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
		assert.Equal(t, tt.code, rec.Code, tt.target)
	}
}
