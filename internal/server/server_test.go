package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/quran-verse-api/internal/apiclient"
	"github.com/taiwoajasa245/quran-verse-api/internal/localstore"
	"github.com/taiwoajasa245/quran-verse-api/internal/session"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
	"github.com/taiwoajasa245/quran-verse-api/pkg/config"
)

type fakeDB struct {
	status string
}

func (f fakeDB) Health() map[string]string {
	return map[string]string{"status": f.status}
}

func (fakeDB) Pool() *pgxpool.Pool { return nil }
func (fakeDB) Close()              {}

type memRepo struct {
	mu     sync.Mutex
	verses []verse.Verse
}

func (m *memRepo) Save(_ context.Context, v *verse.Verse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = int64(len(m.verses) + 1)
	m.verses = append(m.verses, *v)
	return nil
}

func (m *memRepo) Recent(_ context.Context, limit int) ([]verse.Verse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []verse.Verse{}
	for i := len(m.verses) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.verses[i])
	}
	return out, nil
}

// fakeUpstreams answers like alquran.cloud, aladhan and quran-tafseer.
func fakeUpstreams(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var editionCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/ayah/", func(w http.ResponseWriter, r *http.Request) {
		// /ayah/{ref}/editions/{list}
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/ayah/"), "/")
		ref, editions := parts[0], strings.Split(parts[2], ",")

		surah, number := 2, 5
		if s, v, ok := strings.Cut(ref, ":"); ok {
			fmt.Sscan(s, &surah)
			fmt.Sscan(v, &number)
		}
		if surah == 1 && number > 7 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":400,"status":"Bad Request","data":"Please specify an Ayah number (1 to 6236)."}`))
			return
		}

		type ayah struct {
			Number        int               `json:"number"`
			Text          string            `json:"text"`
			NumberInSurah int               `json:"numberInSurah"`
			Audio         string            `json:"audio,omitempty"`
			Surah         map[string]any    `json:"surah"`
			Edition       map[string]string `json:"edition"`
		}
		s := map[string]any{"number": surah, "name": "البقرة", "englishName": "Al-Baqara"}
		data := []ayah{
			{Number: 12, Text: "أُولَٰئِكَ عَلَىٰ هُدًى", NumberInSurah: number, Surah: s},
			{Number: 12, Text: "It is they who follow the guidance", NumberInSurah: number, Surah: s},
		}
		if len(editions) == 3 {
			data = append(data, ayah{
				Number: 12, NumberInSurah: number, Surah: s,
				Audio:   fmt.Sprintf("https://cdn.islamic.network/quran/audio/128/%s/%d-%d.mp3", editions[2], surah, number),
				Edition: map[string]string{"identifier": editions[2]},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"code": 200, "status": "OK", "data": data})
	})
	mux.HandleFunc("/edition", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&editionCalls, 1)
		assert.Equal(t, "audio", r.URL.Query().Get("format"))
		w.Write([]byte(`{"code":200,"status":"OK","data":[{"identifier":"ar.alafasy","language":"ar","name":"مشاري العفاسي","englishName":"Alafasy","format":"audio","type":"versebyverse"}]}`))
	})
	mux.HandleFunc("/timingsByCity/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"status":"OK","data":{"timings":{"Fajr":"05:41","Isha":"19:34"},"date":{"readable":"17 Oct 2026"}}}`))
	})
	mux.HandleFunc("/tafseer/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tafseer/" {
			w.Write([]byte(`[{"id":1,"name":"التفسير الميسر","language":"ar","author":"نخبة من العلماء","book_name":"التفسير الميسر"}]`))
			return
		}
		w.Write([]byte(`{"tafseer_id":1,"tafseer_name":"التفسير الميسر","ayah_url":"/quran/2/5/","ayah_number":5,"text":"أولئك..."}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &editionCalls
}

func newTestServer(t *testing.T, db fakeDB) (*Server, *memRepo, *int32) {
	t.Helper()
	up, editionCalls := fakeUpstreams(t)

	cfg := &config.Config{
		Port:            "0",
		AlQuranBaseURL:  up.URL,
		AladhanBaseURL:  up.URL,
		TafsirBaseURL:   up.URL,
		UpstreamTimeout: time.Second,
		CacheTTL:        time.Hour,
		WarmupInterval:  time.Hour,
		DefaultCity:     "London",
		DefaultCountry:  "United Kingdom",
	}

	repo := &memRepo{}
	return NewServer(cfg, Deps{DB: db, Repo: repo}), repo, editionCalls
}

func TestEndToEndSession(t *testing.T) {
	srv, repo, _ := newTestServer(t, fakeDB{status: "up"})
	api := httptest.NewServer(srv.Handler())
	t.Cleanup(api.Close)

	ctx := context.Background()
	client := apiclient.New(api.URL, time.Second, nil)
	player := &session.NopPlayer{}
	s := session.New(client, localstore.NewMemoryStore(), session.WithPlayer(player))

	v, err := s.Random(ctx)
	require.NoError(t, err)
	assert.Equal(t, verse.Address{Surah: 2, Verse: 5}, v.Address())
	assert.Contains(t, v.AudioURL, session.DefaultReciter)

	_, err = s.Next(ctx)
	require.NoError(t, err)
	_, err = s.Previous(ctx)
	require.NoError(t, err)

	changed, err := s.ChangeReciter(ctx, "ar.husary")
	require.NoError(t, err)
	assert.Contains(t, changed.AudioURL, "ar.husary")
	require.NoError(t, s.Play())
	assert.Equal(t, changed.AudioURL, player.URL())

	history := s.History(ctx)
	require.Len(t, history, 2)
	assert.Equal(t, verse.Address{Surah: 2, Verse: 5}, history[0].Address())

	// every fetch, including the reciter switch, is a stored view
	server, err := client.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, server, 4)
	assert.Len(t, repo.verses, 4)
}

func TestEndToEndNextPastLastVerse(t *testing.T) {
	srv, repo, _ := newTestServer(t, fakeDB{status: "up"})
	api := httptest.NewServer(srv.Handler())
	t.Cleanup(api.Close)

	ctx := context.Background()
	s := session.New(apiclient.New(api.URL, time.Second, nil), localstore.NewMemoryStore())

	_, err := s.Load(ctx, verse.Address{Surah: 1, Verse: 7})
	require.NoError(t, err)

	_, err = s.Next(ctx)
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Error fetching verse", apiErr.Message)

	snap := s.Snapshot()
	assert.Equal(t, session.Error, snap.State)
	assert.Equal(t, 7, snap.Verse.Number)
	assert.Len(t, repo.verses, 1)
}

func TestProxyRoutes(t *testing.T) {
	srv, _, editionCalls := newTestServer(t, fakeDB{status: "up"})
	api := httptest.NewServer(srv.Handler())
	t.Cleanup(api.Close)

	ctx := context.Background()
	client := apiclient.New(api.URL, time.Second, nil)

	for i := 0; i < 2; i++ {
		reciters, err := client.Reciters(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ar.alafasy", reciters[0].Identifier)
	}
	// no cache is configured, so both requests reach the upstream
	assert.Equal(t, int32(2), atomic.LoadInt32(editionCalls))

	times, err := client.PrayerTimes(ctx, "", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "London", times.City)
	assert.Equal(t, "05:41", times.Timings["Fajr"])

	books, err := client.Tafsirs(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)

	entry, err := client.Tafsir(ctx, books[0].ID, verse.Address{Surah: 2, Verse: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, entry.AyahNumber)
}

func TestHealthAndHome(t *testing.T) {
	tests := []struct {
		name   string
		status string
		code   int
	}{
		{"database up", "up", http.StatusOK},
		{"database down", "down", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newTestServer(t, fakeDB{status: tt.status})

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.status)
		})
	}

	srv, _, _ := newTestServer(t, fakeDB{status: "up"})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome")
}

func TestRequestIDHeaderIsAccepted(t *testing.T) {
	srv, _, _ := newTestServer(t, fakeDB{status: "up"})

	req := httptest.NewRequest(http.MethodGet, "/api/verses/abc/1", nil)
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackgroundJobsStop(t *testing.T) {
	srv, _, editionCalls := newTestServer(t, fakeDB{status: "up"})

	srv.StartBackgroundJobs()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(editionCalls) >= 1
	}, 2*time.Second, 10*time.Millisecond)
	srv.StopBackgroundJobs()
}
