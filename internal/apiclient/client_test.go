package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/quran-verse-api/internal/upstream"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
)

const baqara5 = `{"id":7,"number":5,"text":"أُولَٰئِكَ عَلَىٰ هُدًى","translation":"It is they who follow the guidance",
	"surah":{"number":2,"name":"البقرة","englishName":"Al-Baqara"},"retrievedAt":"2026-10-17T08:00:00Z"}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second, nil)
}

func TestVerseByAddress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/verses/2/5", r.URL.Path)
		assert.Equal(t, "ar.alafasy", r.URL.Query().Get("reciter"))
		w.Write([]byte(baqara5))
	})

	v, err := c.VerseByAddress(context.Background(), verse.Address{Surah: 2, Verse: 5}, "ar.alafasy")
	require.NoError(t, err)
	assert.Equal(t, verse.Address{Surah: 2, Verse: 5}, v.Address())
	assert.Equal(t, int64(7), v.ID)
	assert.Equal(t, "Al-Baqara", v.Surah.EnglishName)
}

func TestRandomVerseWithoutReciter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/verses/random", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(baqara5))
	})

	_, err := c.RandomVerse(context.Background(), "")
	require.NoError(t, err)
}

func TestServerErrorIsNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"Error fetching verse","error":"upstream unavailable"}`))
	})

	_, err := c.RandomVerse(context.Background(), "")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Error fetching verse", apiErr.Message)
	assert.Equal(t, "upstream unavailable", apiErr.Detail)
	assert.ErrorIs(t, err, upstream.ErrUpstreamUnavailable)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHistoryAndReciters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/verses/history":
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			w.Write([]byte(`[` + baqara5 + `]`))
		case "/api/verses/reciters":
			w.Write([]byte(`[{"identifier":"ar.alafasy","name":"مشاري العفاسي","englishName":"Alafasy"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	history, err := c.History(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	reciters, err := c.Reciters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ar.alafasy", reciters[0].Identifier)
}

func TestPrayerAndTafsir(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/prayer-times":
			assert.Equal(t, "Cairo", r.URL.Query().Get("city"))
			assert.False(t, r.URL.Query().Has("method"))
			w.Write([]byte(`{"city":"Cairo","country":"Egypt","method":2,"date":"17 Oct 2026","timings":{"Fajr":"04:41"}}`))
		case "/api/tafsir":
			w.Write([]byte(`[{"id":1,"name":"التفسير الميسر","language":"ar","author":"نخبة من العلماء","book_name":"التفسير الميسر"}]`))
		case "/api/tafsir/1/2/5":
			w.Write([]byte(`{"tafseer_id":1,"tafseer_name":"التفسير الميسر","ayah_url":"/quran/2/5/","ayah_number":5,"text":"أولئك..."}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	times, err := c.PrayerTimes(ctx, "Cairo", "Egypt", 0)
	require.NoError(t, err)
	assert.Equal(t, "04:41", times.Timings["Fajr"])

	books, err := c.Tafsirs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, books[0].ID)

	entry, err := c.Tafsir(ctx, 1, verse.Address{Surah: 2, Verse: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, entry.AyahNumber)
}
