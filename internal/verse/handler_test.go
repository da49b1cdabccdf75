package verse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/quran-verse-api/internal/alquran"
	"github.com/taiwoajasa245/quran-verse-api/internal/upstream"
	"github.com/taiwoajasa245/quran-verse-api/pkg/response"
)

func newTestRouter(p Provider, repo Repository) http.Handler {
	h := NewVerseHandler(NewService(p, repo, nil, time.Minute, nil))

	r := chi.NewRouter()
	r.Get("/api/verses/random", h.RandomVerseHandler)
	r.Get("/api/verses/history", h.HistoryHandler)
	r.Get("/api/verses/reciters", h.RecitersHandler)
	r.Get("/api/verses/{surahNumber}/{verseNumber}", h.VerseByAddressHandler)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestVerseByAddressHandler(t *testing.T) {
	h := newTestRouter(&fakeProvider{ayahs: ayahsFor(2, 5)}, &memRepo{})

	rec := get(t, h, "/api/verses/2/5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 5, body["number"])
	assert.NotEmpty(t, body["text"])
	assert.NotEmpty(t, body["translation"])
	assert.NotEmpty(t, body["retrievedAt"])
	assert.NotContains(t, body, "audioUrl")

	surah := body["surah"].(map[string]interface{})
	assert.EqualValues(t, 2, surah["number"])
	assert.Equal(t, "Al-Baqara", surah["englishName"])
}

func TestVerseByAddressHandlerReciter(t *testing.T) {
	h := newTestRouter(&fakeProvider{ayahs: ayahsFor(2, 5)}, &memRepo{})

	rec := get(t, h, "/api/verses/2/5?reciter=ar.alafasy")
	require.Equal(t, http.StatusOK, rec.Code)

	var v Verse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Contains(t, v.AudioURL, "ar.alafasy")
}

func TestVerseByAddressHandlerBadRequest(t *testing.T) {
	h := newTestRouter(&fakeProvider{ayahs: ayahsFor(1, 1)}, &memRepo{})

	for _, target := range []string{"/api/verses/abc/1", "/api/verses/0/1", "/api/verses/115/1", "/api/verses/1/-2"} {
		rec := get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestRandomVerseHandlerUpstreamFailure(t *testing.T) {
	p := &fakeProvider{ayahs: func(string, []string) ([]alquran.Ayah, error) {
		return nil, &upstream.StatusError{Upstream: "alquran", Code: http.StatusBadGateway}
	}}
	h := newTestRouter(p, &memRepo{})

	rec := get(t, h, "/api/verses/random")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Error fetching verse", body.Message)
	assert.NotEmpty(t, body.Error)
}

func TestRandomVerseHandlerPersistenceFailure(t *testing.T) {
	h := newTestRouter(&fakeProvider{ayahs: ayahsFor(1, 1)}, &memRepo{saveErr: ErrPersistence})

	rec := get(t, h, "/api/verses/random")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHistoryHandler(t *testing.T) {
	repo := &memRepo{}
	h := newTestRouter(&fakeProvider{ayahs: ayahsFor(1, 1)}, repo)

	rec := get(t, h, "/api/verses/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, get(t, h, "/api/verses/random").Code)
	}

	rec = get(t, h, "/api/verses/history?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var verses []Verse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verses))
	require.Len(t, verses, 2)
	assert.Greater(t, verses[0].ID, verses[1].ID)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/verses/history?limit=x").Code)
}

func TestRecitersHandler(t *testing.T) {
	p := &fakeProvider{audio: []alquran.Edition{{Identifier: "ar.alafasy", Name: "مشاري العفاسي", EnglishName: "Alafasy"}}}
	h := newTestRouter(p, &memRepo{})

	rec := get(t, h, "/api/verses/reciters")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"identifier":"ar.alafasy","name":"مشاري العفاسي","englishName":"Alafasy"}]`, rec.Body.String())
}
