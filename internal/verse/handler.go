package verse

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/quran-verse-api/pkg/response"
)

type VerseHandler struct {
	service *Service
}

func NewVerseHandler(service *Service) VerseHandler {
	return VerseHandler{service: service}
}

// RandomVerseHandler godoc
// @Summary      Random verse
// @Description  Fetches a uniformly random verse and records the view.
// @Tags         verses
// @Produce      json
// @Param        reciter  query     string  false  "audio edition id, e.g. ar.alafasy"
// @Success      200      {object}  verse.Verse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /api/verses/random [get]
func (h *VerseHandler) RandomVerseHandler(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.RandomVerse(r.Context(), r.URL.Query().Get("reciter"))
	if err != nil {
		writeFetchError(w, err)
		return
	}

	response.Success(w, v)
}

// VerseByAddressHandler godoc
// @Summary      Verse by address
// @Description  Fetches surah:verse and records the view.
// @Tags         verses
// @Produce      json
// @Param        surahNumber  path      int     true   "surah 1..114"
// @Param        verseNumber  path      int     true   "verse within the surah"
// @Param        reciter      query     string  false  "audio edition id"
// @Success      200          {object}  verse.Verse
// @Failure      400          {object}  response.ErrorResponse
// @Failure      500          {object}  response.ErrorResponse
// @Router       /api/verses/{surahNumber}/{verseNumber} [get]
func (h *VerseHandler) VerseByAddressHandler(w http.ResponseWriter, r *http.Request) {
	addr, err := ParseAddressParts(chi.URLParam(r, "surahNumber"), chi.URLParam(r, "verseNumber"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid verse address", err.Error())
		return
	}

	v, err := h.service.VerseByAddress(r.Context(), addr, r.URL.Query().Get("reciter"))
	if err != nil {
		writeFetchError(w, err)
		return
	}

	response.Success(w, v)
}

// HistoryHandler godoc
// @Summary      Recently fetched verses
// @Description  Newest first, across all clients, at most 30.
// @Tags         verses
// @Produce      json
// @Param        limit  query     int  false  "1..30, default 30"
// @Success      200    {array}   verse.Verse
// @Failure      400    {object}  response.ErrorResponse
// @Failure      500    {object}  response.ErrorResponse
// @Router       /api/verses/history [get]
func (h *VerseHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(w, http.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	verses, err := h.service.RecentHistory(r.Context(), limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Error fetching verse history", err.Error())
		return
	}

	if verses == nil {
		verses = []Verse{}
	}

	response.Success(w, verses)
}

// RecitersHandler godoc
// @Summary      Audio reciters
// @Tags         verses
// @Produce      json
// @Success      200  {array}   verse.Reciter
// @Failure      500  {object}  response.ErrorResponse
// @Router       /api/verses/reciters [get]
func (h *VerseHandler) RecitersHandler(w http.ResponseWriter, r *http.Request) {
	reciters, err := h.service.Reciters(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Error fetching reciters", err.Error())
		return
	}

	if reciters == nil {
		reciters = []Reciter{}
	}

	response.Success(w, reciters)
}

// Upstream and store failures are not told apart on the wire.
func writeFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidAddress) || errors.Is(err, ErrInvalidReciter) {
		response.Error(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	response.Error(w, http.StatusInternalServerError, "Error fetching verse", err.Error())
}
