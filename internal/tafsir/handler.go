package tafsir

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
	"github.com/taiwoajasa245/quran-verse-api/pkg/response"
)

type TafsirHandler struct {
	service *Service
}

func NewTafsirHandler(service *Service) TafsirHandler {
	return TafsirHandler{service: service}
}

// BooksHandler godoc
// @Summary      Available tafsirs
// @Tags         tafsir
// @Produce      json
// @Success      200  {array}   tafsir.Book
// @Failure      500  {object}  response.ErrorResponse
// @Router       /api/tafsir [get]
func (h *TafsirHandler) BooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.Books(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Error fetching tafsir list", err.Error())
		return
	}

	response.Success(w, books)
}

// EntryHandler godoc
// @Summary      Tafsir for a verse
// @Tags         tafsir
// @Produce      json
// @Param        tafsirId  path      int  true  "tafsir id from /api/tafsir"
// @Param        surah     path      int  true  "surah 1..114"
// @Param        verse     path      int  true  "verse within the surah"
// @Success      200       {object}  tafsir.Entry
// @Failure      400       {object}  response.ErrorResponse
// @Failure      500       {object}  response.ErrorResponse
// @Router       /api/tafsir/{tafsirId}/{surah}/{verse} [get]
func (h *TafsirHandler) EntryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "tafsirId"))
	if err != nil || id < 1 {
		response.Error(w, http.StatusBadRequest, "Invalid tafsir id", "tafsirId must be a positive integer")
		return
	}

	addr, err := verse.ParseAddressParts(chi.URLParam(r, "surah"), chi.URLParam(r, "verse"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid verse address", err.Error())
		return
	}

	entry, err := h.service.Entry(r.Context(), id, addr)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Error fetching tafsir", err.Error())
		return
	}

	response.Success(w, entry)
}
