package prayer

import (
	"net/http"
	"strconv"

	"github.com/taiwoajasa245/quran-verse-api/pkg/response"
)

type PrayerHandler struct {
	service *Service
}

func NewPrayerHandler(service *Service) PrayerHandler {
	return PrayerHandler{service: service}
}

// PrayerTimesHandler godoc
// @Summary      Prayer times
// @Description  Today's timings for a city. Defaults to the configured city and method 2.
// @Tags         prayer
// @Produce      json
// @Param        city     query     string  false  "city"
// @Param        country  query     string  false  "country"
// @Param        method   query     int     false  "calculation method"
// @Success      200      {object}  prayer.Times
// @Failure      400      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /api/prayer-times [get]
func (h *PrayerHandler) PrayerTimesHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	method := 0
	if raw := params.Get("method"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 0 {
			response.Error(w, http.StatusBadRequest, "Invalid method", "method must be a non-negative integer")
			return
		}
		method = m
	}

	times, err := h.service.Times(r.Context(), h.service.Resolve(params.Get("city"), params.Get("country"), method))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Error fetching prayer times", err.Error())
		return
	}

	response.Success(w, times)
}
