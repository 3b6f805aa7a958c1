package handlers

import (
	"context"
	"net/http"

	"github.com/wcraske/simpleCalendar/internal/api/httpx"
	"github.com/wcraske/simpleCalendar/internal/metrics"
	"github.com/wcraske/simpleCalendar/internal/weather"
)

const defaultCity = "Vancouver"

type WeatherSource interface {
	Current(ctx context.Context, city string) (weather.Report, error)
}

type WeatherHandler struct {
	Source WeatherSource
}

func NewWeatherHandler(src WeatherSource) *WeatherHandler {
	return &WeatherHandler{Source: src}
}

func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = defaultCity
	}
	rep, err := h.Source.Current(r.Context(), city)
	if err != nil {
		metrics.WeatherUpstreamErrors.Inc()
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rep)
}
