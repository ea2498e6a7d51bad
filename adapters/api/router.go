// Package api exposes the series visibility model of the chart being served
// as a small JSON API.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"benchgraph/domain/benchmark"
	"benchgraph/domain/chart"
	"benchgraph/domain/core"
	"benchgraph/internal"
)

// FigureProvider yields the figure currently on screen; nil before the first run
type FigureProvider interface {
	Current() *chart.Figure
}

// Handler serves the series endpoints
type Handler struct {
	figures FigureProvider
	logger  *internal.Logger
}

// NewRouter builds the chi router for the series API
func NewRouter(figures FigureProvider, logger *internal.Logger) http.Handler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	h := &Handler{figures: figures, logger: logger.With("api")}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Cache-Control", "no-store"))

	r.Get("/series", h.handleListSeries)
	r.Get("/series/{id}", h.handleGetSeries)
	r.Post("/series/{id}/toggle", h.handleToggleSeries)
	r.Put("/series/{id}/visibility", h.handleSetVisibility)
	r.Get("/visibility", h.handleHidden)
	return r
}

type visibilityResponse struct {
	ID      int  `json:"id"`
	Visible bool `json:"visible"`
}

type visibilityRequest struct {
	Visible *bool `json:"visible"`
}

func (h *Handler) handleListSeries(w http.ResponseWriter, r *http.Request) {
	fig, ok := h.figure(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, fig.Visibility.Apply(fig.Series))
}

func (h *Handler) handleGetSeries(w http.ResponseWriter, r *http.Request) {
	fig, s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	s.Visible = fig.Visibility.Visible(s.ID)
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) handleToggleSeries(w http.ResponseWriter, r *http.Request) {
	fig, s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	visible := fig.Visibility.Toggle(s.ID)
	h.logger.Debug("series %d (%s) visible=%t", s.ID, s.Label, visible)
	writeJSON(w, http.StatusOK, visibilityResponse{ID: s.ID, Visible: visible})
}

func (h *Handler) handleSetVisibility(w http.ResponseWriter, r *http.Request) {
	fig, s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Visible == nil {
		writeError(w, http.StatusBadRequest, "body must be {\"visible\": true|false}")
		return
	}
	fig.Visibility.Set(s.ID, *req.Visible)
	h.logger.Debug("series %d (%s) visible=%t", s.ID, s.Label, *req.Visible)
	writeJSON(w, http.StatusOK, visibilityResponse{ID: s.ID, Visible: *req.Visible})
}

func (h *Handler) handleHidden(w http.ResponseWriter, r *http.Request) {
	fig, ok := h.figure(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"hidden": fig.Visibility.Hidden()})
}

func (h *Handler) figure(w http.ResponseWriter) (*chart.Figure, bool) {
	fig := h.figures.Current()
	if fig == nil {
		writeError(w, http.StatusServiceUnavailable, "no chart loaded")
		return nil, false
	}
	return fig, true
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*chart.Figure, benchmark.Series, bool) {
	fig, ok := h.figure(w)
	if !ok {
		return nil, benchmark.Series{}, false
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "series id must be an integer")
		return nil, benchmark.Series{}, false
	}
	s, err := findSeries(fig, id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, benchmark.Series{}, false
	}
	return fig, s, true
}

func findSeries(fig *chart.Figure, id int) (benchmark.Series, error) {
	for _, s := range fig.Series {
		if s.ID == id {
			return s, nil
		}
	}
	return benchmark.Series{}, core.ErrSeriesNotFound
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
