// Package handlers provides HTTP handlers for market data operations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/modules/market"
)

// Handler handles market HTTP requests
type Handler struct {
	service *market.Service
	log     zerolog.Logger
}

// NewHandler creates a new market handler
func NewHandler(service *market.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "market").Logger(),
	}
}

// HandleGetHistory handles GET /api/market/{location}
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")
	if location == "" {
		h.writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	history := h.service.History(r.Context(), location)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"location": location,
		"history":  history,
	})
}

// HandleGetTrends handles GET /api/market/{location}/trends
func (h *Handler) HandleGetTrends(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")
	if location == "" {
		h.writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	history := h.service.History(r.Context(), location)
	trends := market.AnalyzeTrends(history)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"location": location,
		"trends":   trends,
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
		},
	})
}
