// Package handlers provides HTTP handlers for unified intelligence requests.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/modules/intelligence"
)

// Handler handles unified intelligence HTTP requests
type Handler struct {
	service *intelligence.Service
	log     zerolog.Logger
}

// NewHandler creates a new intelligence handler
func NewHandler(service *intelligence.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "intelligence").Logger(),
	}
}

// HandleAnalyze handles POST /api/intelligence
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req intelligence.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Location == "" {
		h.writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	result := h.service.Analyze(r.Context(), req)
	h.writeJSON(w, http.StatusOK, result)
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
