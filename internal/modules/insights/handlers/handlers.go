// Package handlers provides HTTP handlers for insight generation.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/modules/insights"
	"github.com/apartmentiq/leverage/internal/modules/market"
	"github.com/apartmentiq/leverage/internal/modules/ownership"
)

// Handler handles insight HTTP requests
type Handler struct {
	generator     *insights.Generator
	marketService *market.Service
	log           zerolog.Logger
}

// NewHandler creates a new insights handler
func NewHandler(generator *insights.Generator, marketService *market.Service, log zerolog.Logger) *Handler {
	return &Handler{
		generator:     generator,
		marketService: marketService,
		log:           log.With().Str("handler", "insights").Logger(),
	}
}

// HandleGetInsights handles GET /api/insights/{location}.
// Optional query params rent and value enable ownership-based rules.
func (h *Handler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")
	if location == "" {
		h.writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	history := h.marketService.History(r.Context(), location)

	var ownAnalysis *ownership.Analysis
	rent := queryFloat(r, "rent")
	value := queryFloat(r, "value")
	if rent > 0 && value > 0 {
		analysis, err := ownership.Analyze(value, rent)
		if err == nil {
			ownAnalysis = analysis
		}
	}

	found := h.generator.Generate(history, ownAnalysis)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"location": location,
		"insights": found,
	})
}

func queryFloat(r *http.Request, name string) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
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
