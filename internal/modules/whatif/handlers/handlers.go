// Package handlers provides HTTP handlers for what-if analysis.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/modules/scenarios"
	"github.com/apartmentiq/leverage/internal/modules/whatif"
)

// Handler handles what-if HTTP requests
type Handler struct {
	engine *whatif.Engine
	log    zerolog.Logger
}

// NewHandler creates a new what-if handler
func NewHandler(engine *whatif.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		log:    log.With().Str("handler", "whatif").Logger(),
	}
}

// runRequest is the body for POST /api/whatif.
type runRequest struct {
	Name      string              `json:"name"`
	Variables []whatif.Variable   `json:"variables"`
	Portfolio scenarios.Portfolio `json:"portfolio"`
}

// HandleRun handles POST /api/whatif
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	analysis, err := h.engine.Run(req.Name, req.Variables, req.Portfolio)
	if err != nil {
		if errors.Is(err, whatif.ErrInvalidInput) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("What-if analysis failed")
		h.writeError(w, http.StatusInternalServerError, "What-if analysis failed")
		return
	}

	h.writeJSON(w, http.StatusOK, analysis)
}

// HandleGet handles GET /api/whatif/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	analysis := h.engine.Get(id)
	if analysis == nil {
		h.writeError(w, http.StatusNotFound, "Analysis not found")
		return
	}

	h.writeJSON(w, http.StatusOK, analysis)
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
