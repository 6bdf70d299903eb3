// Package handlers provides HTTP handlers for scenario planning operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/modules/scenarios"
)

// Handler handles scenario HTTP requests
type Handler struct {
	repo   *scenarios.Repository
	engine *scenarios.Engine
	log    zerolog.Logger
}

// NewHandler creates a new scenarios handler
func NewHandler(repo *scenarios.Repository, engine *scenarios.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		engine: engine,
		log:    log.With().Str("handler", "scenarios").Logger(),
	}
}

// HandleList handles GET /api/scenarios
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	defs, err := h.repo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list scenarios")
		h.writeError(w, http.StatusInternalServerError, "Failed to list scenarios")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": defs,
	})
}

// HandleGet handles GET /api/scenarios/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	def, err := h.repo.Get(id)
	if err != nil {
		if errors.Is(err, scenarios.ErrScenarioNotFound) {
			h.writeError(w, http.StatusNotFound, "Scenario not found")
			return
		}
		h.log.Error().Err(err).Str("scenario_id", id).Msg("Failed to load scenario")
		h.writeError(w, http.StatusInternalServerError, "Failed to load scenario")
		return
	}

	h.writeJSON(w, http.StatusOK, def)
}

// HandleAnalyze handles POST /api/scenarios/{id}/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var portfolio scenarios.Portfolio
	if err := json.NewDecoder(r.Body).Decode(&portfolio); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	analysis, err := h.engine.Analyze(id, portfolio)
	if err != nil {
		if errors.Is(err, scenarios.ErrScenarioNotFound) {
			h.writeError(w, http.StatusNotFound, "Scenario not found")
			return
		}
		h.log.Error().Err(err).Str("scenario_id", id).Msg("Scenario analysis failed")
		h.writeError(w, http.StatusInternalServerError, "Scenario analysis failed")
		return
	}

	h.writeJSON(w, http.StatusOK, analysis)
}

// compareRequest is the body for POST /api/scenarios/compare.
type compareRequest struct {
	ScenarioIDs []string            `json:"scenarioIds"`
	Portfolio   scenarios.Portfolio `json:"portfolio"`
}

// HandleCompare handles POST /api/scenarios/compare
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.ScenarioIDs) == 0 {
		h.writeError(w, http.StatusBadRequest, "scenarioIds is required")
		return
	}

	comparison, err := h.engine.Compare(req.ScenarioIDs, req.Portfolio)
	if err != nil {
		if errors.Is(err, scenarios.ErrScenarioNotFound) {
			h.writeError(w, http.StatusNotFound, "Scenario not found")
			return
		}
		h.log.Error().Err(err).Msg("Scenario comparison failed")
		h.writeError(w, http.StatusInternalServerError, "Scenario comparison failed")
		return
	}

	h.writeJSON(w, http.StatusOK, comparison)
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
