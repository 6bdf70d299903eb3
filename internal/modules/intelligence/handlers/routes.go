package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all intelligence routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/intelligence", h.HandleAnalyze)
}
