package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all scenario routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/scenarios", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/compare", h.HandleCompare)
		r.Get("/{id}", h.HandleGet)
		r.Post("/{id}/analyze", h.HandleAnalyze)
	})
}
