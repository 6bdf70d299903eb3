package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all what-if routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/whatif", func(r chi.Router) {
		r.Post("/", h.HandleRun)
		r.Get("/{id}", h.HandleGet)
	})
}
