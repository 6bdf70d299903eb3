package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all market routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/market", func(r chi.Router) {
		r.Get("/{location}", h.HandleGetHistory)
		r.Get("/{location}/trends", h.HandleGetTrends)
	})
}
