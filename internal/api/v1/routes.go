package v1

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the JSON API routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", h.GetState)
		r.Post("/chat", h.Chat)
		r.Post("/analyze", h.Analyze)
		r.Get("/plan", h.GetPlan)
	})
}
