package web

import (
	"net/http"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers page and form routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/"+string(entity.TabRecommend), http.StatusFound)
	})

	for _, tab := range entity.Tabs {
		r.Get("/"+string(tab.ID), h.ShowTab(tab.ID))
	}

	r.Post("/profile", h.SaveProfile)
	r.Post("/profile/needs/{need}", h.ToggleNeed)
	r.Post("/analyze", h.Analyze)
	r.Post("/chat", h.Chat)
	r.Post("/chat/example/{n}", h.AskExample)
	r.Post("/reset", h.Reset)
	r.Get("/report", h.DownloadReport)
}
