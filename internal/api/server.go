package api

import (
	"net/http"

	"github.com/futig/insurance-advisor/internal/api/docs"
	"github.com/futig/insurance-advisor/internal/api/middleware"
	v1api "github.com/futig/insurance-advisor/internal/api/v1"
	"github.com/futig/insurance-advisor/internal/api/web"
	"github.com/futig/insurance-advisor/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	webHandler *web.Handler,
	apiHandler *v1api.Handler,
	sessions middleware.SessionStarter,
	sessionCfg middleware.SessionConfig,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)   // Recover from panics
	r.Use(chimiddleware.RequestID)   // Add request ID
	r.Use(middleware.Logger(logger)) // Log requests

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessions, sessionCfg))

		web.RegisterRoutes(r, webHandler)
		v1api.RegisterRoutes(r, apiHandler)
	})

	return r
}
