package routes

import (
	"net/http"

	"global-healthops/nexus/internal/api"
	"global-healthops/nexus/internal/logging"
	"global-healthops/nexus/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterRoutes builds the chi router: operational endpoints at the root and
// the API under the configured prefix.
func RegisterRoutes(deps *api.Dependencies) http.Handler {
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Logging)
	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	handlers := api.NewHandlers(deps)

	// operational endpoints
	r.Get("/health", handlers.Health())
	r.Get("/health/check", handlers.HealthCheck())
	r.Get("/health/detailed", handlers.DetailedHealth())
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	RegisterAPIRoutes(r, deps, handlers)

	logging.Info("Router initialized", "api_prefix", deps.Config.APIPrefix)
	return r
}
