package routes

import (
	"global-healthops/nexus/internal/api"
	"global-healthops/nexus/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API routes and handlers under the API prefix.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers) {
	limiter := middleware.NewRateLimiter(deps.Config.RateLimit.RPS, deps.Config.RateLimit.Burst)
	requireAuth := middleware.AuthMiddleware(deps.Services.Auth)

	r.Route(deps.Config.APIPrefix, func(v1 chi.Router) {
		v1.Get("/health/check", handlers.HealthCheck())

		v1.Route("/auth", func(authRoutes chi.Router) {
			// Public, rate limited per client IP
			authRoutes.Group(func(public chi.Router) {
				public.Use(limiter.Middleware)
				public.Post("/login", handlers.Login())
				public.Post("/register", handlers.Register())
			})

			authRoutes.Group(func(session chi.Router) {
				session.Use(requireAuth)
				session.Get("/me", handlers.Me())
				session.Post("/logout", handlers.Logout())
			})
		})

		// Everything else requires a bearer token
		v1.Group(func(protected chi.Router) {
			protected.Use(requireAuth)

			protected.Route("/patients", func(patients chi.Router) {
				patients.Get("/", handlers.ListPatients())
				patients.Post("/", handlers.CreatePatient())

				patients.Route("/{patientID}", func(patient chi.Router) {
					patient.Get("/", handlers.GetPatient())
					patient.Put("/", handlers.UpdatePatient())
					patient.Delete("/", handlers.DeletePatient())

					patient.Route("/records", func(records chi.Router) {
						records.Get("/", handlers.ListPatientRecords())
						records.Post("/", handlers.CreatePatientRecord())
					})
				})
			})

			protected.Route("/records/{recordID}", func(record chi.Router) {
				record.Get("/", handlers.GetRecord())
				record.Put("/", handlers.UpdateRecord())
				record.Delete("/", handlers.DeleteRecord())
			})
		})
	})
}
