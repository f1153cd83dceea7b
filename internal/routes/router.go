package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"flight-footprint/atlas/internal/api"
	"flight-footprint/atlas/internal/auth"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/metrics"
	"flight-footprint/atlas/internal/middleware"
)

// Options carries the HTTP-level settings of the router.
type Options struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	// AdminSigner enables the admin routes when non-nil.
	AdminSigner *auth.TokenSigner
}

func RegisterRoutes(handlers *api.Handlers, metricsReg *metrics.MetricsRegistry, opts Options, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/healthCheck", handlers.HealthCheckHandler(upSince))

	limiter := middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)

	r.Group(func(public chi.Router) {
		public.Use(limiter.Middleware)
		public.Use(middleware.InFlightMiddleware(metricsReg))

		public.Get("/suggest", handlers.SuggestHandler())
		public.Get("/get-coordinates", handlers.CoordinatesHandler())

		public.Get("/api/v1/airports/{iata}", handlers.AirportHandler())
		public.Get("/api/v1/emissions", handlers.EmissionsHandler())

		if handlers.HasMirror() {
			public.Get("/api/v1/mirror/airports", handlers.MirrorListHandler())
			public.Get("/api/v1/mirror/airports/{iata}", handlers.MirrorAirportHandler())
		}
	})

	if opts.AdminSigner != nil {
		r.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminAuthMiddleware(opts.AdminSigner))
			admin.Use(middleware.InFlightMiddleware(metricsReg))
			admin.Post("/api/v1/admin/regenerate", handlers.RegenerateHandler())
		})
		logging.Info("Admin routes enabled")
	}

	logging.Info("Router initialized with metrics and logging middleware")
	return r
}
