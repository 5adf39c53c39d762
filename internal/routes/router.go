package routes

import (
	"net/http"

	"acme-ice-cream/flavors/internal/api"
	"acme-ice-cream/flavors/internal/logging"
	"acme-ice-cream/flavors/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(deps *api.Dependencies) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	r.Use(middleware.Logging)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if deps.Config.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(deps.Config.RateLimitRPS, deps.Config.RateLimitBurst, deps.Metrics)
		r.Use(limiter.Middleware)
		logging.Info("Rate limiting enabled",
			"rps", deps.Config.RateLimitRPS,
			"burst", deps.Config.RateLimitBurst,
		)
	}

	handlers := api.NewHandlers(deps)

	r.Get("/healthCheck", handlers.HealthCheck())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))

	RegisterAPIRoutes(r, handlers)

	logging.Info("Router initialized", "strict_mode", deps.Config.StrictMode)
	return r
}
