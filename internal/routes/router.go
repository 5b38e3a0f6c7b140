package routes

import (
	"context"
	"net/http"
	"time"

	"ekklesia/registry/internal/api"
	"ekklesia/registry/internal/db"
	"ekklesia/registry/internal/jobs"
	"ekklesia/registry/internal/logging"
	"ekklesia/registry/internal/metrics"
	"ekklesia/registry/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// Start the scheduled status sweep
	sweepJob := jobs.InitializeJobs(
		context.Background(),
		deps.Repo.MemberGorm,
		deps.Repo.Member,
		metricsReg,
	)

	// Initialize jobs handler for manual triggering
	jobsHandler := api.NewJobsHandler(sweepJob)

	RegisterAPIRoutes(r, handlers, jobsHandler, deps)

	return r
}
