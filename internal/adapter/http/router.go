package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http/handler"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	IngestHandler  *handler.IngestHandler
	ExpenseHandler *handler.ExpenseHandler
	ReportHandler  *handler.ReportHandler
	HealthHandler  *handler.HealthHandler
	Logger         zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Ingestion
	r.Post("/ingest/receipt", cfg.IngestHandler.Ingest)

	// Queries and reports
	r.Get("/expenses", cfg.ExpenseHandler.List)
	r.Get("/reports/daily_revenue", cfg.ReportHandler.DailyRevenue)

	return r
}
