// Package api exposes the QDA catalog and codec over REST.
//
// All routes live under /api/v1 and answer with the APIResponse envelope.
// When an API key is configured, requests must carry it in the X-API-Key
// header; /metrics stays unprotected for Prometheus scraping.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kaleidalab/qdakit/pkg/catalog"
)

// NewRouter builds the chi router for an API server with all routes and
// middleware configured.
func NewRouter(server *Server) chi.Router {
	metrics := server.metrics

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// API key authentication, skipped entirely when no key is configured
		if server.config.APIKey != "" {
			r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))
		}

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Table operations
		r.Post("/tables/inspect", metrics.InstrumentHandler("POST", "/api/v1/tables/inspect", server.handleInspect))
		r.Get("/tables", metrics.InstrumentHandler("GET", "/api/v1/tables", server.handleListTables))
		r.Get("/tables/{id}", metrics.InstrumentHandler("GET", "/api/v1/tables/{id}", server.handleGetTable))
		r.Get("/tables/{id}/data", metrics.InstrumentHandler("GET", "/api/v1/tables/{id}/data", server.handleGetTableData))
		r.Delete("/tables/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/tables/{id}", server.handleDeleteTable))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured. It blocks
// until the listener fails.
func StartServer(cat *catalog.Catalog, config ServerConfig, logger *zap.Logger) error {
	metrics := NewMetrics(prometheus.DefaultRegisterer)

	server := NewServer(cat, config, metrics, logger)

	r := NewRouter(server)

	// Background catalog gauge refresh
	go server.startMetricsUpdater()

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	server.logger.Info("starting REST API server",
		zap.String("addr", addr),
		zap.Bool("auth", config.APIKey != ""))

	return http.ListenAndServe(addr, r)
}
