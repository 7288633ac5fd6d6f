// Package router wires the route table to its handlers and wraps it with
// the shared middleware.
//
// Route table:
//
//	GET  /api/health         service status
//	POST /api/sync           acknowledge offline records
//	GET  /api/students       mock roster
//	POST /api/attendance     echo a check-in
//	GET  /api/reports/daily  mock daily summary
//	POST /api/config/test    simulated spreadsheet connection test
//	GET  /metrics            Prometheus scrape (when enabled)
//	GET  /                   static files, index document as fallback
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/attendance-api/internal/config"
	"github.com/aanand-mishra/attendance-api/internal/http/handlers/attendance"
	"github.com/aanand-mishra/attendance-api/internal/http/handlers/batch"
	"github.com/aanand-mishra/attendance-api/internal/http/handlers/health"
	"github.com/aanand-mishra/attendance-api/internal/http/handlers/report"
	"github.com/aanand-mishra/attendance-api/internal/http/handlers/sheet"
	"github.com/aanand-mishra/attendance-api/internal/http/handlers/static"
	"github.com/aanand-mishra/attendance-api/internal/http/handlers/student"
	"github.com/aanand-mishra/attendance-api/internal/http/middleware"
	"github.com/aanand-mishra/attendance-api/internal/metrics"
	"github.com/aanand-mishra/attendance-api/internal/storage"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Deps are the collaborators the handlers are built from.
type Deps struct {
	Config  *config.Config
	Storage storage.Storage
	Clock   clockwork.Clock
	Logger  *slog.Logger

	// Registry receives the HTTP metrics and backs GET /metrics.
	// Required when Config.MetricsEnabled is set.
	Registry *prometheus.Registry
}

// New returns the complete handler for the server.
func New(d Deps) http.Handler {
	cfg := d.Config
	mux := http.NewServeMux()

	// ── Route table ───────────────────────────────────────────────────
	// Go 1.22+ patterns carry the method, so "GET /" only catches GETs and
	// every other method on an unknown path gets the mux's 405.
	mux.HandleFunc("GET /api/health", health.New(cfg.Service, d.Clock))
	mux.HandleFunc("POST /api/sync", batch.Sync(d.Clock))
	mux.HandleFunc("GET /api/students", student.GetList(d.Storage, d.Clock))
	mux.HandleFunc("POST /api/attendance", attendance.New(d.Clock))
	mux.HandleFunc("GET /api/reports/daily", report.Daily(d.Clock))
	mux.HandleFunc("POST /api/config/test", sheet.Test(d.Clock))

	if cfg.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	// Static files and the SPA fallback for every other GET.
	mux.HandleFunc("GET /", static.New(cfg.Static.Dir, cfg.IndexFile))

	// ── Middleware, outermost first ──────────────────────────────────
	// Metrics sits outside Recoverer so panics are counted as 500s, and
	// outside the mux so 405s are counted too.
	mws := []middleware.Middleware{
		allowAllOrigins().Handler,
		middleware.RequestID,
		middleware.Logger(d.Logger, d.Clock),
	}
	if cfg.MetricsEnabled {
		mws = append(mws, middleware.Metrics(metrics.New(d.Registry), d.Clock))
	}
	mws = append(mws, middleware.Recoverer(cfg.Debug))

	return middleware.Chain(mux, mws...)
}

// allowAllOrigins permits every origin, method and request header without
// credentials, which makes rs/cors answer with "Access-Control-Allow-Origin: *".
func allowAllOrigins() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.HeaderRequestID},
	})
}
