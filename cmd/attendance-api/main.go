// main is the entry point of the attendance API.
//
// STARTUP SEQUENCE:
//  1. Load configuration (.env, optional CONFIG_PATH YAML, environment)
//  2. Initialise the logger
//  3. Open and seed the mock student roster
//  4. Build the router
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	PORT=8080 STATIC_DIR=./web go run ./cmd/attendance-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/attendance-api/internal/config"
	"github.com/aanand-mishra/attendance-api/internal/http/router"
	"github.com/aanand-mishra/attendance-api/internal/storage/sqlite"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad exits the process if the config is invalid, so cfg is
	// always usable below. Every field has a default; PORT is the usual
	// override on hosted platforms.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Handlers log through the package-level slog functions, so the
	// configured logger is also installed as the default.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting attendance-api",
		slog.String("env", cfg.Env),
		slog.String("version", cfg.Version),
	)

	// ── 3. Initialise the Roster ──────────────────────────────────────────
	// The roster is seeded with the mock students and never written to.
	storage, err := sqlite.New(context.Background(), cfg.StoragePath)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Build the Router ───────────────────────────────────────────────
	// A private registry keeps /metrics limited to what this process
	// registers; runtime collectors are added only when it is exposed.
	reg := prometheus.NewRegistry()
	if cfg.MetricsEnabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.New(router.Deps{
			Config:   cfg,
			Storage:  storage,
			Clock:    clockwork.NewRealClock(),
			Logger:   log,
			Registry: reg,
		}),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 5. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks, so it runs beside the signal wait below.
	// http.ErrServerClosed is the normal result of Shutdown.
	go func() {
		log.Info("server started",
			slog.String("address", cfg.Addr()),
			slog.String("static_dir", cfg.Static.Dir),
			slog.Bool("metrics", cfg.MetricsEnabled),
		)

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered so a signal is not lost while main is busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	// Stop accepting connections and give in-flight requests 5 seconds.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
