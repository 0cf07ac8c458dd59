package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transit_console_backend/internal/busstops"
	"transit_console_backend/internal/companies"
	"transit_console_backend/internal/dashboard"
	"transit_console_backend/internal/exports"
	apphttp "transit_console_backend/internal/http"
	"transit_console_backend/internal/http/router"
	"transit_console_backend/internal/maps"
	"transit_console_backend/internal/pdf"
	"transit_console_backend/platform/config"
	"transit_console_backend/platform/logger"
	"transit_console_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Shared validator instance for dependency injection
	val := validator.New()

	// Gotenberg PDF generator. Left as a nil interface when disabled so
	// exports can tell that PDF output is switched off.
	var (
		tableConverter exports.TableConverter
		health         apphttp.HealthChecker
	)
	if cfg.IsGotenbergEnabled() {
		gotenberg := pdf.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())
		if err := withRetry(ctx, log, "gotenberg health check", 3, time.Second, func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return gotenberg.Ping(pingCtx)
		}); err != nil {
			log.Warn("gotenberg not reachable yet; PDF exports may fail", "error", err)
		}
		tableConverter = gotenberg
		health = gotenberg
		log.Info("gotenberg PDF generator initialized", "url", cfg.GetGotenbergURL())
	} else {
		log.Warn("GOTENBERG_URL not configured; PDF exports disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	busStopsModule := busstops.NewModule(val)
	mapsModule := maps.NewModule(cfg, val, log)
	exportsModule := exports.NewModule(tableConverter, cfg, val, log)
	dashboardModule := dashboard.NewModule(cfg, val)
	companiesModule := companies.NewModule(cfg, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: health,
		Modules: []apphttp.Module{
			busStopsModule,
			mapsModule,
			exportsModule,
			dashboardModule,
			companiesModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
