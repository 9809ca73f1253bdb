package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/aide"
	"github.com/aretw0/aide/internal/config"
	httpAdapter "github.com/aretw0/aide/pkg/adapters/http"
	"github.com/aretw0/aide/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return err
	}

	assistant, cleanup, err := NewAssistant(ctx, cfg, logger,
		aide.WithLifecycleHooks(metrics.Hooks()),
		aide.WithCatalogObserver(metrics.ObserveCatalog),
	)
	if err != nil {
		return err
	}
	defer cleanup()

	handler := httpAdapter.NewHandler(assistant,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithVersion(aide.Version),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting aide server", "addr", srv.Addr, "tree", cfg.Tree)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if cerr := srv.Close(); cerr != nil && !errors.Is(cerr, http.ErrServerClosed) {
				return cerr
			}
		}
		logger.Info("aide server stopped gracefully")
		return nil
	}
}
