// @title Dogs API
// @version 1.0
// @description CRUD de perros sobre un Record Store intercambiable.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dogs-api/internal/adapters/storage"
	"dogs-api/internal/platform/config"
	"dogs-api/internal/platform/logger"
	"dogs-api/internal/platform/metrics"
	"dogs-api/internal/router"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.New(logger.Options{}).Error("server exited", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var m *metrics.Manager
	if cfg.MetricsEnabled {
		buckets, err := cfg.HistogramBuckets()
		if err != nil {
			return err
		}
		m = metrics.NewManager(
			metrics.WithNamespace(cfg.MetricsNamespace),
			metrics.WithSubsystem(cfg.MetricsSubsystem),
			metrics.WithHistogramBuckets(buckets),
			metrics.WithGoCollectors(),
		)
	}

	backend, err := storage.Open(ctx, cfg, log, m)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn("close store", map[string]any{"error": err.Error()})
		}
	}()

	// La tabla de rutas se construye una vez y se entrega al server.
	handler := router.NewRouter(router.Options{
		Repo:          backend.Repo,
		Logger:        log,
		Metrics:       m,
		EnableSwagger: cfg.SwaggerEnabled,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr, "storage": cfg.StorageDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
