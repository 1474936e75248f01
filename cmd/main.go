package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ranjitbudhathoki/cricbelbari/config"
	"github.com/ranjitbudhathoki/cricbelbari/handlers"
	"github.com/ranjitbudhathoki/cricbelbari/monitor"
	"github.com/ranjitbudhathoki/cricbelbari/repositories"
	api "github.com/ranjitbudhathoki/cricbelbari/routes"
	"github.com/ranjitbudhathoki/cricbelbari/services"
	"github.com/ranjitbudhathoki/cricbelbari/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("roster_api", cfg.RosterAPIURL),
		slog.String("photo_source", cfg.PhotoSource),
	)

	metrics := monitor.NewMetrics(cfg.MetricsNamespace)

	httpClient := metrics.InstrumentClient(&http.Client{Timeout: cfg.RosterAPITimeout})
	playerRepo := repositories.NewHTTPPlayerRepository(cfg.RosterAPIURL, httpClient, logger)
	logger.Info("roster API client initialized", slog.Duration("timeout", cfg.RosterAPITimeout))

	photos, err := newPhotoSource(cfg)
	if err != nil {
		logger.Error("failed to initialize photo source", slog.Any("error", err))
		os.Exit(1)
	}

	screenService := services.NewScreenService(playerRepo, photos, metrics, logger, services.ScreenLimits{
		IdleTimeout: cfg.ScreenIdleTimeout,
		MaxScreens:  cfg.MaxScreens,
	})

	screenHandler := handlers.NewScreenHandler(screenService)
	formHandler := handlers.NewFormHandler(screenService)

	router := chi.NewRouter()
	api.SetupRoutes(router, screenHandler, formHandler, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
		Metrics:        metrics,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RosterAPITimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		screenService.Screens().Run(gctx, logger)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func newPhotoSource(cfg *config.Config) (storage.PhotoSource, error) {
	switch cfg.PhotoSource {
	case config.PhotoSourceFile:
		return storage.NewFileSource(cfg.PhotoDir)
	case config.PhotoSourceR2:
		return storage.NewCloudflareR2Source(storage.CloudflareR2SourceConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
		})
	default:
		return nil, nil
	}
}
