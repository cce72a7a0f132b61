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

	"campaigngo/internal/delivery"
	"campaigngo/internal/infrastructure"
	"campaigngo/internal/usecase"
	"campaigngo/pkg/config"
	"campaigngo/pkg/logger"
	"campaigngo/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(cfg.Logging.Level, logger.Options{JSON: cfg.Logging.JSON})
	log.WithFields(map[string]any{
		"port":    cfg.Server.Port,
		"storage": cfg.Storage.Driver,
	}).Info("Starting server")

	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := infrastructure.NewCampaignRepository(ctx, cfg.Storage, log, m)
	if err != nil {
		log.WithError(err).Fatal("Failed to open campaign repository")
	}
	defer repo.Close()

	opts := []usecase.Option{
		usecase.WithLimits(cfg.Parser.MaxBatchSize, cfg.Parser.MaxInputBytes),
	}

	if cfg.Messaging.NatsURL != "" {
		publisher, err := infrastructure.NewNATSPublisher(cfg.Messaging.NatsURL, cfg.Messaging.NatsToken, cfg.Messaging.SubjectPrefix, log, m)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to NATS")
		}
		defer publisher.Close()
		opts = append(opts, usecase.WithPublisher(publisher))
	}

	if cfg.External.SinkURL != "" {
		sink := infrastructure.NewSinkClient(
			cfg.External.SinkURL,
			cfg.External.SinkSecret,
			cfg.External.SinkTimeout,
			cfg.External.RateLimitPerSecond,
			log,
			m,
		)
		opts = append(opts, usecase.WithExporter(sink))
	}

	campaignService := usecase.NewCampaignService(repo, log, m, cfg.Parser.WorkerPoolSize, opts...)
	summaryService := usecase.NewSummaryService(repo, log)

	handlers := delivery.NewHTTPHandlers(campaignService, summaryService, log)
	router := delivery.NewHTTPRouter(handlers, cfg.Server, log, m, prometheus.DefaultGatherer)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server")
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}

	log.Info("Server stopped")
}
