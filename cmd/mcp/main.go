package main

import (
	"fmt"
	"os"

	"campaigngo/internal/infrastructure"
	"campaigngo/internal/mcpserver"
	"campaigngo/internal/usecase"
	"campaigngo/pkg/config"
	"campaigngo/pkg/logger"
	"campaigngo/pkg/metrics"

	"github.com/mark3labs/mcp-go/server"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol
	log := logger.NewWithOptions(cfg.Logging.Level, logger.Options{JSON: cfg.Logging.JSON, Output: os.Stderr})
	m := metrics.New()

	svc := usecase.NewCampaignService(
		infrastructure.NewMemoryCampaignRepository(log),
		log,
		m,
		cfg.Parser.WorkerPoolSize,
		usecase.WithLimits(cfg.Parser.MaxBatchSize, cfg.Parser.MaxInputBytes),
	)

	log.WithField("version", version).Info("Starting MCP server on stdio")
	if err := server.ServeStdio(mcpserver.NewServer(svc, version)); err != nil {
		log.WithError(err).Fatal("MCP server failed")
	}
}
