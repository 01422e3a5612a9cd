// Command advisor runs the periodic go/no-go batch evaluator as a service:
// it re-reads the collector's spot feeds on an interval, exposes the latest
// report and Prometheus metrics over HTTP, and optionally publishes verdict
// rows to Kafka.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/coastwatch/seawindow/internal/adapter/http"
	kafkaadapter "github.com/coastwatch/seawindow/internal/adapter/kafka"
	"github.com/coastwatch/seawindow/internal/config"
	"github.com/coastwatch/seawindow/internal/feed"
	"github.com/coastwatch/seawindow/internal/observability"
	"github.com/coastwatch/seawindow/internal/report"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	policy, err := cfg.Policy()
	if err != nil {
		logger.Error("invalid rule policy", "error", err)
		os.Exit(1)
	}

	source := buildSource(cfg, clock, logger)
	reporter := report.New(source, policy, logger, metrics, cfg.Concurrency)

	// Verdict publishing is feature-flagged via KAFKA_BROKERS.
	var publisher report.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg, clock, logger)
		publisher = writer
		logger.Info("verdict publishing enabled", "topic", cfg.KafkaVerdictTopic)
	} else {
		logger.Info("verdict publishing disabled")
	}

	runner := report.NewRunner(reporter, cfg.Spots, cfg.RunInterval, publisher, clock, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, runner, runner, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start periodic reporter.
	go func() {
		if err := runner.Run(ctx); err != nil {
			logger.Error("reporter error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// buildSource selects the feed backend (HTTP wins over directory) and wraps
// it in a cache when caching is configured.
func buildSource(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) report.Source {
	var source feed.Source
	if cfg.FeedURL != "" {
		source = feed.NewHTTPSource(cfg.FeedURL, cfg.FeedTimeout, logger)
		logger.Info("using http feed source", "base_url", cfg.FeedURL)
	} else {
		source = feed.NewDirSource(cfg.FeedDir)
		logger.Info("using directory feed source", "dir", cfg.FeedDir)
	}
	if cfg.FeedCacheSize > 0 && cfg.FeedCacheTTL > 0 {
		source = feed.NewCachedSource(source, cfg.FeedCacheSize, cfg.FeedCacheTTL, clock)
	}
	return source
}
