package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpapi "cloud-kitchen/analytics-svc/internal/api/http"
	"cloud-kitchen/analytics-svc/internal/service"
	"cloud-kitchen/analytics-svc/internal/storage"
	"cloud-kitchen/config"
	"cloud-kitchen/session"
)

func main() {
	cfg, err := config.Load(":8083")
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	analyticsSvc := service.NewAnalyticsService(storage.NewPostgresRepository(db))

	// Snapshots are only safe while order events invalidate them, so the
	// cache needs Redis and Kafka together.
	if cfg.AnalyticsCacheTTL > 0 {
		rdb := config.MustInitRedis(cfg)
		reader := config.NewKafkaReader(cfg, cfg.KafkaOrderTopic)
		if rdb != nil && reader != nil {
			defer rdb.Close()
			defer reader.Close()
			cache := storage.NewRedisSnapshotCache(rdb, cfg.AnalyticsCacheTTL)
			analyticsSvc.WithCache(cache)
			go service.NewConsumer(reader, cache).Start(ctx)
			logger.Info("analytics snapshot cache enabled", "ttl", cfg.AnalyticsCacheTTL)
		} else {
			logger.Warn("ANALYTICS_CACHE_TTL ignored: the cache needs REDIS_HOST and KAFKA_BROKER")
			if rdb != nil {
				rdb.Close()
			}
			if reader != nil {
				reader.Close()
			}
		}
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure)
	router := httpapi.NewRouter(httpapi.NewHandler(analyticsSvc), sessions, logger, cfg.CORSAllowedOrigins)

	if err := httpapi.StartServer(ctx, cfg.HTTPAddr, router); err != nil {
		logger.Error("analytics service failed", "error", err)
		os.Exit(1)
	}
}
