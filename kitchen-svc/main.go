package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"cloud-kitchen/config"
	httpapi "cloud-kitchen/kitchen-svc/internal/api/http"
	"cloud-kitchen/kitchen-svc/internal/service"
	"cloud-kitchen/kitchen-svc/internal/storage"
	"cloud-kitchen/session"
)

func main() {
	cfg, err := config.Load(":8081")
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg)

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.Migrate(); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	catalogSvc := service.NewCatalogService(repo)
	authSvc := service.NewAuthService(repo)
	orderSvc := service.NewOrderService(repo, repo, service.TrackingQRGenerator{BaseURL: cfg.PublicBaseURL}, cfg.PhoneRegion).
		WithPOSSystemID(cfg.POSSystemID)

	if rdb := config.MustInitRedis(cfg); rdb != nil {
		defer rdb.Close()
		orderSvc.WithIdempotency(storage.NewRedisIdempotencyStore(rdb, storage.IdempotencyTTL))
	}
	if writer := config.NewKafkaWriter(cfg, cfg.KafkaOrderTopic); writer != nil {
		defer writer.Close()
		orderSvc.WithPublisher(storage.NewKafkaPublisher(writer))
	}

	seed(catalogSvc, authSvc, cfg)

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure)
	handler := httpapi.NewHandler(catalogSvc, orderSvc, authSvc, service.NewPromoService(), sessions)
	handler.POSSystemID = cfg.POSSystemID

	httpapi.StartServer(cfg.HTTPAddr, httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins))
}

func seed(catalog *service.CatalogService, auth *service.AuthService, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if n, err := catalog.SeedMenu(ctx); err != nil {
		slog.Error("failed to seed menu", "error", err)
	} else if n > 0 {
		slog.Info("seeded menu", "products", n)
	}

	if err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("failed to seed admin account", "error", err)
	}
}
