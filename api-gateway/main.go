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

	"cloud-kitchen/api-gateway/internal/gateway"
	"cloud-kitchen/config"
	"cloud-kitchen/middleware"

	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load(":8080")
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg)

	gw := gateway.NewGateway(gateway.Config{
		KitchenSvcURL:   cfg.KitchenSvcURL,
		AnalyticsSvcURL: cfg.AnalyticsSvcURL,
		FrontendDir:     cfg.FrontendDir,
	}, &http.Client{Timeout: 60 * time.Second})

	r := gw.SetupRoutes()
	r.Use(middleware.Recover, middleware.RequestID, middleware.Logging(logger))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Idempotency-Key", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition", "Location", "Idempotent-Replayed"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("api gateway starting", "addr", cfg.HTTPAddr,
			"kitchen", cfg.KitchenSvcURL, "analytics", cfg.AnalyticsSvcURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api gateway failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
