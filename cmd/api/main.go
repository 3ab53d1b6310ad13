package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/omarkhalil/framecraft-backend/api/routes"
	"github.com/omarkhalil/framecraft-backend/internal/ledger"
	"github.com/omarkhalil/framecraft-backend/internal/orders"
	"github.com/omarkhalil/framecraft-backend/internal/payments"
	"github.com/omarkhalil/framecraft-backend/internal/serial"
	"github.com/omarkhalil/framecraft-backend/internal/webhookconfig"
	webhookorders "github.com/omarkhalil/framecraft-backend/internal/webhooks/orders"
	"github.com/omarkhalil/framecraft-backend/pkg/config"
	"github.com/omarkhalil/framecraft-backend/pkg/db"
	"github.com/omarkhalil/framecraft-backend/pkg/env"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
	"github.com/omarkhalil/framecraft-backend/pkg/metrics"
	"github.com/omarkhalil/framecraft-backend/pkg/migrate"
	"github.com/omarkhalil/framecraft-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	webhookMetrics := metrics.NewWebhookMetrics(registry)

	gormDB := dbClient.DB()

	ledgerRepo := ledger.NewRepository(gormDB)
	ledgerSvc, err := ledger.NewService(ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(gormDB)
	serials := serial.NewGenerator(gormDB, logg, cfg.Webhook.SerialFallback)
	ordersSvc, err := orders.NewService(ordersRepo, dbClient, serials, ledgerSvc, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	paymentsSvc, err := payments.NewService(payments.NewRepository(gormDB), ledgerRepo, ordersSvc, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	webhookConfigRepo := webhookconfig.NewRepository(gormDB)
	webhookConfigSvc, err := webhookconfig.NewService(webhookConfigRepo, cfg.Webhook.KeyBytes)
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook config service", err)
		os.Exit(1)
	}

	webhookLogs := webhookorders.NewLogRepository(gormDB)
	webhookGateway, err := webhookorders.NewService(webhookConfigRepo, ordersSvc, webhookLogs, logg, webhookMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook gateway", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			ordersSvc,
			paymentsSvc,
			ledgerSvc,
			webhookConfigSvc,
			webhookGateway,
			webhookLogs,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
