package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"global-healthops/nexus/internal/api"
	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/config"
	"global-healthops/nexus/internal/db"
	"global-healthops/nexus/internal/logging"
	"global-healthops/nexus/internal/metrics"
	"global-healthops/nexus/internal/routes"
	"global-healthops/nexus/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Nexus starting up",
		"project", cfg.ProjectName,
		"version", cfg.Version,
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to DB with GORM
	orm, err := db.OpenORM(cfg.Database)
	if err != nil {
		logging.Fatal("Failed to connect to database", "error", err)
	}
	if err := db.Migrate(orm); err != nil {
		logging.Fatal("Failed to migrate schema", "error", err)
	}

	// Probe connection for the database health check
	probe, err := db.OpenProbe(cfg.Database, orm)
	if err != nil {
		logging.Fatal("Failed to open database probe", "error", err)
	}

	redisClient, err := common.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logging.Fatal("Failed to connect to Redis", "error", err)
	}

	reg := prometheus.NewRegistry()
	metrics.RegisterRuntimeCollectors(reg)
	metricsReg := metrics.NewMetricsRegistry(reg)

	deps, err := api.InitDependencies(cfg, api.Infra{ORM: orm, Probe: probe, Redis: redisClient}, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err)
	}

	workers.InitWorkers(ctx, deps.Services.Health, cfg.Health.RefreshInterval)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           routes.RegisterRoutes(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
	}

	if cfg.Database.Driver == "postgres" {
		if err := probe.Close(); err != nil {
			logging.Warn("Failed to close database probe", "error", err)
		}
	}
	if sqlDB, err := orm.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logging.Warn("Failed to close database", "error", err)
		}
	}
	if err := deps.Services.Revocations.Close(); err != nil {
		logging.Warn("Failed to close Redis", "error", err)
	}

	logging.Info("Shutdown complete")
}
