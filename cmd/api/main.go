package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/quran-verse-api/docs"
	"github.com/taiwoajasa245/quran-verse-api/internal/cache"
	"github.com/taiwoajasa245/quran-verse-api/internal/database"
	"github.com/taiwoajasa245/quran-verse-api/internal/server"
	"github.com/taiwoajasa245/quran-verse-api/pkg/config"
	"github.com/taiwoajasa245/quran-verse-api/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	db, err := database.New(ctx, cfg.DatabaseURL, database.PoolConfig{MaxConns: 10, MaxConnLifetime: time.Hour})
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	stats := db.Health()
	if stats["status"] != "up" {
		zl.Fatal("database connection failed", zap.String("error", stats["error"]))
	}
	zl.Info("database connection successful", zap.String("total_connections", stats["total_connections"]))

	var c cache.Cache = cache.NopCache{}
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			zl.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		c = cache.NewRedisCache(client, "quranverse")
	} else {
		zl.Info("REDIS_URL not set, responses will not be cached")
	}

	docs.SwaggerInfo.Host = cfg.SwaggerHost

	srv := server.NewServer(cfg, server.Deps{DB: db, Cache: c, Logger: zl})
	httpServer := srv.HTTPServer()

	srv.StartBackgroundJobs()

	go func() {
		zl.Info("server starting", zap.String("addr", httpServer.Addr), zap.String("env", cfg.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv.StopBackgroundJobs()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}
