package common

import (
	"context"
	"fmt"
	"time"

	"global-healthops/nexus/internal/config"
	"global-healthops/nexus/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the configured redis. It returns (nil, nil) when
// redis is not configured.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if cfg.Addr == "" {
		logging.Info("Redis not configured, using in-memory stores")
		return nil, nil
	}

	logging.Info("Initializing Redis client", "addr", cfg.Addr, "db", cfg.DB)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	logging.Info("Successfully connected to Redis")
	return client, nil
}
