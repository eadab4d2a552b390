// Package redis connects to the optional Redis instance backing the task read cache.
package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"task_backend/config"
)

const pingTimeout = 5 * time.Second

// NewRedisClient returns a connected client, or nil when no Redis host is configured.
// Callers treat a nil client as "cache disabled".
func NewRedisClient(cfg config.Redis) (*redis.Client, error) {
	if !cfg.Enabled() {
		slog.Info("Redis not configured, task cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		_ = rdb.Close()
		return nil, errors.Wrapf(err, "redis ping %s failed", cfg.Addr())
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
