// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"task_backend/config"
	"task_backend/internal/platform/db"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/password"
	platformredis "task_backend/internal/platform/redis"
)

// NewDB opens the configured store and closes it when the application stops.
func NewDB(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gdb, err := db.Open(cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close(gdb)
		},
	})
	return gdb, nil
}

// NewRedis returns the cache client, or nil when Redis is not configured or unreachable.
// The service keeps running without the task cache in the latter case.
func NewRedis(lc fx.Lifecycle, cfg *config.Config) *redis.Client {
	rdb, err := platformredis.NewRedisClient(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		return nil
	}
	if rdb == nil {
		return nil
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}

// NewPasswordHasher creates the bcrypt hasher with the configured cost.
func NewPasswordHasher(cfg *config.Config) *password.BcryptHasher {
	return password.NewBcryptHasher(cfg.Auth.BcryptCost)
}

// NewTokenService creates the token service from the process-wide JWT settings.
func NewTokenService(cfg *config.Config) (*jwtmw.TokenService, error) {
	return jwtmw.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
}
