package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"task_backend/config"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	useradapters "task_backend/internal/feature/users/adapters"
	userhandler "task_backend/internal/feature/users/transport/handler"
	userusecase "task_backend/internal/feature/users/usecase"
	"task_backend/internal/platform/cache"
	"task_backend/internal/platform/db"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/password"
)

// AuthService is the auth usecase seen by both the login handler and the access guard.
type AuthService interface {
	authhandler.AuthUsecase
	jwtmw.Guard
}

// NewTaskCache wraps the task repository with Redis caching. A nil rdb disables caching.
func NewTaskCache(rdb *redis.Client, cfg *config.Config, gdb *gorm.DB) *cache.CachingTaskReader {
	return cache.NewCachingTaskReader(rdb, cfg.Redis.TTL, taskadapters.NewTaskGorm(gdb), "tasks")
}

// NewTaskUsecase creates the task usecase. Reads go through the cache; writes run in a transaction.
func NewTaskUsecase(tm *db.TxManager, tasks *cache.CachingTaskReader) taskhandler.TaskUsecase {
	return taskusecase.NewTaskUsecase(tasks, db.NewTransactor(tm, taskadapters.BindTaskRepository), tasks)
}

// NewUserUsecase creates the user usecase. Deleting a user evicts the removed tasks from the cache.
func NewUserUsecase(gdb *gorm.DB, tm *db.TxManager, hasher *password.BcryptHasher, tasks *cache.CachingTaskReader) userhandler.UserUsecase {
	return userusecase.NewUserUsecase(
		useradapters.NewUserGorm(gdb),
		db.NewTransactor(tm, useradapters.BindUserRepository),
		hasher,
		tasks,
	)
}

// NewAuthService creates the auth usecase backed by the user store.
func NewAuthService(gdb *gorm.DB, hasher *password.BcryptHasher, tokens *jwtmw.TokenService) (AuthService, error) {
	auth, err := authusecase.NewAuthUsecase(useradapters.NewUserGorm(gdb), hasher, tokens)
	if err != nil {
		return nil, err
	}
	return auth, nil
}

// NewGuard exposes the auth usecase as the access guard used by the router.
func NewGuard(auth AuthService) jwtmw.Guard {
	return auth
}

// NewAuthHandler creates the login handler.
func NewAuthHandler(auth AuthService) *authhandler.AuthHandler {
	return authhandler.NewAuthHandler(auth)
}
