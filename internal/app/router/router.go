// Package router はHTTPルーティングを構成します。
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	userhandler "task_backend/internal/feature/users/transport/handler"
	platformhandler "task_backend/internal/platform/http/handler"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/logging"
	"task_backend/internal/platform/validation"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Health *platformhandler.HealthHandler
	Auth   *authhandler.AuthHandler
	Users  *userhandler.UserHandler
	Tasks  *taskhandler.TaskHandler
}

// NewRouter はすべてのルートを登録したgin.Engineを返します。
// guard は Bearer トークンが必要なルートでリクエストごとに評価されます。
func NewRouter(logger *slog.Logger, guard jwtmw.Guard, h Handlers) (*gin.Engine, error) {
	// username などのカスタムバインディングタグを登録
	if err := validation.RegisterGinBinding(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestID(logger), logging.AccessLog())

	authRequired := jwtmw.AuthRequired(guard)

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)

	users := r.Group("/users")
	{
		// 新規ユーザー登録
		users.POST("", h.Users.Register)
		users.GET("/me", authRequired, h.Users.Me)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
	}

	tasks := r.Group("/tasks")
	{
		tasks.GET("", h.Tasks.List)
		tasks.GET("/:id", h.Tasks.Get)

		// 認証必須：作成者はトークンのユーザー、更新・削除は所有者のみ
		tasks.POST("", authRequired, h.Tasks.Create)
		tasks.PUT("/:id", authRequired, h.Tasks.Update)
		tasks.DELETE("/:id", authRequired, h.Tasks.Delete)
	}

	return r, nil
}
