// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/users/domain/entity"
	"task_backend/internal/feature/users/transport/http/dto"
	"task_backend/internal/feature/users/usecase"
	"task_backend/internal/platform/http/params"
	"task_backend/internal/platform/http/response"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/logging"
)

// UserUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	Register(ctx context.Context, username, password string) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	Update(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
}

// UserHandler はユーザー操作のHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - ユーザー名重複時は409を返却
// - 成功時は201で作成したユーザーを返却
func (h *UserHandler) Register(c *gin.Context) {
	var req api.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn("register failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}

	logging.FromContext(c.Request.Context()).Info("user registered", "user_id", user.ID, "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.FromEntity(user))
}

// Get はユーザー取得APIエンドポイントを処理します。所有タスクを含みます。
func (h *UserHandler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(user))
}

// Me は認証済みユーザー自身を返します。
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(user))
}

// Update はユーザー部分更新APIエンドポイントを処理します。
func (h *UserHandler) Update(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req api.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, usecase.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn("update user failed", "error", err, "user_id", id, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}

	logging.FromContext(c.Request.Context()).Info("user updated", "user_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.FromEntity(user))
}

// Delete はユーザー削除APIエンドポイントを処理します。
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		logging.FromContext(c.Request.Context()).Warn("delete user failed", "error", err, "user_id", id, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}

	logging.FromContext(c.Request.Context()).Info("user deleted", "user_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "user deleted"})
}
