// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/platform/logging"
)

const pingTimeout = 2 * time.Second

// Pinger はデータベースの疎通確認を抽象化します。
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler はサービスヘルスチェック用の /healthz エンドポイントを処理します。
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler はHealthHandlerの新しいインスタンスを生成します。
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health はHTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// GETではデータベースへの疎通を確認し、失敗時は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logging.FromContext(c.Request.Context()).Error("health check failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}
