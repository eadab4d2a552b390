// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/http/params"
	"task_backend/internal/platform/http/response"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/logging"
)

// TaskUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TaskUsecase interface {
	Create(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error)
	List(ctx context.Context) ([]entity.Task, error)
	Get(ctx context.Context, id uint) (*entity.Task, error)
	Update(ctx context.Context, callerID, id uint, patch entity.TaskPatch) (*entity.Task, error)
	Delete(ctx context.Context, callerID, id uint) error
}

// TaskHandler はタスクのHTTPリクエストを処理します。
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create はタスク作成APIエンドポイントを処理します。
// 所有者はリクエストボディではなく認証済みユーザーから決まります。
func (h *TaskHandler) Create(c *gin.Context) {
	var req api.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	in := usecase.CreateTaskInput{Title: req.Title, Description: req.Description}
	if req.Completed != nil {
		in.Completed = *req.Completed
	}

	ownerID := c.GetUint(jwtmw.ContextUserID)
	task, err := h.tasks.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn("create task failed", "error", err, "user_id", ownerID, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}

	logging.FromContext(c.Request.Context()).Info("task created", "task_id", task.ID, "user_id", ownerID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.FromEntity(task))
}

// List は全タスク一覧APIエンドポイントを処理します。
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(tasks))
}

// Get はタスク取得APIエンドポイントを処理します。
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(task))
}

// Update はタスク部分更新APIエンドポイントを処理します。
// - 存在しないタスクは404
// - 所有者以外は403（タイトルの検証より先に判定）
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req api.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	callerID := c.GetUint(jwtmw.ContextUserID)
	task, err := h.tasks.Update(c.Request.Context(), callerID, id, entity.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn("update task failed", "error", err, "task_id", id, "user_id", callerID, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}

	logging.FromContext(c.Request.Context()).Info("task updated", "task_id", id, "user_id", callerID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.FromEntity(task))
}

// Delete はタスク削除APIエンドポイントを処理します。
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	callerID := c.GetUint(jwtmw.ContextUserID)
	if err := h.tasks.Delete(c.Request.Context(), callerID, id); err != nil {
		logging.FromContext(c.Request.Context()).Warn("delete task failed", "error", err, "task_id", id, "user_id", callerID, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}

	logging.FromContext(c.Request.Context()).Info("task deleted", "task_id", id, "user_id", callerID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "task deleted"})
}
