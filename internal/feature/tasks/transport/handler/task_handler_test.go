package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/logging"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockTaskUsecase はTaskUsecaseのモック実装です。
type mockTaskUsecase struct {
	createFn func(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error)
	listFn   func(ctx context.Context) ([]entity.Task, error)
	getFn    func(ctx context.Context, id uint) (*entity.Task, error)
	updateFn func(ctx context.Context, callerID, id uint, patch entity.TaskPatch) (*entity.Task, error)
	deleteFn func(ctx context.Context, callerID, id uint) error
}

func (m *mockTaskUsecase) Create(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error) {
	return m.createFn(ctx, ownerID, in)
}

func (m *mockTaskUsecase) List(ctx context.Context) ([]entity.Task, error) {
	return m.listFn(ctx)
}

func (m *mockTaskUsecase) Get(ctx context.Context, id uint) (*entity.Task, error) {
	return m.getFn(ctx, id)
}

func (m *mockTaskUsecase) Update(ctx context.Context, callerID, id uint, patch entity.TaskPatch) (*entity.Task, error) {
	return m.updateFn(ctx, callerID, id, patch)
}

func (m *mockTaskUsecase) Delete(ctx context.Context, callerID, id uint) error {
	return m.deleteFn(ctx, callerID, id)
}

// setupRouter は認証済みユーザーIDをコンテキストに設定した状態でルートを登録します。
func setupRouter(uc TaskUsecase, callerID uint) *gin.Engine {
	h := NewTaskHandler(uc)
	r := gin.New()
	auth := func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, callerID)
		c.Next()
	}
	r.GET("/tasks", h.List)
	r.GET("/tasks/:id", h.Get)
	r.POST("/tasks", auth, h.Create)
	r.PUT("/tasks/:id", auth, h.Update)
	r.DELETE("/tasks/:id", auth, h.Delete)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string { return &s }

// TestTaskHandler_Create はタスク作成時に所有者が認証ユーザーになり201が返ることを検証します。
func TestTaskHandler_Create(t *testing.T) {
	var gotOwner uint
	var gotInput usecase.CreateTaskInput
	uc := &mockTaskUsecase{
		createFn: func(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error) {
			gotOwner, gotInput = ownerID, in
			return &entity.Task{ID: 1, Title: in.Title, Description: in.Description, Completed: in.Completed, OwnerID: ownerID}, nil
		},
	}
	r := setupRouter(uc, 7)

	w := doJSON(r, http.MethodPost, "/tasks", gin.H{"title": "buy milk", "completed": true, "owner_id": 99})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, uint(7), gotOwner, "owner must come from the token, not the body")
	assert.True(t, gotInput.Completed)
	assert.Nil(t, gotInput.Description)
	assert.JSONEq(t, `{"id":1,"title":"buy milk","description":null,"completed":true,"owner_id":7}`, w.Body.String())
}

func TestTaskHandler_Create_Validation(t *testing.T) {
	uc := &mockTaskUsecase{
		createFn: func(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error) {
			t.Fatal("usecase must not be called")
			return nil, nil
		},
	}
	r := setupRouter(uc, 7)

	for _, body := range []any{gin.H{}, gin.H{"title": ""}, "not an object"} {
		w := doJSON(r, http.MethodPost, "/tasks", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}
}

func TestTaskHandler_List(t *testing.T) {
	uc := &mockTaskUsecase{
		listFn: func(ctx context.Context) ([]entity.Task, error) {
			return []entity.Task{}, nil
		},
	}
	r := setupRouter(uc, 0)

	w := doJSON(r, http.MethodGet, "/tasks", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTaskHandler_Get(t *testing.T) {
	uc := &mockTaskUsecase{
		getFn: func(ctx context.Context, id uint) (*entity.Task, error) {
			if id == 1 {
				return &entity.Task{ID: 1, Title: "buy milk", Description: strPtr("2 liters"), OwnerID: 2}, nil
			}
			return nil, usecase.ErrTaskNotFound
		},
	}
	r := setupRouter(uc, 0)

	tests := []struct {
		path   string
		status int
	}{
		{"/tasks/1", http.StatusOK},
		{"/tasks/2", http.StatusNotFound},
		{"/tasks/abc", http.StatusBadRequest},
		{"/tasks/0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := doJSON(r, http.MethodGet, tt.path, nil)
		assert.Equal(t, tt.status, w.Code, tt.path)
	}
}

// TestTaskHandler_Update はユースケースのエラーが適切なステータスに変換されることを検証します。
func TestTaskHandler_Update(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"success", nil, http.StatusOK, ""},
		{"not owner", usecase.ErrNotTaskOwner, http.StatusForbidden, "NOT_TASK_OWNER"},
		{"not found", usecase.ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPatch entity.TaskPatch
			uc := &mockTaskUsecase{
				updateFn: func(ctx context.Context, callerID, id uint, patch entity.TaskPatch) (*entity.Task, error) {
					gotPatch = patch
					if tt.err != nil {
						return nil, tt.err
					}
					return &entity.Task{ID: id, Title: "buy milk", Completed: true, OwnerID: callerID}, nil
				},
			}
			r := setupRouter(uc, 1)

			w := doJSON(r, http.MethodPut, "/tasks/3", gin.H{"completed": true})

			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, gotPatch.Completed)
			assert.True(t, *gotPatch.Completed)
			assert.Nil(t, gotPatch.Title, "unsupplied title must stay nil")
			assert.Nil(t, gotPatch.Description)

			if tt.code != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.code, body["code"])
			}
		})
	}
}

func TestTaskHandler_Update_EmptyTitle(t *testing.T) {
	uc := &mockTaskUsecase{
		updateFn: func(ctx context.Context, callerID, id uint, patch entity.TaskPatch) (*entity.Task, error) {
			if patch.Title != nil && *patch.Title == "" {
				return nil, usecase.ErrInvalidTitle
			}
			return &entity.Task{ID: id, OwnerID: callerID}, nil
		},
	}
	r := setupRouter(uc, 1)

	w := doJSON(r, http.MethodPut, "/tasks/3", gin.H{"title": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestTaskHandler_Update_EmptyTitleNonOwner は空タイトルがバインドで弾かれず、所有者以外には403が返ることを検証します。
func TestTaskHandler_Update_EmptyTitleNonOwner(t *testing.T) {
	var reached bool
	uc := &mockTaskUsecase{
		updateFn: func(ctx context.Context, callerID, id uint, patch entity.TaskPatch) (*entity.Task, error) {
			reached = true
			require.NotNil(t, patch.Title)
			assert.Equal(t, "", *patch.Title)
			return nil, usecase.ErrNotTaskOwner
		},
	}
	r := setupRouter(uc, 2)

	w := doJSON(r, http.MethodPut, "/tasks/5", gin.H{"title": ""})

	assert.True(t, reached)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestTaskHandler_LogsRequestID はハンドラのログにリクエストIDが付与されることを検証します。
func TestTaskHandler_LogsRequestID(t *testing.T) {
	var logs bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&logs, nil))

	uc := &mockTaskUsecase{
		createFn: func(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error) {
			return &entity.Task{ID: 7, Title: in.Title, OwnerID: ownerID}, nil
		},
	}
	h := NewTaskHandler(uc)
	r := gin.New()
	r.Use(logging.RequestID(base))
	r.POST("/tasks", func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, uint(1))
		c.Next()
	}, h.Create)

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"buy milk"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(logging.HeaderXRequestID, "req-xyz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, logs.String(), `"msg":"task created"`)
	assert.Contains(t, logs.String(), `"request_id":"req-xyz"`)
}

func TestTaskHandler_Delete(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"success", nil, http.StatusOK},
		{"not owner", usecase.ErrNotTaskOwner, http.StatusForbidden},
		{"not found", usecase.ErrTaskNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCaller uint
			uc := &mockTaskUsecase{
				deleteFn: func(ctx context.Context, callerID, id uint) error {
					gotCaller = callerID
					return tt.err
				},
			}
			r := setupRouter(uc, 4)

			w := doJSON(r, http.MethodDelete, "/tasks/3", nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, uint(4), gotCaller)
		})
	}
}
