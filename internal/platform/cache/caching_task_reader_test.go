package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"task_backend/internal/feature/tasks/domain/entity"
)

// mockTaskReader はテスト用のTaskReaderモック実装です。
type mockTaskReader struct {
	findByIDFn func(ctx context.Context, id uint) (*entity.Task, error)
	listFn     func(ctx context.Context) ([]entity.Task, error)
}

func (m *mockTaskReader) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTaskReader) List(ctx context.Context) ([]entity.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func ptr(s string) *string { return &s }

// TestNewCachingTaskReader_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingTaskReader_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "tasks"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "tasks"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewCachingTaskReader(nil, tt.ttl, &mockTaskReader{}, tt.namespace)

			if r.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, r.ttl)
			}
			if r.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, r.namespace)
			}
		})
	}
}

// TestCachingTaskReader_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部リーダーを直接呼び出すことを検証します。
func TestCachingTaskReader_NilRedis(t *testing.T) {
	t.Parallel()

	calls := 0
	inner := &mockTaskReader{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Task, error) {
			calls++
			return &entity.Task{ID: id, Title: "buy milk"}, nil
		},
		listFn: func(ctx context.Context) ([]entity.Task, error) {
			calls++
			return []entity.Task{{ID: 1}}, nil
		},
	}

	r := NewCachingTaskReader(nil, 5*time.Minute, inner, "tasks")

	task, err := r.FindByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 3 {
		t.Errorf("expected task 3, got %d", task.ID)
	}
	if _, err := r.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Invalidate(context.Background(), 3)

	if calls != 2 {
		t.Errorf("expected 2 inner calls, got %d", calls)
	}
}

// TestCachingTaskReader_FindByID_CacheHit はキャッシュヒット時にRedisからデータを返し、内部リーダーを呼ばないことを検証します。
func TestCachingTaskReader_FindByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(entity.Task{ID: 7, Title: "buy milk", Description: ptr("2 liters"), OwnerID: 1})
	mock.ExpectGet("tasks:id:7").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockTaskReader{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Task, error) {
			innerCalled = true
			return nil, nil
		},
	}

	r := NewCachingTaskReader(rdb, 5*time.Minute, inner, "tasks")
	task, err := r.FindByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner reader should not be called on cache hit")
	}
	if task.Title != "buy milk" || task.Description == nil || *task.Description != "2 liters" {
		t.Errorf("unexpected task from cache: %+v", task)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTaskReader_FindByID_CacheMiss はキャッシュミス時にDBからデータを取得し、キャッシュに保存することを検証します。
func TestCachingTaskReader_FindByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := &entity.Task{ID: 7, Title: "buy milk", OwnerID: 1}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("tasks:id:7").RedisNil()
	mock.ExpectSet("tasks:id:7", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockTaskReader{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Task, error) {
			return expected, nil
		},
	}

	r := NewCachingTaskReader(rdb, 5*time.Minute, inner, "tasks")
	task, err := r.FindByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task != expected {
		t.Errorf("expected the inner task to be returned")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTaskReader_FindByID_InnerError は内部リーダーのエラーが伝播され、キャッシュに保存されないことを検証します。
func TestCachingTaskReader_FindByID_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("task not found")
	mock.ExpectGet("tasks:id:9").RedisNil()

	inner := &mockTaskReader{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Task, error) {
			return nil, expectedErr
		},
	}

	r := NewCachingTaskReader(rdb, 5*time.Minute, inner, "tasks")
	_, err := r.FindByID(context.Background(), 9)

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTaskReader_List_CorruptedCache は破損したキャッシュを検出・削除し、DBにフォールバックすることを検証します。
func TestCachingTaskReader_List_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Task{{ID: 1, Title: "a", OwnerID: 1}, {ID: 2, Title: "b", OwnerID: 2}}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("tasks:list").SetVal("invalid json")
	mock.ExpectDel("tasks:list").SetVal(1)
	mock.ExpectSet("tasks:list", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockTaskReader{
		listFn: func(ctx context.Context) ([]entity.Task, error) {
			return expected, nil
		},
	}

	r := NewCachingTaskReader(rdb, 5*time.Minute, inner, "tasks")
	tasks, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(tasks))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTaskReader_List_CacheHit はリストのキャッシュヒット時に内部リーダーを呼ばないことを検証します。
func TestCachingTaskReader_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal([]entity.Task{{ID: 1, Title: "a"}})
	mock.ExpectGet("tasks:list").SetVal(string(cachedJSON))

	inner := &mockTaskReader{
		listFn: func(ctx context.Context) ([]entity.Task, error) {
			t.Error("inner reader should not be called on cache hit")
			return nil, nil
		},
	}

	r := NewCachingTaskReader(rdb, 5*time.Minute, inner, "tasks")
	tasks, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "a" {
		t.Errorf("unexpected tasks from cache: %+v", tasks)
	}
}

// TestCachingTaskReader_Invalidate は指定したタスクとリストのキャッシュが削除されることを検証します。
func TestCachingTaskReader_Invalidate(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("tasks:list", "tasks:id:1", "tasks:id:2").SetVal(3)

	r := NewCachingTaskReader(rdb, 5*time.Minute, &mockTaskReader{}, "tasks")
	r.Invalidate(context.Background(), 1, 2)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingTaskReader_Invalidate_Error はRedisの削除失敗がパニックやエラーにならないことを検証します。
func TestCachingTaskReader_Invalidate_Error(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("tasks:list").SetErr(errors.New("redis down"))

	r := NewCachingTaskReader(rdb, 5*time.Minute, &mockTaskReader{}, "tasks")
	r.Invalidate(context.Background())

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
