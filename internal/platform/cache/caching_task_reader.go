// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "tasks"
)

// CachingTaskReader decorates a TaskReader with Redis read-through caching.
// Entries are dropped through Invalidate after every committed task mutation.
type CachingTaskReader struct {
	inner     usecase.TaskReader
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var (
	_ usecase.TaskReader       = (*CachingTaskReader)(nil)
	_ usecase.CacheInvalidator = (*CachingTaskReader)(nil)
)

// NewCachingTaskReader decorates a TaskReader with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tasks".
// A nil rdb disables caching and every call goes to inner.
func NewCachingTaskReader(rdb *redis.Client, ttl time.Duration, inner usecase.TaskReader, namespace string) *CachingTaskReader {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingTaskReader{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByID returns a task, checking the cache first then falling back to the database.
// Lookup failures such as not-found are never cached.
func (c *CachingTaskReader) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.taskKey(id)
	var cached entity.Task
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	task, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, task)
	return task, nil
}

// List returns every task ordered by ID, through the cache.
func (c *CachingTaskReader) List(ctx context.Context) ([]entity.Task, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()
	var cached []entity.Task
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	tasks, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, tasks)
	return tasks, nil
}

// Invalidate drops the entries of the given tasks and the list entry.
// It is best effort: a Redis failure is logged, never returned.
func (c *CachingTaskReader) Invalidate(ctx context.Context, ids ...uint) {
	if c.rdb == nil {
		return
	}

	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, c.listKey())
	for _, id := range ids {
		keys = append(keys, c.taskKey(id))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.WarnContext(ctx, "task cache invalidation failed", "keys", keys, "error", err)
	}
}

func (c *CachingTaskReader) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *CachingTaskReader) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func (c *CachingTaskReader) taskKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", safe(c.namespace), id)
}

func (c *CachingTaskReader) listKey() string {
	return fmt.Sprintf("%s:list", safe(c.namespace))
}
