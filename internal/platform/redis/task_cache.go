// Package redis contains the Redis implementation of the task cache.
//
// Cached task lists are stored as Redis lists of JSON task snapshots under a
// fixed global key and per-user keys, each bounded by a short TTL. The cache
// never holds authoritative state: a missing key always means "unknown".
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/pomodoro-api/internal/domain"
	"github.com/phrazzld/pomodoro-api/internal/platform/logger"
	"github.com/phrazzld/pomodoro-api/internal/store"
)

// tasksKey is the bucket holding the global task list.
const tasksKey = "tasks"

// userTasksKey returns the bucket holding one user's task list.
func userTasksKey(userID int64) string {
	return "user_tasks:" + strconv.FormatInt(userID, 10)
}

// TaskCache implements store.TaskCache backed by a Redis list per bucket.
type TaskCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewTaskCache creates a TaskCache with the given client and entry TTL.
// If logger is nil, a default logger will be used.
func NewTaskCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *TaskCache {
	if client == nil {
		panic("client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskCache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "task_cache")),
	}
}

// Ensure TaskCache implements store.TaskCache interface
var _ store.TaskCache = (*TaskCache)(nil)

// GetTasks implements store.TaskCache.GetTasks
// Returns store.ErrCacheMiss if the global bucket is absent. An existing but
// empty bucket is a legitimate cached empty list.
func (c *TaskCache) GetTasks(ctx context.Context) ([]domain.Task, error) {
	return c.getBucket(ctx, tasksKey)
}

// SetTasks implements store.TaskCache.SetTasks
func (c *TaskCache) SetTasks(ctx context.Context, tasks []domain.Task) error {
	return c.setBucket(ctx, tasksKey, tasks)
}

// GetUserTasks implements store.TaskCache.GetUserTasks
// Returns store.ErrCacheMiss if the user's bucket is absent.
func (c *TaskCache) GetUserTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	return c.getBucket(ctx, userTasksKey(userID))
}

// SetUserTasks implements store.TaskCache.SetUserTasks
func (c *TaskCache) SetUserTasks(ctx context.Context, userID int64, tasks []domain.Task) error {
	return c.setBucket(ctx, userTasksKey(userID), tasks)
}

// DeleteTask implements store.TaskCache.DeleteTask
// It filters the task out of the cached global list and rewrites the
// remainder with a refreshed TTL. A missing bucket, or a task not present in
// it, is a no-op. If filtering leaves zero entries the stale bucket is left
// to expire on its TTL rather than being rewritten.
func (c *TaskCache) DeleteTask(ctx context.Context, taskID int64) error {
	tasks, err := c.getBucket(ctx, tasksKey)
	if err != nil {
		if errors.Is(err, store.ErrCacheMiss) {
			return nil
		}
		return err
	}

	kept := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID != taskID {
			kept = append(kept, task)
		}
	}
	if len(kept) == len(tasks) || len(kept) == 0 {
		return nil
	}

	return c.setBucket(ctx, tasksKey, kept)
}

// getBucket reads a list bucket. Key absence maps to store.ErrCacheMiss,
// checked explicitly so an empty list is still a hit.
func (c *TaskCache) getBucket(ctx context.Context, key string) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check cache key %q: %w", key, err)
	}
	if exists == 0 {
		return nil, store.ErrCacheMiss
	}

	raw, err := c.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cache key %q: %w", key, err)
	}

	tasks := make([]domain.Task, 0, len(raw))
	for _, item := range raw {
		var task domain.Task
		if err := json.Unmarshal([]byte(item), &task); err != nil {
			// A corrupt entry poisons the whole bucket; treat it as a miss
			// and let the caller repopulate from the system of record.
			log.Warn("corrupt cache entry, treating bucket as miss",
				slog.String("key", key),
				slog.String("error", err.Error()))
			return nil, store.ErrCacheMiss
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// setBucket atomically replaces a list bucket and refreshes its TTL using a
// single pipeline (DEL, RPUSH, EXPIRE).
func (c *TaskCache) setBucket(ctx context.Context, key string, tasks []domain.Task) error {
	values := make([]interface{}, 0, len(tasks))
	for _, task := range tasks {
		data, err := json.Marshal(task)
		if err != nil {
			return fmt.Errorf("failed to serialize task %d: %w", task.ID, err)
		}
		values = append(values, data)
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(values) > 0 {
		pipe.RPush(ctx, key, values...)
	}
	pipe.Expire(ctx, key, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write cache key %q: %w", key, err)
	}

	return nil
}
