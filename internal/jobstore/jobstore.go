package jobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cuongbtq/taskqueue-be/internal/task"
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis hash holding every job record
const DefaultKey = "task_results"

// Store persists the canonical job record keyed by job id.
// Implementations must be safe for concurrent use.
type Store interface {
	// Create writes rec only if no record exists for its id yet.
	// It reports whether the record was written.
	Create(ctx context.Context, rec *task.Record) (bool, error)
	Save(ctx context.Context, rec *task.Record) error
	Get(ctx context.Context, taskID string) (*task.Record, bool, error)
	List(ctx context.Context) ([]*task.Record, error)
}

// RedisStore keeps job records as JSON fields of a single Redis hash
type RedisStore struct {
	rdb    redis.Cmdable
	key    string
	logger *slog.Logger
}

// NewRedisStore creates a store over the given hash key
func NewRedisStore(rdb redis.Cmdable, key string, logger *slog.Logger) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{rdb: rdb, key: key, logger: logger}
}

func (s *RedisStore) Create(ctx context.Context, rec *task.Record) (bool, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("failed to encode job record: %w", err)
	}

	created, err := s.rdb.HSetNX(ctx, s.key, rec.TaskID, data).Result()
	if err != nil {
		return false, fmt.Errorf("failed to create job record: %w", err)
	}
	return created, nil
}

func (s *RedisStore) Save(ctx context.Context, rec *task.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode job record: %w", err)
	}

	if err := s.rdb.HSet(ctx, s.key, rec.TaskID, data).Err(); err != nil {
		return fmt.Errorf("failed to save job record: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, taskID string) (*task.Record, bool, error) {
	data, err := s.rdb.HGet(ctx, s.key, taskID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get job record: %w", err)
	}

	var rec task.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("failed to decode job record %s: %w", taskID, err)
	}
	return &rec, true, nil
}

// List returns every record ordered by creation time, then id.
// Entries that do not decode are skipped.
func (s *RedisStore) List(ctx context.Context) ([]*task.Record, error) {
	all, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list job records: %w", err)
	}

	records := make([]*task.Record, 0, len(all))
	for id, data := range all {
		var rec task.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			s.logger.Warn("Skipping undecodable job record",
				slog.String("task_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		if rec.TaskID == "" {
			rec.TaskID = id
		}
		records = append(records, &rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].TaskID < records[j].TaskID
	})

	return records, nil
}
