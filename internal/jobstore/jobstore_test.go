package jobstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cuongbtq/taskqueue-be/internal/task"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRedisStore(rdb, "", logger), mr
}

func queued(id string, at time.Time) *task.Record {
	return task.NewQueuedRecord(&task.Message{
		JobID:      id,
		TaskType:   task.TypeUppercase,
		Input:      "hello",
		EnqueuedAt: at,
	})
}

func TestRedisStore_GetMissing(t *testing.T) {
	store, _ := setupStore(t)

	rec, found, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, rec)
}

func TestRedisStore_CreateIsIfAbsent(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	created, err := store.Create(ctx, queued("j1", now))
	require.NoError(t, err)
	assert.True(t, created)

	// the worker got there first
	started := queued("j1", now)
	started.Started(now.Add(time.Second))
	require.NoError(t, store.Save(ctx, started))

	created, err = store.Create(ctx, queued("j1", now))
	require.NoError(t, err)
	assert.False(t, created)

	rec, found, err := store.Get(ctx, "j1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, task.StatusStarted, rec.Status)
}

func TestRedisStore_SaveOverwrites(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	rec := queued("j1", now)
	require.NoError(t, store.Save(ctx, rec))

	require.NoError(t, rec.Succeeded("HELLO", now))
	require.NoError(t, store.Save(ctx, rec))

	got, found, err := store.Get(ctx, "j1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, task.StatusSuccess, got.Status)
	assert.JSONEq(t, `"HELLO"`, string(got.Result))
}

func TestRedisStore_UsesCanonicalHash(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, queued("j1", time.Now().UTC())))

	assert.True(t, mr.Exists(DefaultKey))
	keys, err := mr.HKeys(DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"j1"}, keys)
}

func TestRedisStore_ListSortedAndSkipsCorrupt(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, queued("b", base.Add(time.Minute))))
	require.NoError(t, store.Save(ctx, queued("c", base)))
	require.NoError(t, store.Save(ctx, queued("a", base)))
	mr.HSet(DefaultKey, "broken", "{not json")

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	ids := []string{records[0].TaskID, records[1].TaskID, records[2].TaskID}
	assert.Equal(t, []string{"a", "c", "b"}, ids)
}

func TestRedisStore_ListEmpty(t *testing.T) {
	store, _ := setupStore(t)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	store, mr := setupStore(t)
	mr.Close()
	ctx := context.Background()

	_, _, err := store.Get(ctx, "j1")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, redis.Nil))

	_, err = store.List(ctx)
	assert.Error(t, err)

	_, err = store.Create(ctx, queued("j1", time.Now()))
	assert.Error(t, err)
}
