package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for _, typ := range Types {
		got, err := ParseType(string(typ))
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	for _, raw := range []string{"", "UPPERCASE", "delete_all", "reverse-text"} {
		_, err := ParseType(raw)
		assert.ErrorIs(t, err, ErrInvalidType, raw)
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusQueued.Terminal())
	assert.False(t, StatusStarted.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusSuccess.Terminal())
	assert.True(t, StatusFailure.Terminal())
}

func TestDecodeMessage(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := DecodeMessage([]byte(`{"job_id":"j1","task_type":"uppercase","input":"hello"}`))
		require.NoError(t, err)
		assert.Equal(t, "j1", m.JobID)
		assert.Equal(t, TypeUppercase, m.TaskType)
		assert.Equal(t, "hello", m.Input)
	})

	t.Run("unknown type is kept", func(t *testing.T) {
		m, err := DecodeMessage([]byte(`{"job_id":"j2","task_type":"nope","input":""}`))
		require.NoError(t, err)
		assert.Equal(t, Type("nope"), m.TaskType)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeMessage([]byte(`{not json`))
		assert.Error(t, err)
	})

	t.Run("missing job id", func(t *testing.T) {
		_, err := DecodeMessage([]byte(`{"task_type":"uppercase"}`))
		assert.Error(t, err)
	})
}

func TestRecord_Lifecycle(t *testing.T) {
	enqueued := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := NewQueuedRecord(&Message{JobID: "j1", TaskType: TypeSumNumbers, Input: "2+3", EnqueuedAt: enqueued})

	assert.Equal(t, StatusQueued, rec.Status)
	assert.Equal(t, enqueued, rec.CreatedAt)

	rec.Started(enqueued.Add(time.Second))
	assert.Equal(t, StatusStarted, rec.Status)

	require.NoError(t, rec.Succeeded(int64(5), enqueued.Add(2*time.Second)))
	assert.Equal(t, StatusSuccess, rec.Status)
	assert.JSONEq(t, `5`, string(rec.Result))
	assert.Empty(t, rec.Error)

	rec.Failed(errors.New("boom"), enqueued.Add(3*time.Second))
	assert.Equal(t, StatusFailure, rec.Status)
	assert.Nil(t, rec.Result)
	assert.Equal(t, "boom", rec.Error)
	assert.Equal(t, enqueued, rec.CreatedAt)
}
