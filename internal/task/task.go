// Package task defines the job vocabulary shared by the API and the worker:
// task types, job statuses, the queue message and the canonical job record.
package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Type identifies which handler a job runs
type Type string

const (
	TypeReverseText Type = "reverse_text"
	TypeUppercase   Type = "uppercase"
	TypeSumNumbers  Type = "sum_numbers"
)

// Types lists every known task type
var Types = []Type{TypeReverseText, TypeUppercase, TypeSumNumbers}

// ErrInvalidType is returned for a task type outside Types
var ErrInvalidType = errors.New("invalid task type")

// ParseType validates a raw task type string
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeReverseText, TypeUppercase, TypeSumNumbers:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Status is the lifecycle state of a job
type Status string

const (
	StatusQueued  Status = "queued"
	StatusStarted Status = "started"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"

	// StatusPending is reported for ids the store has not seen (yet)
	StatusPending Status = "pending"
)

// Terminal reports whether no further transition is expected
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// Message is the body published to the queue for one job
type Message struct {
	JobID      string    `json:"job_id"`
	TaskType   Type      `json:"task_type"`
	Input      string    `json:"input"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Encode marshals the message for publishing
func (m *Message) Encode() ([]byte, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job message: %w", err)
	}
	return body, nil
}

// DecodeMessage parses a queue body. The task type is not validated here so
// the worker can record unknown types as failed jobs.
func DecodeMessage(body []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("failed to decode job message: %w", err)
	}
	if m.JobID == "" {
		return nil, errors.New("job message has no job_id")
	}
	return &m, nil
}

// Record is the single source of truth for a job's status and result
type Record struct {
	TaskID    string          `json:"task_id"`
	TaskType  Type            `json:"task_type"`
	Input     string          `json:"input"`
	Status    Status          `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewQueuedRecord builds the record written when a job is enqueued
func NewQueuedRecord(m *Message) *Record {
	return &Record{
		TaskID:    m.JobID,
		TaskType:  m.TaskType,
		Input:     m.Input,
		Status:    StatusQueued,
		CreatedAt: m.EnqueuedAt,
		UpdatedAt: m.EnqueuedAt,
	}
}

// Started moves the record to started
func (r *Record) Started(at time.Time) {
	r.Status = StatusStarted
	r.Result = nil
	r.Error = ""
	r.UpdatedAt = at
}

// Succeeded moves the record to success with the encoded result
func (r *Record) Succeeded(result any, at time.Time) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode job result: %w", err)
	}
	r.Status = StatusSuccess
	r.Result = raw
	r.Error = ""
	r.UpdatedAt = at
	return nil
}

// Failed moves the record to failure
func (r *Record) Failed(cause error, at time.Time) {
	r.Status = StatusFailure
	r.Result = nil
	r.Error = cause.Error()
	r.UpdatedAt = at
}
