package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/taskqueue-be/internal/jobstore"
	"github.com/cuongbtq/taskqueue-be/internal/task"
)

// Storage records job lifecycle transitions in the job store
type Storage struct {
	store  jobstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewStorage creates a new Storage instance
func NewStorage(store jobstore.Store, logger *slog.Logger) *Storage {
	return &Storage{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// MarkStarted moves the job to started and returns the record to finish later.
// A missing record (the API has not written it yet) is rebuilt from the message.
func (s *Storage) MarkStarted(ctx context.Context, msg *task.Message) (*task.Record, error) {
	rec, found, err := s.store.Get(ctx, msg.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	if !found {
		rec = task.NewQueuedRecord(msg)
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = s.now()
		}
	} else if rec.Status.Terminal() {
		s.logger.Warn("Job redelivered after completion, running again",
			slog.String("job_id", msg.JobID),
			slog.String("previous_status", string(rec.Status)),
		)
	}

	rec.Started(s.now())
	if err := s.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to mark job started: %w", err)
	}

	s.logger.Info("Job status updated",
		slog.String("job_id", rec.TaskID),
		slog.String("status", string(rec.Status)),
	)

	return rec, nil
}

// MarkSucceeded stores the result and moves the job to success
func (s *Storage) MarkSucceeded(ctx context.Context, rec *task.Record, result any) error {
	if err := rec.Succeeded(result, s.now()); err != nil {
		return err
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to mark job succeeded: %w", err)
	}

	s.logger.Info("Job status updated",
		slog.String("job_id", rec.TaskID),
		slog.String("status", string(rec.Status)),
	)

	return nil
}

// MarkFailed stores the cause and moves the job to failure
func (s *Storage) MarkFailed(ctx context.Context, rec *task.Record, cause error) error {
	rec.Failed(cause, s.now())
	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}

	s.logger.Info("Job status updated",
		slog.String("job_id", rec.TaskID),
		slog.String("status", string(rec.Status)),
		slog.String("error", rec.Error),
	)

	return nil
}
