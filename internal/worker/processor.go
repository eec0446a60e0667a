package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/taskqueue-be/internal/worker/domain"
)

// processJob runs one job and records every transition. Handler failures are
// recorded on the job and do not make processJob fail: the message is acked
// and never retried. Only a failure to record the start is retryable.
func (w *Worker) processJob(ctx context.Context, msg *domain.JobMessage) error {
	job := msg.Message
	start := time.Now()

	rec, err := w.storage.MarkStarted(ctx, job)
	if err != nil {
		return domain.NewRetryableError(fmt.Errorf("failed to record job start: %w", err))
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	result, execErr := w.executor.Execute(jobCtx, job.TaskType, job.Input)
	if execErr != nil {
		w.logger.Warn("Job execution failed",
			slog.String("job_id", job.JobID),
			slog.String("task_type", string(job.TaskType)),
			slog.String("error", execErr.Error()),
		)

		// the result is lost if this write fails; the record stays at started
		if err := w.storage.MarkFailed(ctx, rec, execErr); err != nil {
			w.logger.Error("Failed to update job status to failure",
				slog.String("job_id", job.JobID),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}

	if err := w.storage.MarkSucceeded(ctx, rec, result); err != nil {
		w.logger.Error("Failed to update job status to success",
			slog.String("job_id", job.JobID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	w.logger.Info("Job completed successfully",
		slog.String("job_id", job.JobID),
		slog.String("task_type", string(job.TaskType)),
		slog.Duration("duration", time.Since(start)),
	)

	return nil
}
