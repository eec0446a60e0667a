package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/taskqueue-be/internal/worker/domain"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
}

// workerLoop runs jobs one at a time until the dispatcher closes jobsChan
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Debug("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for msg := range w.jobsChan {
		w.logger.Info("Worker received job",
			slog.String("worker_name", workerName),
			slog.String("job_id", msg.JobID()),
			slog.String("task_type", string(msg.Message.TaskType)),
		)

		err := w.processJob(ctx, msg)
		w.settle(workerName, msg, err)
	}

	w.logger.Debug("Worker goroutine stopping - jobsChan closed",
		slog.String("worker_name", workerName),
	)
}

// settle acks the delivery, or nacks it when processing could not record
// anything and a later attempt may succeed
func (w *Worker) settle(workerName string, msg *domain.JobMessage, err error) {
	if err == nil {
		if ackErr := msg.Delivery.Ack(false); ackErr != nil {
			w.logger.Error("Failed to ACK message",
				slog.String("worker_name", workerName),
				slog.String("job_id", msg.JobID()),
				slog.String("error", ackErr.Error()),
			)
		}
		return
	}

	requeue := shouldRequeueJob(err)
	level := slog.LevelError
	if requeue && msg.Delivery.Redelivered {
		level = slog.LevelWarn
	}
	w.logger.Log(context.Background(), level, "Job processing failed",
		slog.String("worker_name", workerName),
		slog.String("job_id", msg.JobID()),
		slog.Bool("requeue", requeue),
		slog.Bool("redelivered", msg.Delivery.Redelivered),
		slog.String("error", err.Error()),
	)

	if requeue {
		w.waitBeforeRequeue()
	}

	if nackErr := msg.Delivery.Nack(false, requeue); nackErr != nil {
		w.logger.Error("Failed to NACK message",
			slog.String("worker_name", workerName),
			slog.String("job_id", msg.JobID()),
			slog.String("error", nackErr.Error()),
		)
	}
}

// waitBeforeRequeue pauses for requeueDelay, cut short by Stop
func (w *Worker) waitBeforeRequeue() {
	timer := time.NewTimer(w.requeueDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-w.stopChan:
	}
}

// shouldRequeueJob determines if a job should be requeued based on the error type
func shouldRequeueJob(err error) bool {
	var retryableErr *domain.RetryableError
	return errors.As(err, &retryableErr)
}
