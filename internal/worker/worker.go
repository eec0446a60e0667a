package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cuongbtq/taskqueue-be/internal/jobstore"
	"github.com/cuongbtq/taskqueue-be/internal/worker/domain"
	"github.com/cuongbtq/taskqueue-be/internal/worker/storage"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrDeliveriesClosed is returned by Start when the broker stops delivering
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Consumer is the broker side of the worker
type Consumer interface {
	Consume(consumerTag string, prefetchCount int) (<-chan amqp.Delivery, error)
}

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	Consumer      Consumer
	Store         jobstore.Store
	WorkerID      string
	Concurrency   int
	PrefetchCount int
	JobTimeout    time.Duration
	// RequeueDelay holds back a requeue nack so an unreachable job store
	// does not turn into a tight redelivery loop
	RequeueDelay time.Duration
}

// Worker represents the background job worker
type Worker struct {
	logger        *slog.Logger
	consumer      Consumer
	storage       *storage.Storage
	executor      *Executor
	workerID      string
	concurrency   int
	prefetchCount int
	jobTimeout    time.Duration
	requeueDelay  time.Duration
	jobsChan      chan *domain.JobMessage
	wg            sync.WaitGroup
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	prefetch := cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = concurrency
	}
	jobTimeout := cfg.JobTimeout
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}
	requeueDelay := cfg.RequeueDelay
	if requeueDelay <= 0 {
		requeueDelay = time.Second
	}

	return &Worker{
		logger:        cfg.Logger,
		consumer:      cfg.Consumer,
		storage:       storage.NewStorage(cfg.Store, cfg.Logger),
		executor:      NewExecutor(),
		workerID:      cfg.WorkerID,
		concurrency:   concurrency,
		prefetchCount: prefetch,
		jobTimeout:    jobTimeout,
		requeueDelay:  requeueDelay,
		jobsChan:      make(chan *domain.JobMessage),
		stopChan:      make(chan struct{}),
	}
}

// Start subscribes to the queue and processes jobs until ctx is canceled,
// Stop is called, or the broker closes the delivery channel.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("job_timeout", w.jobTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return err
	}

	// running jobs finish even after shutdown begins
	w.spawnWorkerPool(context.WithoutCancel(ctx))

	return w.startMessageDispatcher(ctx, deliveries)
}

// Stop stops dispatching and waits for running jobs to finish
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
