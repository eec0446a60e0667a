package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/taskqueue-be/internal/api/dto"
	"github.com/cuongbtq/taskqueue-be/internal/jobstore"
	"github.com/cuongbtq/taskqueue-be/internal/task"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles job submission, result polling and queue inspection
type TaskHandler struct {
	logger    *slog.Logger
	queue     TaskQueue
	jobs      jobstore.Store
	opTimeout time.Duration
	now       func() time.Time
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(deps *Dependencies) *TaskHandler {
	return &TaskHandler{
		logger:    deps.Logger,
		queue:     deps.Queue,
		jobs:      deps.Jobs,
		opTimeout: deps.operationTimeout(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	taskType, err := task.ParseType(req.TaskType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	msg := &task.Message{
		JobID:      uuid.NewString(),
		TaskType:   taskType,
		Input:      *req.Data,
		EnqueuedAt: h.now(),
	}

	body, err := msg.Encode()
	if err != nil {
		h.logger.Error("Failed to encode job message", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create task",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opTimeout)
	defer cancel()

	if err := h.queue.PublishWithRetry(ctx, body, "application/json"); err != nil {
		h.logger.Error("Failed to publish job",
			slog.String("job_id", msg.JobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	// The message is already out; if this write is lost the job reads as
	// pending until the worker records it.
	if _, err := h.jobs.Create(ctx, task.NewQueuedRecord(msg)); err != nil {
		h.logger.Error("Failed to record queued job",
			slog.String("job_id", msg.JobID),
			slog.String("error", err.Error()),
		)
	}

	h.logger.Info("Job enqueued",
		slog.String("job_id", msg.JobID),
		slog.String("task_type", string(msg.TaskType)),
	)

	c.JSON(http.StatusAccepted, dto.CreateTaskResponse{
		TaskID: msg.JobID,
		Status: string(task.StatusQueued),
	})
}

// GetResult handles GET /results/:task_id
func (h *TaskHandler) GetResult(c *gin.Context) {
	taskID := c.Param("task_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opTimeout)
	defer cancel()

	rec, found, err := h.jobs.Get(ctx, taskID)
	if err != nil {
		h.logger.Error("Failed to get job",
			slog.String("job_id", taskID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get task result",
		})
		return
	}

	if !found {
		c.JSON(http.StatusAccepted, dto.TaskResultDTO{
			TaskID: taskID,
			Status: string(task.StatusPending),
		})
		return
	}

	c.JSON(http.StatusAccepted, toResultDTO(rec))
}

// ListResults handles GET /results
func (h *TaskHandler) ListResults(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opTimeout)
	defer cancel()

	records, err := h.jobs.List(ctx)
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list task results",
		})
		return
	}

	results := make([]dto.TaskResultDTO, 0, len(records))
	for _, rec := range records {
		results = append(results, toResultDTO(rec))
	}

	c.JSON(http.StatusAccepted, results)
}

// PeekQueue handles GET /queue
func (h *TaskHandler) PeekQueue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opTimeout)
	defer cancel()

	bodies, err := h.queue.Peek(ctx)
	if err != nil {
		h.logger.Error("Failed to peek queue", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	queued := make([]string, 0, len(bodies))
	for _, b := range bodies {
		queued = append(queued, string(b))
	}

	c.JSON(http.StatusAccepted, dto.QueueResponse{QueuedTasks: queued})
}

func toResultDTO(rec *task.Record) dto.TaskResultDTO {
	out := dto.TaskResultDTO{
		TaskID: rec.TaskID,
		Status: string(rec.Status),
		Error:  rec.Error,
	}
	if rec.Status == task.StatusSuccess {
		out.Result = rec.Result
	}
	return out
}
