package dto

import "encoding/json"

// CreateTaskRequest binds from a JSON or form body. Data may be empty but must be present.
type CreateTaskRequest struct {
	Data     *string `json:"data" form:"data" binding:"required"`
	TaskType string  `json:"task_type" form:"task_type" binding:"required"`
}

type CreateTaskResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

type TaskResultDTO struct {
	TaskID string          `json:"task_id"`
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error,omitempty"`
}

type QueueResponse struct {
	QueuedTasks []string `json:"queued_tasks"`
}
