package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/cuongbtq/taskqueue-be/internal/api/model"
	"github.com/cuongbtq/taskqueue-be/internal/jobstore"
)

// TaskQueue publishes job messages and inspects the pending ones
type TaskQueue interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
	Peek(ctx context.Context) ([][]byte, error)
}

// Repository is the relational store for users and assets
type Repository interface {
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateAsset(ctx context.Context, asset *model.Asset) (int64, error)
	ListAssets(ctx context.Context) ([]model.AssetWithOwner, error)
}

// HealthChecker reports whether a backing service is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger      *slog.Logger
	ServiceName string
	Queue       TaskQueue
	Jobs        jobstore.Store
	Repository  Repository
	// HealthChecks maps a dependency name to its checker
	HealthChecks map[string]HealthChecker
	// OperationTimeout bounds every call into a backing store or the broker
	OperationTimeout time.Duration
}

func (d *Dependencies) operationTimeout() time.Duration {
	if d.OperationTimeout <= 0 {
		return 5 * time.Second
	}
	return d.OperationTimeout
}
