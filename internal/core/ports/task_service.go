package ports

import (
	"context"

	"github.com/99minutos/usertask-service/internal/core/domain"
)

// TaskInput carries the writable task fields.
type TaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	// UserID is optional. On update an empty value keeps the current owner.
	UserID string
	// IdempotencyKey is only honoured by CreateTask.
	IdempotencyKey string
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	GetTask(ctx context.Context, id string) (task *domain.Task, found bool, err error)
	// CreateTask reports replayed=true for an idempotent replay.
	CreateTask(ctx context.Context, input TaskInput) (task *domain.Task, replayed bool, err error)
	UpdateTask(ctx context.Context, id string, input TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.Task, error)
}
