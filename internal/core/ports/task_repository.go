package ports

import (
	"context"

	"github.com/99minutos/usertask-service/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	FindAll(ctx context.Context) ([]*domain.Task, error)
	// FindByID returns domain.ErrTaskNotFound when no task has the id.
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.Task, error)
	// FindByUserUsername resolves the owner by username. An unknown username
	// yields an empty result, not an error.
	FindByUserUsername(ctx context.Context, username string) ([]*domain.Task, error)
	FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID removes every task owned by userID in one store call
	// and returns how many were removed.
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)
}
