package ports

import (
	"context"

	"github.com/99minutos/usertask-service/internal/core/domain"
)

// UserInput carries the writable user fields. Update replaces all of them.
type UserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	// IdempotencyKey is only honoured by CreateUser.
	IdempotencyKey string
}

// UserService defines use-case operations for users.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// GetUser reports found=false when no user has the id.
	GetUser(ctx context.Context, id string) (user *domain.User, found bool, err error)
	GetUserByUsername(ctx context.Context, username string) (user *domain.User, found bool, err error)
	// CreateUser reports replayed=true when an Idempotency-Key matched an
	// earlier create and the stored user was returned unchanged.
	CreateUser(ctx context.Context, input UserInput) (user *domain.User, replayed bool, err error)
	UpdateUser(ctx context.Context, id string, input UserInput) (*domain.User, error)
	// DeleteUser removes the user's tasks first, then the user.
	DeleteUser(ctx context.Context, id string) error
	GetUserTasks(ctx context.Context, userID string) ([]*domain.Task, error)
	GetUserTasksByUsername(ctx context.Context, username string) ([]*domain.Task, error)
}
