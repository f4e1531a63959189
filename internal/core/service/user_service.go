package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/usertask-service/internal/core/domain"
	"github.com/99minutos/usertask-service/internal/core/ports"
)

// UserService implements user management on top of the user and task stores.
type UserService struct {
	users ports.UserRepository
	tasks ports.TaskRepository
	idem  idempotencyGuard
	log   zerolog.Logger
}

// NewUserService returns a UserService. idem may be nil to disable
// Idempotency-Key handling.
func NewUserService(users ports.UserRepository, tasks ports.TaskRepository, idem ports.IdempotencyStore, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		tasks: tasks,
		idem:  idempotencyGuard{store: idem, log: log},
		log:   log,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, bool, error) {
	return optionalUser(s.users.FindByID(ctx, id))
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, bool, error) {
	return optionalUser(s.users.FindByUsername(ctx, username))
}

// CreateUser stores a new user after checking that neither the username nor
// the email is already in use.
func (s *UserService) CreateUser(ctx context.Context, in ports.UserInput) (*domain.User, bool, error) {
	if in.Username == "" || in.Email == "" {
		return nil, false, fmt.Errorf("create user: %w: username and email are required", domain.ErrInvalidInput)
	}

	if id, ok := s.idem.lookup(ctx, scopeUser, in.IdempotencyKey); ok {
		existing, err := s.users.FindByID(ctx, id)
		if err == nil {
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("user_id", id).Msg("idempotent replay")
			return existing, true, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("create user: %w", err)
		}
	}

	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	if taken {
		return nil, false, domain.ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	if taken {
		return nil, false, domain.ErrEmailTaken
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	s.idem.remember(ctx, scopeUser, in.IdempotencyKey, created.ID)
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, false, nil
}

// UpdateUser replaces every writable field of the user.
func (s *UserService) UpdateUser(ctx context.Context, id string, in ports.UserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	user.Username = in.Username
	user.Email = in.Email
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// DeleteUser removes the user's tasks and then the user. The user is kept
// when the task removal fails.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	removed, err := s.tasks.DeleteByUserID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("failed to remove user tasks, user kept")
		return fmt.Errorf("delete user: remove tasks: %w", err)
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Str("user_id", id).Int64("tasks_removed", removed).Msg("user deleted")
	return nil
}

func (s *UserService) GetUserTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks, err := s.tasks.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user tasks: %w", err)
	}
	return tasks, nil
}

func (s *UserService) GetUserTasksByUsername(ctx context.Context, username string) ([]*domain.Task, error) {
	tasks, err := s.tasks.FindByUserUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user tasks: %w", err)
	}
	return tasks, nil
}

func optionalUser(u *domain.User, err error) (*domain.User, bool, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}
