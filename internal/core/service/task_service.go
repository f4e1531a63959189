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

// TaskService implements task management.
type TaskService struct {
	tasks ports.TaskRepository
	users ports.UserRepository
	idem  idempotencyGuard
	log   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, idem ports.IdempotencyStore, log zerolog.Logger) *TaskService {
	return &TaskService{
		tasks: tasks,
		users: users,
		idem:  idempotencyGuard{store: idem, log: log},
		log:   log,
	}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, bool, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return task, true, nil
}

// CreateTask stores a new task. A missing status defaults to PENDING and an
// owner reference, when present, must point at an existing user.
func (s *TaskService) CreateTask(ctx context.Context, in ports.TaskInput) (*domain.Task, bool, error) {
	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, false, fmt.Errorf("create task: %w: unknown status %q", domain.ErrInvalidInput, status)
	}

	if id, ok := s.idem.lookup(ctx, scopeTask, in.IdempotencyKey); ok {
		existing, err := s.tasks.FindByID(ctx, id)
		if err == nil {
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("task_id", id).Msg("idempotent replay")
			return existing, true, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("create task: %w", err)
		}
	}

	if err := s.ensureUser(ctx, in.UserID); err != nil {
		return nil, false, fmt.Errorf("create task: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.tasks.Create(ctx, &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		UserID:      in.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return nil, false, fmt.Errorf("create task: %w", err)
	}

	s.idem.remember(ctx, scopeTask, in.IdempotencyKey, created.ID)
	s.log.Info().Str("task_id", created.ID).Str("user_id", created.UserID).Str("status", string(created.Status)).Msg("task created")
	return created, false, nil
}

// UpdateTask overwrites title, description and status. The owner is only
// replaced when the input names one.
func (s *TaskService) UpdateTask(ctx context.Context, id string, in ports.TaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("update task: %w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}
	if err := s.ensureUser(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Status = in.Status
	if in.UserID != "" {
		task.UserID = in.UserID
	}
	task.UpdatedAt = time.Now().UTC()

	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	exists, err := s.tasks.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !exists {
		return domain.ErrTaskNotFound
	}
	if err := s.tasks.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.log.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

func (s *TaskService) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	tasks, err := s.tasks.FindByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list tasks by status: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ListByUserID(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks, err := s.tasks.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks by user: %w", err)
	}
	return tasks, nil
}

// ensureUser checks an optional owner reference. An empty id is accepted.
func (s *TaskService) ensureUser(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return nil
}
