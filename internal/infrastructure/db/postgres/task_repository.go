package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/99minutos/usertask-service/internal/core/domain"
)

const taskColumns = `t.id, t.user_id, t.title, t.description, t.status, t.created_at, t.updated_at`

// TaskRepository implements ports.TaskRepository on the tasks table.
type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t      domain.Task
		owner  sql.NullString
		status string
	)
	if err := row.Scan(&t.ID, &owner, &t.Title, &t.Description, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.UserID = owner.String
	t.Status = domain.TaskStatus(status)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

func (r *TaskRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks t`)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	tid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	t, err := scanTask(r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.id = $1`, tid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	tid, ok := parseID(id)
	if !ok {
		return false, nil
	}
	n, err := r.count(ctx, `SELECT COUNT(*) FROM tasks WHERE id = $1`, tid)
	return n > 0, err
}

func (r *TaskRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Task, error) {
	uid, ok := parseID(userID)
	if !ok {
		return []*domain.Task{}, nil
	}
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.user_id = $1 ORDER BY t.created_at DESC, t.id DESC`, uid)
}

func (r *TaskRepository) FindByUserUsername(ctx context.Context, username string) ([]*domain.Task, error) {
	return r.query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE u.username = $1
		ORDER BY t.created_at DESC, t.id DESC`, username)
}

func (r *TaskRepository) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.status = $1`, string(status))
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	owner, err := nullableID(task.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks AS t (user_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+taskColumns,
		owner, task.Title, task.Description, string(task.Status), task.CreatedAt, task.UpdatedAt,
	)
	created, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return created, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	tid, ok := parseID(task.ID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	owner, err := nullableID(task.UserID)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		UPDATE tasks AS t
		SET user_id = $1, title = $2, description = $3, status = $4, updated_at = $5
		WHERE t.id = $6
		RETURNING `+taskColumns,
		owner, task.Title, task.Description, string(task.Status), task.UpdatedAt, tid,
	)
	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

func (r *TaskRepository) DeleteByID(ctx context.Context, id string) error {
	tid, ok := parseID(id)
	if !ok {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, tid); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (r *TaskRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	uid, ok := parseID(userID)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1`, uid)
	if err != nil {
		return 0, fmt.Errorf("delete user tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete user tasks: %w", err)
	}
	return n, nil
}

func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks`)
}

func (r *TaskRepository) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks WHERE status = $1`, string(status))
}
