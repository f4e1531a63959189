package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/usertask-service/internal/core/domain"
	"github.com/99minutos/usertask-service/internal/core/ports"
)

// ReportService computes aggregate views over users and tasks. Every call
// reads the store afresh.
type ReportService struct {
	users ports.UserRepository
	tasks ports.TaskRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewReportService(users ports.UserRepository, tasks ports.TaskRepository, log zerolog.Logger) *ReportService {
	return &ReportService{users: users, tasks: tasks, log: log, now: time.Now}
}

// statusTally counts tasks per known status. Unknown statuses are ignored.
type statusTally struct {
	pending    int
	inProgress int
	completed  int
}

func (t *statusTally) add(status domain.TaskStatus) {
	switch status {
	case domain.StatusPending:
		t.pending++
	case domain.StatusInProgress:
		t.inProgress++
	case domain.StatusCompleted:
		t.completed++
	}
}

func tally(tasks []*domain.Task) statusTally {
	var t statusTally
	for _, task := range tasks {
		t.add(task.Status)
	}
	return t
}

// GenerateUserReport returns store totals, per-user status tallies keyed by
// username and the global status distribution.
//
// A task with an unrecognised status counts toward total_tasks (global and
// per user) but toward none of the status buckets.
func (s *ReportService) GenerateUserReport(ctx context.Context) (*domain.UserReport, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("user report: count users: %w", err)
	}
	totalTasks, err := s.tasks.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("user report: count tasks: %w", err)
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("user report: list users: %w", err)
	}

	stats := make(map[string]domain.UserStatistics, len(users))
	for _, u := range users {
		tasks, err := s.tasks.FindByUserID(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("user report: tasks of %s: %w", u.ID, err)
		}
		t := tally(tasks)
		stats[u.Username] = domain.UserStatistics{
			TotalTasks:      len(tasks),
			PendingTasks:    t.pending,
			InProgressTasks: t.inProgress,
			CompletedTasks:  t.completed,
			Email:           u.Email,
			FullName:        u.FullName(),
		}
	}

	distribution := make(map[domain.TaskStatus]int64, len(domain.KnownStatuses))
	for _, status := range domain.KnownStatuses {
		n, err := s.tasks.CountByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("user report: count %s: %w", status, err)
		}
		distribution[status] = n
	}

	s.log.Debug().Int64("total_users", totalUsers).Int64("total_tasks", totalTasks).Msg("user report generated")

	return &domain.UserReport{
		TotalUsers:             totalUsers,
		TotalTasks:             totalTasks,
		UserStatistics:         stats,
		TaskStatusDistribution: distribution,
	}, nil
}

// GenerateUserTaskReport lists every user, sorted by username, with their
// tasks newest first.
func (s *ReportService) GenerateUserTaskReport(ctx context.Context) (*domain.UserTaskReport, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("user task report: list users: %w", err)
	}
	slices.SortFunc(users, func(a, b *domain.User) int {
		return strings.Compare(a.Username, b.Username)
	})

	entries := make([]domain.UserTaskEntry, 0, len(users))
	for _, u := range users {
		tasks, err := s.tasks.FindByUserID(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("user task report: tasks of %s: %w", u.ID, err)
		}
		slices.SortStableFunc(tasks, func(a, b *domain.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})

		list := make([]domain.Task, len(tasks))
		for i, task := range tasks {
			list[i] = *task
		}
		t := tally(tasks)
		entries = append(entries, domain.UserTaskEntry{
			UserInfo:        u.Info(),
			Tasks:           list,
			TaskCount:       len(tasks),
			PendingTasks:    t.pending,
			InProgressTasks: t.inProgress,
			CompletedTasks:  t.completed,
		})
	}

	return &domain.UserTaskReport{
		GeneratedAt: s.now().UTC(),
		Users:       entries,
	}, nil
}
