package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/usertask-service/internal/core/domain"
	"github.com/99minutos/usertask-service/internal/core/ports"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- stubUserService ---

type stubUserService struct {
	users map[string]*domain.User
	tasks []*domain.Task

	lastInput ports.UserInput
	createErr error
	deleteErr error
	deleted   []string

	// replay makes CreateUser answer as an idempotent replay of users["u-new"].
	replay bool
}

func newStubUserService(users ...*domain.User) *stubUserService {
	s := &stubUserService{users: map[string]*domain.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUserService) ListUsers(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubUserService) GetUser(_ context.Context, id string) (*domain.User, bool, error) {
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *stubUserService) GetUserByUsername(_ context.Context, username string) (*domain.User, bool, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return nil, false, nil
}

func (s *stubUserService) CreateUser(_ context.Context, in ports.UserInput) (*domain.User, bool, error) {
	s.lastInput = in
	if s.createErr != nil {
		return nil, false, s.createErr
	}
	if existing, ok := s.users["u-new"]; ok && s.replay {
		return existing, true, nil
	}
	u := &domain.User{ID: "u-new", Username: in.Username, Email: in.Email, FirstName: in.FirstName, LastName: in.LastName}
	s.users[u.ID] = u
	return u, false, nil
}

func (s *stubUserService) UpdateUser(_ context.Context, id string, in ports.UserInput) (*domain.User, error) {
	s.lastInput = in
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Username, u.Email, u.FirstName, u.LastName = in.Username, in.Email, in.FirstName, in.LastName
	return u, nil
}

func (s *stubUserService) DeleteUser(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubUserService) GetUserTasks(_ context.Context, userID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubUserService) GetUserTasksByUsername(ctx context.Context, username string) ([]*domain.Task, error) {
	u, ok, _ := s.GetUserByUsername(ctx, username)
	if !ok {
		return nil, nil
	}
	return s.GetUserTasks(ctx, u.ID)
}

// --- stubTaskService ---

type stubTaskService struct {
	tasks []*domain.Task

	lastInput ports.TaskInput
	calls     []string
	createErr error

	// replay makes CreateTask return the first stored task as a replay.
	replay bool
}

func (s *stubTaskService) ListTasks(_ context.Context) ([]*domain.Task, error) {
	s.calls = append(s.calls, "ListTasks")
	return s.tasks, nil
}

func (s *stubTaskService) GetTask(_ context.Context, id string) (*domain.Task, bool, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true, nil
		}
	}
	return nil, false, nil
}

func (s *stubTaskService) CreateTask(_ context.Context, in ports.TaskInput) (*domain.Task, bool, error) {
	s.lastInput = in
	if s.createErr != nil {
		return nil, false, s.createErr
	}
	if s.replay && len(s.tasks) > 0 {
		return s.tasks[0], true, nil
	}
	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	t := &domain.Task{ID: "t-new", Title: in.Title, Description: in.Description, Status: status, UserID: in.UserID}
	s.tasks = append(s.tasks, t)
	return t, false, nil
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id string, in ports.TaskInput) (*domain.Task, error) {
	s.lastInput = in
	t, ok, _ := s.GetTask(ctx, id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Title, t.Description, t.Status = in.Title, in.Description, in.Status
	return t, nil
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id string) error {
	if _, ok, _ := s.GetTask(ctx, id); !ok {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *stubTaskService) ListByStatus(_ context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	s.calls = append(s.calls, "ListByStatus")
	var out []*domain.Task
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTaskService) ListByUserID(_ context.Context, userID string) ([]*domain.Task, error) {
	s.calls = append(s.calls, "ListByUserID")
	var out []*domain.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// --- stubReportService ---

type stubReportService struct {
	report   *domain.UserReport
	detailed *domain.UserTaskReport
	err      error
}

func (s *stubReportService) GenerateUserReport(_ context.Context) (*domain.UserReport, error) {
	return s.report, s.err
}

func (s *stubReportService) GenerateUserTaskReport(_ context.Context) (*domain.UserTaskReport, error) {
	return s.detailed, s.err
}
