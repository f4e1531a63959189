package service

import (
	"context"
	"strconv"

	"github.com/99minutos/usertask-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	order     []string // insertion order, mirrors store iteration order
	nextID    int
	createErr error
	deleteErr error
	countErr  error
	creates   int
	updates   int
	deletes   []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneUser(r.byID[id]))
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, id := range r.order {
		if r.byID[id].Username == username {
			return cloneUser(r.byID[id]), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.creates++
	r.nextID++
	clone := cloneUser(user)
	clone.ID = "u" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneUser(clone), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.updates++
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.deletes = append(r.deletes, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.byID)), nil
}

// seed stores a user directly, bypassing service checks.
func (r *stubUserRepo) seed(username, email, first, last string) *domain.User {
	u, _ := r.Create(context.Background(), &domain.User{
		Username: username, Email: email, FirstName: first, LastName: last,
	})
	r.creates--
	return u
}

type stubTaskRepo struct {
	users         *stubUserRepo
	byID          map[string]*domain.Task
	order         []string
	nextID        int
	deleteManyErr error
	creates       int
	updates       int
}

func newStubTaskRepo(users *stubUserRepo) *stubTaskRepo {
	return &stubTaskRepo{users: users, byID: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTaskRepo) filter(keep func(*domain.Task) bool) []*domain.Task {
	out := []*domain.Task{}
	for _, id := range r.order {
		if t := r.byID[id]; keep(t) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

func (r *stubTaskRepo) FindAll(_ context.Context) ([]*domain.Task, error) {
	return r.filter(func(*domain.Task) bool { return true }), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *stubTaskRepo) FindByUserID(_ context.Context, userID string) ([]*domain.Task, error) {
	return r.filter(func(t *domain.Task) bool { return t.UserID == userID }), nil
}

func (r *stubTaskRepo) FindByUserUsername(ctx context.Context, username string) ([]*domain.Task, error) {
	u, err := r.users.FindByUsername(ctx, username)
	if err != nil {
		return []*domain.Task{}, nil
	}
	return r.FindByUserID(ctx, u.ID)
}

func (r *stubTaskRepo) FindByStatus(_ context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return r.filter(func(t *domain.Task) bool { return t.Status == status }), nil
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.creates++
	r.nextID++
	clone := cloneTask(task)
	clone.ID = "t" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneTask(clone), nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if _, ok := r.byID[task.ID]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	r.updates++
	r.byID[task.ID] = cloneTask(task)
	return cloneTask(task), nil
}

func (r *stubTaskRepo) DeleteByID(_ context.Context, id string) error {
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubTaskRepo) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	if r.deleteManyErr != nil {
		return 0, r.deleteManyErr
	}
	owned, _ := r.FindByUserID(ctx, userID)
	for _, t := range owned {
		_ = r.DeleteByID(ctx, t.ID)
	}
	return int64(len(owned)), nil
}

func (r *stubTaskRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *stubTaskRepo) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	matched, _ := r.FindByStatus(ctx, status)
	return int64(len(matched)), nil
}

// seed stores a task directly, bypassing status and owner validation.
func (r *stubTaskRepo) seed(title string, status domain.TaskStatus, userID string) *domain.Task {
	t, _ := r.Create(context.Background(), &domain.Task{Title: title, Status: status, UserID: userID})
	r.creates--
	return t
}

type stubIdempotency struct {
	keys      map[string]string
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, scope, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.keys[scope+":"+key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, scope, key, id string) error {
	s.keys[scope+":"+key] = id
	return nil
}
