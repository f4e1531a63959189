package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/usertask-service/internal/core/domain"
)

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func alice() *domain.User {
	return &domain.User{ID: "u1", Username: "alice", Email: "a@x.io", FirstName: "Alice", LastName: "Smith"}
}

func TestUserHandler_Create_Success(t *testing.T) {
	svc := newStubUserService()
	h := NewUserHandler(svc)

	c, rec := newContext(http.MethodPost, "/v1/users",
		`{"username":"alice","email":"a@x.io","first_name":"Alice","last_name":"Smith"}`)
	c.Request().Header.Set(idempotencyHeader, "key-1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var body userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ID != "u-new" || body.Username != "alice" || body.FirstName != "Alice" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if svc.lastInput.IdempotencyKey != "key-1" {
		t.Fatalf("idempotency key not forwarded: %q", svc.lastInput.IdempotencyKey)
	}
}

func TestUserHandler_Create_BadJSON(t *testing.T) {
	h := NewUserHandler(newStubUserService())
	c, _ := newContext(http.MethodPost, "/v1/users", `{"username":`)

	if code := httpCode(t, h.Create(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestUserHandler_Create_ValidationFailure(t *testing.T) {
	cases := map[string]string{
		"missing username": `{"email":"a@x.io"}`,
		"missing email":    `{"username":"alice"}`,
		"malformed email":  `{"username":"alice","email":"not-an-email"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := newStubUserService()
			h := NewUserHandler(svc)
			c, _ := newContext(http.MethodPost, "/v1/users", body)

			if code := httpCode(t, h.Create(c)); code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", code)
			}
			if svc.lastInput.Username != "" || svc.lastInput.Email != "" {
				t.Fatalf("service must not be called")
			}
		})
	}
}

func TestUserHandler_Create_ConflictPropagates(t *testing.T) {
	svc := newStubUserService()
	svc.createErr = domain.ErrUsernameTaken
	h := NewUserHandler(svc)
	c, _ := newContext(http.MethodPost, "/v1/users", `{"username":"alice","email":"a@x.io"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserHandler_Get(t *testing.T) {
	h := NewUserHandler(newStubUserService(alice()))

	c, rec := newContext(http.MethodGet, "/v1/users/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodGet, "/v1/users/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_GetByUsername(t *testing.T) {
	h := NewUserHandler(newStubUserService(alice()))

	c, rec := newContext(http.MethodGet, "/v1/users/by-username/alice", "")
	c.SetParamNames("username")
	c.SetParamValues("alice")
	if err := h.GetByUsername(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var body userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ID != "u1" {
		t.Fatalf("expected u1, got %q", body.ID)
	}

	c, _ = newContext(http.MethodGet, "/v1/users/by-username/bob", "")
	c.SetParamNames("username")
	c.SetParamValues("bob")
	if err := h.GetByUsername(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserHandler_Update(t *testing.T) {
	h := NewUserHandler(newStubUserService(alice()))

	c, rec := newContext(http.MethodPut, "/v1/users/u1", `{"username":"alice2","email":"a2@x.io"}`)
	c.SetParamNames("id")
	c.SetParamValues("u1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Username != "alice2" || body.FirstName != "" {
		t.Fatalf("expected full replacement, got %+v", body)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	svc := newStubUserService(alice())
	h := NewUserHandler(svc)

	c, rec := newContext(http.MethodDelete, "/v1/users/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.deleted) != 1 {
		t.Fatalf("expected one delete, got %v", svc.deleted)
	}

	c, _ = newContext(http.MethodDelete, "/v1/users/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")
	if err := h.Delete(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Tasks(t *testing.T) {
	svc := newStubUserService(alice())
	svc.tasks = []*domain.Task{
		{ID: "t1", Title: "a", Status: domain.StatusPending, UserID: "u1"},
		{ID: "t2", Title: "b", Status: domain.StatusCompleted, UserID: "u2"},
	}
	h := NewUserHandler(svc)

	c, rec := newContext(http.MethodGet, "/v1/users/by-username/alice/tasks", "")
	c.SetParamNames("username")
	c.SetParamValues("alice")
	if err := h.TasksByUsername(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body []taskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 || body[0].ID != "t1" {
		t.Fatalf("unexpected tasks: %+v", body)
	}

	c, rec = newContext(http.MethodGet, "/v1/users/zz/tasks", "")
	c.SetParamNames("id")
	c.SetParamValues("zz")
	if err := h.Tasks(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}
