package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/usertask-service/internal/api/metrics"
	"github.com/99minutos/usertask-service/internal/core/domain"
	"github.com/99minutos/usertask-service/internal/core/ports"
)

// TaskHandler handles HTTP requests for the tasks resource.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List godoc
// @Summary      List tasks
// @Description  Optional filters: status and user_id. When both are given the user's tasks are filtered by status.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status   query     string  false  "Task status"  Enums(PENDING, IN_PROGRESS, COMPLETED)
// @Param        user_id  query     string  false  "Owner user ID"
// @Success      200      {array}   taskResponse
// @Failure      422      {object}  errorResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	q := listTasksQuery{
		Status: c.QueryParam("status"),
		UserID: c.QueryParam("user_id"),
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	status := domain.TaskStatus(q.Status)

	var (
		tasks []*domain.Task
		err   error
	)
	switch {
	case q.UserID != "":
		tasks, err = h.service.ListByUserID(ctx, q.UserID)
		if err == nil && status != "" {
			tasks = filterByStatus(tasks, status)
		}
	case status != "":
		tasks, err = h.service.ListByStatus(ctx, status)
	default:
		tasks, err = h.service.ListTasks(ctx)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Get godoc
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  taskResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	task, found, err := h.service.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrTaskNotFound
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Create godoc
// @Summary      Create a task
// @Description  Status defaults to PENDING. A user_id, when given, must reference an existing user.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key"
// @Param        body             body      createTaskRequest  true   "Task payload"
// @Success      201              {object}  taskResponse
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, replayed, err := h.service.CreateTask(c.Request().Context(), ports.TaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.TaskStatus(req.Status),
		UserID:         req.UserID,
		IdempotencyKey: c.Request().Header.Get(idempotencyHeader),
	})
	if err != nil {
		return err
	}

	if !replayed {
		metrics.TasksCreatedTotal.WithLabelValues(string(task.Status)).Inc()
	}
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Update godoc
// @Summary      Update a task
// @Description  Overwrites title, description and status. Ownership changes only when user_id is given.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Task payload"
// @Success      200   {object}  taskResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.UpdateTask(c.Request().Context(), c.Param("id"), ports.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		UserID:      req.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id   path  string  true  "Task ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.TasksDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

func filterByStatus(tasks []*domain.Task, status domain.TaskStatus) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}
