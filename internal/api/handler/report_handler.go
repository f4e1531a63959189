package handler

import (
	"encoding/csv"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/99minutos/usertask-service/internal/api/metrics"
	"github.com/99minutos/usertask-service/internal/core/domain"
	"github.com/99minutos/usertask-service/internal/core/ports"
)

var csvHeader = []string{
	"user_id", "username", "email", "full_name",
	"task_id", "task_title", "task_description", "task_status", "task_created_at",
}

// ReportHandler serves the aggregate report endpoints.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// UserReport godoc
// @Summary      Aggregate user/task report
// @Description  Totals, per-user status tallies keyed by username and the global status distribution.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserReport
// @Failure      500  {object}  errorResponse
// @Router       /v1/reports/user-report [get]
func (h *ReportHandler) UserReport(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("user_report"))
	report, err := h.service.GenerateUserReport(c.Request().Context())
	timer.ObserveDuration()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// UserTasks godoc
// @Summary      Detailed user/task report
// @Description  Users sorted by username, each with their tasks newest first.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserTaskReport
// @Failure      500  {object}  errorResponse
// @Router       /v1/reports/user-tasks [get]
func (h *ReportHandler) UserTasks(c echo.Context) error {
	report, err := h.userTaskReport(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// UserTasksCSV godoc
// @Summary      Detailed user/task report as CSV
// @Description  One row per task. Users without tasks get a single row with empty task columns.
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string
// @Failure      500  {object}  errorResponse
// @Router       /v1/reports/user-tasks.csv [get]
func (h *ReportHandler) UserTasksCSV(c echo.Context) error {
	report, err := h.userTaskReport(c)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="user_task_report.csv"`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range csvRows(report) {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (h *ReportHandler) userTaskReport(c echo.Context) (*domain.UserTaskReport, error) {
	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("user_tasks"))
	defer timer.ObserveDuration()
	return h.service.GenerateUserTaskReport(c.Request().Context())
}

func csvRows(report *domain.UserTaskReport) [][]string {
	var rows [][]string
	for _, entry := range report.Users {
		u := entry.UserInfo
		base := []string{u.ID, u.Username, u.Email, u.FullName}
		if len(entry.Tasks) == 0 {
			rows = append(rows, append(base, "", "", "", "", ""))
			continue
		}
		for _, t := range entry.Tasks {
			row := make([]string, 0, len(csvHeader))
			row = append(row, base...)
			row = append(row, t.ID, t.Title, t.Description, string(t.Status), t.CreatedAt.UTC().Format(time.RFC3339))
			rows = append(rows, row)
		}
	}
	return rows
}
