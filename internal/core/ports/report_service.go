package ports

import (
	"context"

	"github.com/99minutos/usertask-service/internal/core/domain"
)

// ReportService builds read-only aggregate views over users and tasks.
type ReportService interface {
	GenerateUserReport(ctx context.Context) (*domain.UserReport, error)
	GenerateUserTaskReport(ctx context.Context) (*domain.UserTaskReport, error)
}
