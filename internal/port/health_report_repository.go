package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/srinathstart/HealthSyncAI/internal/domain"
)

// HealthReportRepository persists analyzed lab reports.
type HealthReportRepository interface {
	Create(ctx context.Context, report *domain.HealthReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HealthReport, error)
	List(ctx context.Context, offset, limit int) ([]domain.HealthReport, int, error)
	// GraphSeries returns the chart points of all reports that produced
	// graph data, oldest first.
	GraphSeries(ctx context.Context) ([]domain.GraphPoint, error)
}
