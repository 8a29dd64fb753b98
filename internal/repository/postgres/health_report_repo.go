package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/srinathstart/HealthSyncAI/internal/domain"
	"github.com/srinathstart/HealthSyncAI/internal/port"
)

type healthReportRepo struct {
	db *sqlx.DB
}

// NewHealthReportRepo creates a new PostgreSQL-backed HealthReportRepository.
func NewHealthReportRepo(db *sqlx.DB) port.HealthReportRepository {
	return &healthReportRepo{db: db}
}

func (r *healthReportRepo) Create(ctx context.Context, report *domain.HealthReport) error {
	query := `
		INSERT INTO health_reports (
			id, file_name, file_size, model_used,
			raw_data, graph_data, score_text, analysis_json, score, summary,
			extraction_status, extraction_error,
			selection_status, selection_error,
			analysis_status, analysis_error
		) VALUES (
			:id, :file_name, :file_size, :model_used,
			:raw_data, :graph_data, :score_text, :analysis_json, :score, :summary,
			:extraction_status, :extraction_error,
			:selection_status, :selection_error,
			:analysis_status, :analysis_error
		)
		RETURNING created_at`

	rows, err := r.db.NamedQueryContext(ctx, query, report)
	if err != nil {
		return fmt.Errorf("inserting health report: %w", err)
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err := rows.Scan(&report.CreatedAt); err != nil {
			return fmt.Errorf("scanning created_at: %w", err)
		}
	}
	return nil
}

func (r *healthReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.HealthReport, error) {
	var report domain.HealthReport
	err := r.db.GetContext(ctx, &report,
		`SELECT * FROM health_reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("fetching health report: %w", err)
	}
	return &report, nil
}

func (r *healthReportRepo) List(ctx context.Context, offset, limit int) ([]domain.HealthReport, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM health_reports`); err != nil {
		return nil, 0, fmt.Errorf("counting health reports: %w", err)
	}

	reports := []domain.HealthReport{}
	err := r.db.SelectContext(ctx, &reports, `
		SELECT * FROM health_reports
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing health reports: %w", err)
	}
	return reports, total, nil
}

func (r *healthReportRepo) GraphSeries(ctx context.Context) ([]domain.GraphPoint, error) {
	points := []domain.GraphPoint{}
	err := r.db.SelectContext(ctx, &points, `
		SELECT
			graph_data->>'reportDate' AS report_date,
			graph_data->'healthParameters' AS health_parameters
		FROM health_reports
		WHERE graph_data IS NOT NULL
		ORDER BY graph_data->>'reportDate'`)
	if err != nil {
		return nil, fmt.Errorf("fetching graph series: %w", err)
	}
	return points, nil
}
