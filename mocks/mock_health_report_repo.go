package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/srinathstart/HealthSyncAI/internal/domain"
)

// MockHealthReportRepo is a mock implementation of port.HealthReportRepository.
type MockHealthReportRepo struct {
	mock.Mock
}

func (m *MockHealthReportRepo) Create(ctx context.Context, report *domain.HealthReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockHealthReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.HealthReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthReport), args.Error(1)
}

func (m *MockHealthReportRepo) List(ctx context.Context, offset, limit int) ([]domain.HealthReport, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.HealthReport), args.Int(1), args.Error(2)
}

func (m *MockHealthReportRepo) GraphSeries(ctx context.Context) ([]domain.GraphPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GraphPoint), args.Error(1)
}
