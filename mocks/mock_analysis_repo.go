package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"assurdoc/internal/domain"
)

// MockAnalysisRepo is a mock implementation of port.AnalysisRepository.
type MockAnalysisRepo struct {
	mock.Mock
}

func (m *MockAnalysisRepo) Save(ctx context.Context, a *domain.DemandeAnalysis) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnalysisRepo) GetByDemandeID(ctx context.Context, demandeID string) (*domain.DemandeAnalysis, error) {
	args := m.Called(ctx, demandeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DemandeAnalysis), args.Error(1)
}

func (m *MockAnalysisRepo) ListByInsurer(ctx context.Context, insurerID uuid.UUID, avis string, offset, limit int) ([]domain.DemandeAnalysis, int, error) {
	args := m.Called(ctx, insurerID, avis, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DemandeAnalysis), args.Int(1), args.Error(2)
}

func (m *MockAnalysisRepo) ListSince(ctx context.Context, since time.Time, offset, limit int) ([]domain.DemandeAnalysis, int, error) {
	args := m.Called(ctx, since, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DemandeAnalysis), args.Int(1), args.Error(2)
}

func (m *MockAnalysisRepo) Delete(ctx context.Context, demandeID string) error {
	args := m.Called(ctx, demandeID)
	return args.Error(0)
}
