package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"assurdoc/internal/domain"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) GetInsurerStats(ctx context.Context, insurerID uuid.UUID) (*domain.InsurerStats, error) {
	args := m.Called(ctx, insurerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InsurerStats), args.Error(1)
}
