package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"assurdoc/internal/domain"
)

// MockInsurerRepo is a mock implementation of port.InsurerRepository.
type MockInsurerRepo struct {
	mock.Mock
}

func (m *MockInsurerRepo) Create(ctx context.Context, insurer *domain.Insurer) error {
	args := m.Called(ctx, insurer)
	return args.Error(0)
}

func (m *MockInsurerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Insurer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Insurer), args.Error(1)
}

func (m *MockInsurerRepo) List(ctx context.Context) ([]domain.Insurer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Insurer), args.Error(1)
}
