package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"assurdoc/internal/domain"
)

// MockNotificationRepo is a mock implementation of port.NotificationRepository.
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.InsurerNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NotificationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockNotificationRepo) ListByDemande(ctx context.Context, demandeID string) ([]domain.InsurerNotification, error) {
	args := m.Called(ctx, demandeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InsurerNotification), args.Error(1)
}

func (m *MockNotificationRepo) ListByStatus(ctx context.Context, status domain.NotificationStatus, limit int) ([]domain.InsurerNotification, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InsurerNotification), args.Error(1)
}
