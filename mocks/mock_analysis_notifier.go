package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"assurdoc/internal/domain"
)

// MockAnalysisNotifier is a mock implementation of port.AnalysisNotifier.
type MockAnalysisNotifier struct {
	mock.Mock
}

func (m *MockAnalysisNotifier) NotifyInsurer(ctx context.Context, insurer domain.Insurer, analysis *domain.DemandeAnalysis) error {
	args := m.Called(ctx, insurer, analysis)
	return args.Error(0)
}
