package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"assurdoc/internal/port"
)

// MockDocumentStorage is a mock implementation of port.DocumentStorage.
type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) Store(ctx context.Context, input port.StoreInput) (*port.StoreOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StoreOutput), args.Error(1)
}

func (m *MockDocumentStorage) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockDocumentStorage) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	args := m.Called(ctx, bucket, key, expirySeconds)
	return args.String(0), args.Error(1)
}
