package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pantryos/internal/domain"
)

// MockCorrectionRepo is a mock implementation of port.StoreCorrectionRepository.
type MockCorrectionRepo struct {
	mock.Mock
}

func (m *MockCorrectionRepo) Add(ctx context.Context, c *domain.StoreCorrection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCorrectionRepo) ListByStore(ctx context.Context, store string) ([]domain.StoreCorrection, error) {
	args := m.Called(ctx, store)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoreCorrection), args.Error(1)
}
