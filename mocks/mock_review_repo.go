package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantryos/internal/domain"
)

// MockReviewRepo is a mock implementation of port.ReviewQueueRepository.
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) CreateBatch(ctx context.Context, rows []domain.ReviewItem) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockReviewRepo) ListPending(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.ReviewItem, int, error) {
	args := m.Called(ctx, householdID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReviewItem), args.Int(1), args.Error(2)
}

func (m *MockReviewRepo) Resolve(ctx context.Context, householdID, reviewID uuid.UUID, correctedName string) (*domain.ReviewItem, error) {
	args := m.Called(ctx, householdID, reviewID, correctedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewItem), args.Error(1)
}
