package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantryos/internal/domain"
	"pantryos/internal/service"
)

// MockParseService is a mock implementation of service.ParseService.
type MockParseService struct {
	mock.Mock
}

func (m *MockParseService) Parse(ctx context.Context, input *service.ParseInput) (*service.ParseOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ParseOutput), args.Error(1)
}

func (m *MockParseService) Enqueue(ctx context.Context, input *service.ParseInput) (*domain.Receipt, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockParseService) ProcessQueued(ctx context.Context, receipt *domain.Receipt, maxRetries int) {
	m.Called(ctx, receipt, maxRetries)
}

// MockReceiptService is a mock implementation of service.ReceiptService.
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) GetByID(ctx context.Context, householdID, receiptID uuid.UUID) (*service.ReceiptDetail, error) {
	args := m.Called(ctx, householdID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReceiptDetail), args.Error(1)
}

func (m *MockReceiptService) List(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error) {
	args := m.Called(ctx, householdID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Receipt), args.Int(1), args.Error(2)
}

func (m *MockReceiptService) ListAllItems(ctx context.Context, householdID uuid.UUID) ([]domain.Receipt, map[uuid.UUID][]domain.ReceiptItem, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Receipt), args.Get(1).(map[uuid.UUID][]domain.ReceiptItem), args.Error(2)
}

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListPending(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.ReviewItem, int, error) {
	args := m.Called(ctx, householdID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReviewItem), args.Int(1), args.Error(2)
}

func (m *MockReviewService) Resolve(ctx context.Context, householdID, reviewID uuid.UUID, correctedName string) (*domain.ReviewItem, error) {
	args := m.Called(ctx, householdID, reviewID, correctedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewItem), args.Error(1)
}
