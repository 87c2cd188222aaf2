package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pantryos/internal/domain"
)

// MockReceiptRepo is a mock implementation of port.ReceiptRepository.
type MockReceiptRepo struct {
	mock.Mock
}

func (m *MockReceiptRepo) CreateWithItems(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error {
	args := m.Called(ctx, receipt, items)
	return args.Error(0)
}

func (m *MockReceiptRepo) GetByID(ctx context.Context, householdID, receiptID uuid.UUID) (*domain.Receipt, error) {
	args := m.Called(ctx, householdID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) ListByHousehold(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error) {
	args := m.Called(ctx, householdID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Receipt), args.Int(1), args.Error(2)
}

func (m *MockReceiptRepo) ListItems(ctx context.Context, householdID, receiptID uuid.UUID) ([]domain.ReceiptItem, error) {
	args := m.Called(ctx, householdID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptItem), args.Error(1)
}

func (m *MockReceiptRepo) EnqueueRaw(ctx context.Context, receipt *domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Receipt, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) CompleteParse(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error {
	args := m.Called(ctx, receipt, items)
	return args.Error(0)
}

func (m *MockReceiptRepo) MarkFailed(ctx context.Context, receiptID uuid.UUID, parseErr string) error {
	args := m.Called(ctx, receiptID, parseErr)
	return args.Error(0)
}
