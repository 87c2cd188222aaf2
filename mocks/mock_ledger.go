package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pantryos/internal/domain"
)

// MockLedger is a mock implementation of port.ExtractionLedger.
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Get(ctx context.Context, fingerprint string) (*domain.ExtractionRecord, error) {
	args := m.Called(ctx, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionRecord), args.Error(1)
}

func (m *MockLedger) Record(ctx context.Context, rec *domain.ExtractionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
