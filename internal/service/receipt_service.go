package service

import (
	"context"

	"github.com/google/uuid"

	"pantryos/internal/domain"
	"pantryos/internal/port"
)

// ReceiptDetail bundles a receipt with its extracted items.
type ReceiptDetail struct {
	Receipt *domain.Receipt      `json:"receipt"`
	Items   []domain.ReceiptItem `json:"items"`
}

// ReceiptService defines read access to stored receipts.
type ReceiptService interface {
	GetByID(ctx context.Context, householdID, receiptID uuid.UUID) (*ReceiptDetail, error)
	List(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error)
	// ListAllItems returns every item across a household's receipts,
	// newest receipt first. Used by the export endpoint.
	ListAllItems(ctx context.Context, householdID uuid.UUID) ([]domain.Receipt, map[uuid.UUID][]domain.ReceiptItem, error)
}

type receiptService struct {
	receiptRepo port.ReceiptRepository
}

// NewReceiptService creates a new ReceiptService implementation.
func NewReceiptService(receiptRepo port.ReceiptRepository) ReceiptService {
	return &receiptService{receiptRepo: receiptRepo}
}

func (s *receiptService) GetByID(ctx context.Context, householdID, receiptID uuid.UUID) (*ReceiptDetail, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, householdID, receiptID)
	if err != nil {
		return nil, err
	}
	items, err := s.receiptRepo.ListItems(ctx, householdID, receiptID)
	if err != nil {
		return nil, err
	}
	return &ReceiptDetail{Receipt: receipt, Items: items}, nil
}

func (s *receiptService) List(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error) {
	return s.receiptRepo.ListByHousehold(ctx, householdID, offset, limit)
}

const exportPageSize = 200

func (s *receiptService) ListAllItems(ctx context.Context, householdID uuid.UUID) ([]domain.Receipt, map[uuid.UUID][]domain.ReceiptItem, error) {
	var receipts []domain.Receipt
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.receiptRepo.ListByHousehold(ctx, householdID, offset, exportPageSize)
		if err != nil {
			return nil, nil, err
		}
		receipts = append(receipts, page...)
		if len(receipts) >= total || len(page) == 0 {
			break
		}
	}

	itemsByReceipt := make(map[uuid.UUID][]domain.ReceiptItem, len(receipts))
	for i := range receipts {
		items, err := s.receiptRepo.ListItems(ctx, householdID, receipts[i].ID)
		if err != nil {
			return nil, nil, err
		}
		itemsByReceipt[receipts[i].ID] = items
	}
	return receipts, itemsByReceipt, nil
}
