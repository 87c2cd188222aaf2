package port

import (
	"context"

	"github.com/google/uuid"

	"pantryos/internal/domain"
)

// ReceiptRepository defines the contract for receipt persistence.
type ReceiptRepository interface {
	// CreateWithItems stores a receipt and its items in one transaction.
	CreateWithItems(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error
	GetByID(ctx context.Context, householdID, receiptID uuid.UUID) (*domain.Receipt, error)
	ListByHousehold(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error)
	ListItems(ctx context.Context, householdID, receiptID uuid.UUID) ([]domain.ReceiptItem, error)

	// EnqueueRaw stores an unparsed receipt for the queue worker.
	EnqueueRaw(ctx context.Context, receipt *domain.Receipt) error
	// ClaimQueued atomically claims up to limit queued receipts for parsing.
	ClaimQueued(ctx context.Context, limit int) ([]domain.Receipt, error)
	// CompleteParse writes extraction results onto a claimed receipt and
	// inserts its items in one transaction.
	CompleteParse(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error
	// MarkFailed records a terminal parse failure on a queued receipt.
	MarkFailed(ctx context.Context, receiptID uuid.UUID, parseErr string) error
}

// ReviewQueueRepository defines the contract for the human-review queue.
type ReviewQueueRepository interface {
	CreateBatch(ctx context.Context, rows []domain.ReviewItem) error
	ListPending(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.ReviewItem, int, error)
	// Resolve closes a pending row with the reviewer's corrected name.
	Resolve(ctx context.Context, householdID, reviewID uuid.UUID, correctedName string) (*domain.ReviewItem, error)
}

// StoreCorrectionRepository defines the contract for the learned OCR
// correction training set.
type StoreCorrectionRepository interface {
	Add(ctx context.Context, c *domain.StoreCorrection) error
	ListByStore(ctx context.Context, store string) ([]domain.StoreCorrection, error)
}
