package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pantryos/internal/domain"
	"pantryos/internal/port"
)

type receiptRepo struct {
	db *sqlx.DB
}

// NewReceiptRepo creates a new PostgreSQL-backed ReceiptRepository.
func NewReceiptRepo(db *sqlx.DB) port.ReceiptRepository {
	return &receiptRepo{db: db}
}

const insertReceiptQuery = `INSERT INTO receipts (
	id, household_id, store, method, confidence,
	subtotal, tax, total, raw_text, fingerprint,
	parse_status, parse_error, attempts, parsed_at,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5,
	$6, $7, $8, $9, $10,
	$11, $12, $13, $14,
	$15, $16
)`

const insertItemQuery = `INSERT INTO receipt_items (
	id, receipt_id, household_id, position, name, price,
	quantity, unit, code, raw_text, confidence, needs_review, created_at
) VALUES (
	$1, $2, $3, $4, $5, $6,
	$7, $8, $9, $10, $11, $12, $13
)`

func (r *receiptRepo) CreateWithItems(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error {
	now := time.Now().UTC()
	receipt.CreatedAt = now
	receipt.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("receiptRepo.CreateWithItems begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertReceiptQuery,
		receipt.ID, receipt.HouseholdID, receipt.Store, receipt.Method, receipt.Confidence,
		receipt.Subtotal, receipt.Tax, receipt.Total, receipt.RawText, receipt.Fingerprint,
		receipt.ParseStatus, receipt.ParseError, receipt.Attempts, receipt.ParsedAt,
		receipt.CreatedAt, receipt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("receiptRepo.CreateWithItems receipt: %w", err)
	}

	for i := range items {
		item := &items[i]
		item.ReceiptID = receipt.ID
		item.HouseholdID = receipt.HouseholdID
		item.CreatedAt = now
		_, err = tx.ExecContext(ctx, insertItemQuery,
			item.ID, item.ReceiptID, item.HouseholdID, item.Position, item.Name, item.Price,
			item.Quantity, item.Unit, item.Code, item.RawText, item.Confidence, item.NeedsReview, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("receiptRepo.CreateWithItems item %d: %w", item.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("receiptRepo.CreateWithItems commit: %w", err)
	}
	return nil
}

func (r *receiptRepo) GetByID(ctx context.Context, householdID, receiptID uuid.UUID) (*domain.Receipt, error) {
	var rec domain.Receipt
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM receipts WHERE id = $1 AND household_id = $2", receiptID, householdID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("receiptRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *receiptRepo) ListByHousehold(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM receipts WHERE household_id = $1", householdID)
	if err != nil {
		return nil, 0, fmt.Errorf("receiptRepo.ListByHousehold count: %w", err)
	}

	var receipts []domain.Receipt
	err = r.db.SelectContext(ctx, &receipts,
		`SELECT * FROM receipts WHERE household_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		householdID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("receiptRepo.ListByHousehold: %w", err)
	}
	return receipts, total, nil
}

func (r *receiptRepo) ListItems(ctx context.Context, householdID, receiptID uuid.UUID) ([]domain.ReceiptItem, error) {
	var items []domain.ReceiptItem
	err := r.db.SelectContext(ctx, &items,
		`SELECT * FROM receipt_items WHERE receipt_id = $1 AND household_id = $2
		 ORDER BY position ASC`,
		receiptID, householdID)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.ListItems: %w", err)
	}
	return items, nil
}

func (r *receiptRepo) EnqueueRaw(ctx context.Context, receipt *domain.Receipt) error {
	now := time.Now().UTC()
	receipt.CreatedAt = now
	receipt.UpdatedAt = now
	receipt.ParseStatus = domain.ParseStatusQueued

	_, err := r.db.ExecContext(ctx, insertReceiptQuery,
		receipt.ID, receipt.HouseholdID, receipt.Store, receipt.Method, receipt.Confidence,
		receipt.Subtotal, receipt.Tax, receipt.Total, receipt.RawText, receipt.Fingerprint,
		receipt.ParseStatus, receipt.ParseError, receipt.Attempts, receipt.ParsedAt,
		receipt.CreatedAt, receipt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("receiptRepo.EnqueueRaw: %w", err)
	}
	return nil
}

func (r *receiptRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Receipt, error) {
	var receipts []domain.Receipt
	err := r.db.SelectContext(ctx, &receipts,
		`UPDATE receipts SET parse_status = $1, updated_at = NOW()
		 WHERE id IN (
			SELECT id FROM receipts WHERE parse_status = $2
			ORDER BY created_at ASC LIMIT $3
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.ParseStatusProcessing, domain.ParseStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.ClaimQueued: %w", err)
	}
	return receipts, nil
}

func (r *receiptRepo) CompleteParse(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error {
	now := time.Now().UTC()
	receipt.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("receiptRepo.CompleteParse begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE receipts SET
			store = $1, method = $2, confidence = $3,
			subtotal = $4, tax = $5, total = $6,
			parse_status = $7, parse_error = NULL, parsed_at = $8, updated_at = $9
		 WHERE id = $10`,
		receipt.Store, receipt.Method, receipt.Confidence,
		receipt.Subtotal, receipt.Tax, receipt.Total,
		receipt.ParseStatus, receipt.ParsedAt, receipt.UpdatedAt,
		receipt.ID)
	if err != nil {
		return fmt.Errorf("receiptRepo.CompleteParse receipt: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReceiptNotFound
	}

	for i := range items {
		item := &items[i]
		item.ReceiptID = receipt.ID
		item.HouseholdID = receipt.HouseholdID
		item.CreatedAt = now
		_, err = tx.ExecContext(ctx, insertItemQuery,
			item.ID, item.ReceiptID, item.HouseholdID, item.Position, item.Name, item.Price,
			item.Quantity, item.Unit, item.Code, item.RawText, item.Confidence, item.NeedsReview, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("receiptRepo.CompleteParse item %d: %w", item.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("receiptRepo.CompleteParse commit: %w", err)
	}
	return nil
}

func (r *receiptRepo) MarkFailed(ctx context.Context, receiptID uuid.UUID, parseErr string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE receipts SET parse_status = $1, parse_error = $2,
			attempts = attempts + 1, updated_at = NOW()
		 WHERE id = $3`,
		domain.ParseStatusFailed, parseErr, receiptID)
	if err != nil {
		return fmt.Errorf("receiptRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReceiptNotFound
	}
	return nil
}
