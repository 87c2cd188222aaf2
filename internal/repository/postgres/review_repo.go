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

type reviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepo creates a new PostgreSQL-backed ReviewQueueRepository.
func NewReviewRepo(db *sqlx.DB) port.ReviewQueueRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) CreateBatch(ctx context.Context, rows []domain.ReviewItem) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reviewRepo.CreateBatch begin: %w", err)
	}
	defer tx.Rollback()

	for i := range rows {
		row := &rows[i]
		row.CreatedAt = now
		_, err = tx.ExecContext(ctx,
			`INSERT INTO review_items (
				id, receipt_id, item_id, household_id, status,
				corrected_name, resolved_at, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			row.ID, row.ReceiptID, row.ItemID, row.HouseholdID, row.Status,
			row.CorrectedName, row.ResolvedAt, row.CreatedAt)
		if err != nil {
			return fmt.Errorf("reviewRepo.CreateBatch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reviewRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *reviewRepo) ListPending(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.ReviewItem, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM review_items WHERE household_id = $1 AND status = $2",
		householdID, domain.ReviewStatusPending)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewRepo.ListPending count: %w", err)
	}

	var rows []domain.ReviewItem
	err = r.db.SelectContext(ctx, &rows,
		`SELECT * FROM review_items WHERE household_id = $1 AND status = $2
		 ORDER BY created_at ASC LIMIT $3 OFFSET $4`,
		householdID, domain.ReviewStatusPending, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewRepo.ListPending: %w", err)
	}
	return rows, total, nil
}

func (r *reviewRepo) Resolve(ctx context.Context, householdID, reviewID uuid.UUID, correctedName string) (*domain.ReviewItem, error) {
	now := time.Now().UTC()
	var row domain.ReviewItem
	err := r.db.GetContext(ctx, &row,
		`UPDATE review_items SET status = $1, corrected_name = $2, resolved_at = $3
		 WHERE id = $4 AND household_id = $5 AND status = $6
		 RETURNING *`,
		domain.ReviewStatusResolved, correctedName, now,
		reviewID, householdID, domain.ReviewStatusPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReviewItemNotFound
		}
		return nil, fmt.Errorf("reviewRepo.Resolve: %w", err)
	}
	return &row, nil
}
