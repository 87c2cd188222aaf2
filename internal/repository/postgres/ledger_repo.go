package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pantryos/internal/domain"
	"pantryos/internal/port"
)

type ledgerRepo struct {
	db *sqlx.DB
}

// NewLedgerRepo creates a new PostgreSQL-backed ExtractionLedger.
func NewLedgerRepo(db *sqlx.DB) port.ExtractionLedger {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Get(ctx context.Context, fingerprint string) (*domain.ExtractionRecord, error) {
	var rec domain.ExtractionRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM extraction_records WHERE fingerprint = $1", fingerprint)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ledgerRepo.Get: %w", err)
	}
	return &rec, nil
}

func (r *ledgerRepo) Record(ctx context.Context, rec *domain.ExtractionRecord) error {
	rec.CreatedAt = time.Now().UTC()
	// Losing the race to another insert is fine: the first writer's receipt
	// stays the canonical result for this fingerprint.
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extraction_records (fingerprint, household_id, receipt_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (fingerprint) DO NOTHING`,
		rec.Fingerprint, rec.HouseholdID, rec.ReceiptID, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("ledgerRepo.Record: %w", err)
	}
	return nil
}
