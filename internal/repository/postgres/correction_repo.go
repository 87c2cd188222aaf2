package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pantryos/internal/domain"
	"pantryos/internal/port"
)

type correctionRepo struct {
	db *sqlx.DB
}

// NewCorrectionRepo creates a new PostgreSQL-backed StoreCorrectionRepository.
func NewCorrectionRepo(db *sqlx.DB) port.StoreCorrectionRepository {
	return &correctionRepo{db: db}
}

func (r *correctionRepo) Add(ctx context.Context, c *domain.StoreCorrection) error {
	c.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO store_corrections (id, store, misread, corrected, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (store, misread) DO UPDATE SET corrected = EXCLUDED.corrected`,
		c.ID, c.Store, c.Misread, c.Corrected, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("correctionRepo.Add: %w", err)
	}
	return nil
}

func (r *correctionRepo) ListByStore(ctx context.Context, store string) ([]domain.StoreCorrection, error) {
	var rows []domain.StoreCorrection
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM store_corrections WHERE store = $1 ORDER BY misread ASC", store)
	if err != nil {
		return nil, fmt.Errorf("correctionRepo.ListByStore: %w", err)
	}
	return rows, nil
}
