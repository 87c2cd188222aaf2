package memory

import (
	"context"
	"sync"
	"time"

	"pantryos/internal/domain"
	"pantryos/internal/port"
)

type ledger struct {
	mu   sync.RWMutex
	recs map[string]domain.ExtractionRecord
}

// NewLedger creates an in-memory ExtractionLedger. Used by the offline
// CLI and by tests; the server uses the PostgreSQL implementation.
func NewLedger() port.ExtractionLedger {
	return &ledger{recs: make(map[string]domain.ExtractionRecord)}
}

func (l *ledger) Get(_ context.Context, fingerprint string) (*domain.ExtractionRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.recs[fingerprint]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (l *ledger) Record(_ context.Context, rec *domain.ExtractionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.recs[rec.Fingerprint]; ok {
		return nil
	}
	rec.CreatedAt = time.Now().UTC()
	l.recs[rec.Fingerprint] = *rec
	return nil
}
