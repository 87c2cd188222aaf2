package port

import (
	"context"

	"pantryos/internal/domain"
)

// ExtractionLedger maps input fingerprints to previously produced receipts
// so repeated submissions of the same text are not reprocessed. Lookup and
// insert are separate calls with no lock between them: concurrent duplicate
// submissions may both run the pipeline, which is acceptable because
// extraction is deterministic in its output. Record must be conditional
// (insert-if-absent) so the ledger never ends up with two rows for one
// fingerprint.
type ExtractionLedger interface {
	Get(ctx context.Context, fingerprint string) (*domain.ExtractionRecord, error)
	Record(ctx context.Context, rec *domain.ExtractionRecord) error
}
