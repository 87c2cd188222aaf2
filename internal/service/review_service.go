package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"pantryos/internal/domain"
	"pantryos/internal/extract"
	"pantryos/internal/port"
)

// ReviewService defines the human-review workflow for low-confidence items.
type ReviewService interface {
	ListPending(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.ReviewItem, int, error)
	// Resolve closes a pending review with the corrected item name and
	// feeds the correction back into the store's hint table.
	Resolve(ctx context.Context, householdID, reviewID uuid.UUID, correctedName string) (*domain.ReviewItem, error)
}

type reviewService struct {
	reviewRepo     port.ReviewQueueRepository
	receiptRepo    port.ReceiptRepository
	correctionRepo port.StoreCorrectionRepository
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	reviewRepo port.ReviewQueueRepository,
	receiptRepo port.ReceiptRepository,
	correctionRepo port.StoreCorrectionRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		receiptRepo:    receiptRepo,
		correctionRepo: correctionRepo,
	}
}

func (s *reviewService) ListPending(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]domain.ReviewItem, int, error) {
	return s.reviewRepo.ListPending(ctx, householdID, offset, limit)
}

func (s *reviewService) Resolve(ctx context.Context, householdID, reviewID uuid.UUID, correctedName string) (*domain.ReviewItem, error) {
	correctedName = strings.ToUpper(strings.TrimSpace(correctedName))
	row, err := s.reviewRepo.Resolve(ctx, householdID, reviewID, correctedName)
	if err != nil {
		return nil, err
	}
	s.learnCorrection(ctx, row, correctedName)
	return row, nil
}

// learnCorrection records the reviewer's fix as a store correction so later
// parses of the same misread resolve without review. Best-effort: failures
// never fail the resolve itself.
func (s *reviewService) learnCorrection(ctx context.Context, row *domain.ReviewItem, correctedName string) {
	if correctedName == "" {
		return
	}
	receipt, err := s.receiptRepo.GetByID(ctx, row.HouseholdID, row.ReceiptID)
	if err != nil {
		log.Printf("reviewService: load receipt %s: %v", row.ReceiptID, err)
		return
	}
	if receipt.Store == extract.StoreUnknown {
		return
	}
	items, err := s.receiptRepo.ListItems(ctx, row.HouseholdID, row.ReceiptID)
	if err != nil {
		log.Printf("reviewService: load items for %s: %v", row.ReceiptID, err)
		return
	}
	for i := range items {
		if items[i].ID != row.ItemID {
			continue
		}
		for misread, corrected := range tokenCorrections(items[i].Name, correctedName) {
			err := s.correctionRepo.Add(ctx, &domain.StoreCorrection{
				ID:        uuid.New(),
				Store:     receipt.Store,
				Misread:   misread,
				Corrected: corrected,
			})
			if err != nil {
				log.Printf("reviewService: save correction %q -> %q: %v", misread, corrected, err)
			}
		}
		return
	}
}

// tokenCorrections diffs the stored name against the reviewer's fix token
// by token. Hint corrections are applied per token during normalization, so
// only aligned single-token substitutions are learnable. A rewrite that
// changes the token count teaches nothing.
func tokenCorrections(misread, corrected string) map[string]string {
	from := strings.Fields(misread)
	to := strings.Fields(corrected)
	if len(from) == 0 || len(from) != len(to) {
		return nil
	}
	out := make(map[string]string)
	for i := range from {
		if from[i] != to[i] {
			out[from[i]] = to[i]
		}
	}
	return out
}
