package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"pantryos/internal/domain"
	"pantryos/internal/extract"
	"pantryos/internal/port"
)

// ParseInput is the DTO for submitting raw receipt text. OCRConfidence,
// when set, is the upstream OCR engine's confidence in (0, 1] and caps
// the receipt-level confidence; extraction cannot be more certain than
// the text it was handed.
type ParseInput struct {
	HouseholdID   uuid.UUID
	RawText       string
	OCRConfidence float64
}

// ParseOutput is the result of a parse submission. Duplicate is true when
// the ledger already held a receipt for this exact text and no new
// extraction ran.
type ParseOutput struct {
	Receipt   *domain.Receipt      `json:"receipt"`
	Items     []domain.ReceiptItem `json:"items"`
	Duplicate bool                 `json:"duplicate"`
}

// ParseService runs the extraction pipeline over submitted receipt text.
type ParseService interface {
	// Parse extracts synchronously and persists the result.
	Parse(ctx context.Context, input *ParseInput) (*ParseOutput, error)
	// Enqueue stores the raw text for background extraction.
	Enqueue(ctx context.Context, input *ParseInput) (*domain.Receipt, error)
	// ProcessQueued extracts a claimed receipt. Called by the queue worker.
	ProcessQueued(ctx context.Context, receipt *domain.Receipt, maxRetries int)
}

type parseService struct {
	receiptRepo     port.ReceiptRepository
	reviewRepo      port.ReviewQueueRepository
	correctionRepo  port.StoreCorrectionRepository
	ledger          port.ExtractionLedger
	reviewThreshold float64
}

// NewParseService creates a new ParseService implementation.
func NewParseService(
	receiptRepo port.ReceiptRepository,
	reviewRepo port.ReviewQueueRepository,
	correctionRepo port.StoreCorrectionRepository,
	ledger port.ExtractionLedger,
	reviewThreshold float64,
) ParseService {
	return &parseService{
		receiptRepo:     receiptRepo,
		reviewRepo:      reviewRepo,
		correctionRepo:  correctionRepo,
		ledger:          ledger,
		reviewThreshold: reviewThreshold,
	}
}

func validateParseInput(input *ParseInput) error {
	if input.HouseholdID == uuid.Nil {
		return domain.ErrMissingHousehold
	}
	if strings.TrimSpace(input.RawText) == "" {
		return domain.ErrMissingRawText
	}
	return nil
}

func (s *parseService) Parse(ctx context.Context, input *ParseInput) (*ParseOutput, error) {
	if err := validateParseInput(input); err != nil {
		return nil, err
	}

	fingerprint := domain.Fingerprint(input.HouseholdID, input.RawText)
	if out, ok := s.lookupDuplicate(ctx, input.HouseholdID, fingerprint); ok {
		return out, nil
	}

	receipt, items := s.extract(ctx, input.HouseholdID, input.RawText, fingerprint)
	if input.OCRConfidence > 0 && input.OCRConfidence < receipt.Confidence {
		receipt.Confidence = input.OCRConfidence
	}
	if err := s.receiptRepo.CreateWithItems(ctx, receipt, items); err != nil {
		return nil, fmt.Errorf("parseService.Parse: %w", err)
	}
	if err := s.queueReviews(ctx, receipt, items); err != nil {
		return nil, err
	}
	s.recordLedger(ctx, receipt, fingerprint)

	return &ParseOutput{Receipt: receipt, Items: items}, nil
}

func (s *parseService) Enqueue(ctx context.Context, input *ParseInput) (*domain.Receipt, error) {
	if err := validateParseInput(input); err != nil {
		return nil, err
	}

	fingerprint := domain.Fingerprint(input.HouseholdID, input.RawText)
	if out, ok := s.lookupDuplicate(ctx, input.HouseholdID, fingerprint); ok {
		return out.Receipt, nil
	}

	receipt := &domain.Receipt{
		ID:          uuid.New(),
		HouseholdID: input.HouseholdID,
		Store:       extract.StoreUnknown,
		RawText:     input.RawText,
		Fingerprint: fingerprint,
	}
	if err := s.receiptRepo.EnqueueRaw(ctx, receipt); err != nil {
		return nil, fmt.Errorf("parseService.Enqueue: %w", err)
	}
	return receipt, nil
}

func (s *parseService) ProcessQueued(ctx context.Context, receipt *domain.Receipt, maxRetries int) {
	parsed, items := s.extract(ctx, receipt.HouseholdID, receipt.RawText, receipt.Fingerprint)
	parsed.ID = receipt.ID
	parsed.CreatedAt = receipt.CreatedAt

	if err := s.receiptRepo.CompleteParse(ctx, parsed, items); err != nil {
		log.Printf("parseService: complete parse for receipt %s: %v", receipt.ID, err)
		if receipt.Attempts >= maxRetries {
			if ferr := s.receiptRepo.MarkFailed(ctx, receipt.ID, err.Error()); ferr != nil {
				log.Printf("parseService: mark failed for receipt %s: %v", receipt.ID, ferr)
			}
		}
		return
	}
	if err := s.queueReviews(ctx, parsed, items); err != nil {
		log.Printf("parseService: queue reviews for receipt %s: %v", receipt.ID, err)
	}
	s.recordLedger(ctx, parsed, receipt.Fingerprint)
	*receipt = *parsed
}

// lookupDuplicate consults the ledger and, on a hit, reloads the original
// receipt. A ledger row pointing at a missing receipt is treated as a miss.
func (s *parseService) lookupDuplicate(ctx context.Context, householdID uuid.UUID, fingerprint string) (*ParseOutput, bool) {
	rec, err := s.ledger.Get(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("parseService: ledger lookup: %v", err)
		}
		return nil, false
	}

	receipt, err := s.receiptRepo.GetByID(ctx, householdID, rec.ReceiptID)
	if err != nil {
		log.Printf("parseService: ledger hit but receipt %s missing: %v", rec.ReceiptID, err)
		return nil, false
	}
	items, err := s.receiptRepo.ListItems(ctx, householdID, rec.ReceiptID)
	if err != nil {
		log.Printf("parseService: ledger hit but items missing for %s: %v", rec.ReceiptID, err)
		return nil, false
	}
	return &ParseOutput{Receipt: receipt, Items: items, Duplicate: true}, true
}

// extract runs the pipeline: detect the store, merge learned corrections
// into the built-in hint tables, then scan.
func (s *parseService) extract(ctx context.Context, householdID uuid.UUID, rawText, fingerprint string) (*domain.Receipt, []domain.ReceiptItem) {
	store := extract.DetectStore(rawText)
	hints := extract.HintsFor(store)
	if store != extract.StoreUnknown {
		learned, err := s.correctionRepo.ListByStore(ctx, store)
		if err != nil {
			log.Printf("parseService: load corrections for %s: %v", store, err)
		}
		for _, c := range learned {
			hints.Corrections[c.Misread] = c.Corrected
		}
	}

	result := extract.ParseWithHints(rawText, store, hints)

	now := time.Now().UTC()
	receipt := &domain.Receipt{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Store:       result.Store,
		Method:      strings.Join(result.FormatsUsed, ","),
		Confidence:  result.Confidence,
		Subtotal:    result.Totals.Subtotal,
		Tax:         result.Totals.Tax,
		Total:       result.Totals.Total,
		RawText:     rawText,
		Fingerprint: fingerprint,
		ParseStatus: domain.ParseStatusCompleted,
		ParsedAt:    &now,
	}

	items := make([]domain.ReceiptItem, len(result.Items))
	for i, it := range result.Items {
		items[i] = domain.ReceiptItem{
			ID:          uuid.New(),
			ReceiptID:   receipt.ID,
			HouseholdID: householdID,
			Position:    i,
			Name:        it.Name,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			Code:        it.Code,
			RawText:     it.RawText,
			Confidence:  it.Confidence,
			NeedsReview: it.Confidence < s.reviewThreshold,
		}
	}
	return receipt, items
}

func (s *parseService) queueReviews(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error {
	var rows []domain.ReviewItem
	for i := range items {
		if !items[i].NeedsReview {
			continue
		}
		rows = append(rows, domain.ReviewItem{
			ID:          uuid.New(),
			ReceiptID:   receipt.ID,
			ItemID:      items[i].ID,
			HouseholdID: receipt.HouseholdID,
			Status:      domain.ReviewStatusPending,
		})
	}
	if err := s.reviewRepo.CreateBatch(ctx, rows); err != nil {
		return fmt.Errorf("parseService.queueReviews: %w", err)
	}
	return nil
}

// recordLedger is best-effort: a failed insert only means the next
// identical submission re-runs a deterministic extraction.
func (s *parseService) recordLedger(ctx context.Context, receipt *domain.Receipt, fingerprint string) {
	err := s.ledger.Record(ctx, &domain.ExtractionRecord{
		Fingerprint: fingerprint,
		HouseholdID: receipt.HouseholdID,
		ReceiptID:   receipt.ID,
	})
	if err != nil {
		log.Printf("parseService: ledger record: %v", err)
	}
}
