package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pantryos/internal/domain"
	. "pantryos/internal/service"
	"pantryos/mocks"
)

const safewayText = `SAFEWAY STORE 123
1234567 BRD WHT
3.49
SOMETHING NICE 4.20
SUBTOTAL 7.69
TOTAL 7.69`

func newParseService() (ParseService, *mocks.MockReceiptRepo, *mocks.MockReviewRepo, *mocks.MockCorrectionRepo, *mocks.MockLedger) {
	receiptRepo := new(mocks.MockReceiptRepo)
	reviewRepo := new(mocks.MockReviewRepo)
	correctionRepo := new(mocks.MockCorrectionRepo)
	ledger := new(mocks.MockLedger)
	svc := NewParseService(receiptRepo, reviewRepo, correctionRepo, ledger, 0.8)
	return svc, receiptRepo, reviewRepo, correctionRepo, ledger
}

func TestParse_ExtractsAndPersists(t *testing.T) {
	svc, receiptRepo, reviewRepo, correctionRepo, ledger := newParseService()
	householdID := uuid.New()

	ledger.On("Get", mock.Anything, mock.AnythingOfType("string")).
		Return(nil, domain.ErrNotFound).Once()
	correctionRepo.On("ListByStore", mock.Anything, "SAFEWAY").
		Return([]domain.StoreCorrection{{Misread: "BRD", Corrected: "BREAD"}}, nil).Once()
	receiptRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*domain.Receipt"), mock.AnythingOfType("[]domain.ReceiptItem")).
		Return(nil).Once()
	reviewRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]domain.ReviewItem")).
		Return(nil).Once()
	ledger.On("Record", mock.Anything, mock.AnythingOfType("*domain.ExtractionRecord")).
		Return(nil).Once()

	out, err := svc.Parse(context.Background(), &ParseInput{HouseholdID: householdID, RawText: safewayText})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.False(t, out.Duplicate)

	assert.Equal(t, "SAFEWAY", out.Receipt.Store)
	assert.Equal(t, householdID, out.Receipt.HouseholdID)
	assert.Equal(t, domain.ParseStatusCompleted, out.Receipt.ParseStatus)
	assert.Equal(t, domain.Fingerprint(householdID, safewayText), out.Receipt.Fingerprint)
	assert.InDelta(t, 7.69, out.Receipt.Subtotal, 0.001)
	assert.InDelta(t, 7.69, out.Receipt.Total, 0.001)

	require.Len(t, out.Items, 2)
	// Learned correction applied on top of the built-in tables
	assert.Equal(t, "BREAD WHT", out.Items[0].Name)
	assert.Equal(t, "1234567", out.Items[0].Code)
	assert.InDelta(t, 3.49, out.Items[0].Price, 0.001)
	assert.False(t, out.Items[0].NeedsReview)
	assert.Equal(t, 0, out.Items[0].Position)

	assert.Equal(t, "SOMETHING NICE", out.Items[1].Name)
	assert.InDelta(t, 0.70, out.Items[1].Confidence, 0.001)
	assert.True(t, out.Items[1].NeedsReview)

	// One review row for the low-confidence item
	reviewRepo.AssertCalled(t, "CreateBatch", mock.Anything, mock.MatchedBy(func(rows []domain.ReviewItem) bool {
		return len(rows) == 1 && rows[0].ItemID == out.Items[1].ID
	}))
	ledger.AssertExpectations(t)
	receiptRepo.AssertExpectations(t)
}

func TestParse_OCRConfidenceCapsReceiptConfidence(t *testing.T) {
	svc, receiptRepo, reviewRepo, _, ledger := newParseService()
	householdID := uuid.New()

	ledger.On("Get", mock.Anything, mock.AnythingOfType("string")).
		Return(nil, domain.ErrNotFound).Once()
	receiptRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*domain.Receipt"), mock.AnythingOfType("[]domain.ReceiptItem")).
		Return(nil).Once()
	reviewRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]domain.ReviewItem")).
		Return(nil).Maybe()
	ledger.On("Record", mock.Anything, mock.AnythingOfType("*domain.ExtractionRecord")).
		Return(nil).Once()

	// The fixture extracts well above 0.30 on its own; the upstream OCR
	// score wins when it is lower.
	out, err := svc.Parse(context.Background(), &ParseInput{
		HouseholdID:   householdID,
		RawText:       "SOMETHING NICE 4.20\nTOTAL 4.20",
		OCRConfidence: 0.30,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.30, out.Receipt.Confidence, 0.001)
}

func TestParse_DuplicateReturnsOriginal(t *testing.T) {
	svc, receiptRepo, _, _, ledger := newParseService()
	householdID := uuid.New()
	receiptID := uuid.New()
	fingerprint := domain.Fingerprint(householdID, safewayText)

	stored := &domain.Receipt{ID: receiptID, HouseholdID: householdID, Store: "SAFEWAY"}
	items := []domain.ReceiptItem{{ID: uuid.New(), ReceiptID: receiptID, Name: "BREAD WHT"}}

	ledger.On("Get", mock.Anything, fingerprint).
		Return(&domain.ExtractionRecord{Fingerprint: fingerprint, HouseholdID: householdID, ReceiptID: receiptID}, nil).Once()
	receiptRepo.On("GetByID", mock.Anything, householdID, receiptID).Return(stored, nil).Once()
	receiptRepo.On("ListItems", mock.Anything, householdID, receiptID).Return(items, nil).Once()

	out, err := svc.Parse(context.Background(), &ParseInput{HouseholdID: householdID, RawText: safewayText})
	require.NoError(t, err)
	assert.True(t, out.Duplicate)
	assert.Equal(t, receiptID, out.Receipt.ID)
	assert.Len(t, out.Items, 1)

	receiptRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestParse_LedgerHitWithMissingReceiptFallsThrough(t *testing.T) {
	svc, receiptRepo, reviewRepo, correctionRepo, ledger := newParseService()
	householdID := uuid.New()

	ledger.On("Get", mock.Anything, mock.AnythingOfType("string")).
		Return(&domain.ExtractionRecord{ReceiptID: uuid.New()}, nil).Once()
	receiptRepo.On("GetByID", mock.Anything, householdID, mock.AnythingOfType("uuid.UUID")).
		Return(nil, domain.ErrReceiptNotFound).Once()
	correctionRepo.On("ListByStore", mock.Anything, "SAFEWAY").
		Return([]domain.StoreCorrection{}, nil).Once()
	receiptRepo.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	reviewRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Once()
	ledger.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

	out, err := svc.Parse(context.Background(), &ParseInput{HouseholdID: householdID, RawText: safewayText})
	require.NoError(t, err)
	assert.False(t, out.Duplicate)
	receiptRepo.AssertExpectations(t)
}

func TestParse_Validation(t *testing.T) {
	svc, _, _, _, _ := newParseService()

	_, err := svc.Parse(context.Background(), &ParseInput{HouseholdID: uuid.New(), RawText: "   \n  "})
	assert.ErrorIs(t, err, domain.ErrMissingRawText)

	_, err = svc.Parse(context.Background(), &ParseInput{RawText: "TOTAL 5.00"})
	assert.ErrorIs(t, err, domain.ErrMissingHousehold)
}

func TestParse_PersistErrorPropagates(t *testing.T) {
	svc, receiptRepo, _, correctionRepo, ledger := newParseService()
	householdID := uuid.New()

	ledger.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()
	correctionRepo.On("ListByStore", mock.Anything, "SAFEWAY").Return([]domain.StoreCorrection{}, nil).Once()
	receiptRepo.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset")).Once()

	_, err := svc.Parse(context.Background(), &ParseInput{HouseholdID: householdID, RawText: safewayText})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestEnqueue_StoresRawReceipt(t *testing.T) {
	svc, receiptRepo, _, _, ledger := newParseService()
	householdID := uuid.New()

	ledger.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()
	receiptRepo.On("EnqueueRaw", mock.Anything, mock.AnythingOfType("*domain.Receipt")).Return(nil).Once()

	receipt, err := svc.Enqueue(context.Background(), &ParseInput{HouseholdID: householdID, RawText: safewayText})
	require.NoError(t, err)
	assert.Equal(t, domain.Fingerprint(householdID, safewayText), receipt.Fingerprint)
	assert.Equal(t, safewayText, receipt.RawText)
	receiptRepo.AssertExpectations(t)
}

func TestEnqueue_DuplicateSkipsQueue(t *testing.T) {
	svc, receiptRepo, _, _, ledger := newParseService()
	householdID := uuid.New()
	receiptID := uuid.New()

	ledger.On("Get", mock.Anything, mock.Anything).
		Return(&domain.ExtractionRecord{ReceiptID: receiptID}, nil).Once()
	receiptRepo.On("GetByID", mock.Anything, householdID, receiptID).
		Return(&domain.Receipt{ID: receiptID, HouseholdID: householdID}, nil).Once()
	receiptRepo.On("ListItems", mock.Anything, householdID, receiptID).
		Return([]domain.ReceiptItem{}, nil).Once()

	receipt, err := svc.Enqueue(context.Background(), &ParseInput{HouseholdID: householdID, RawText: safewayText})
	require.NoError(t, err)
	assert.Equal(t, receiptID, receipt.ID)
	receiptRepo.AssertNotCalled(t, "EnqueueRaw", mock.Anything, mock.Anything)
}

func TestProcessQueued_CompletesReceipt(t *testing.T) {
	svc, receiptRepo, reviewRepo, correctionRepo, ledger := newParseService()
	householdID := uuid.New()
	receiptID := uuid.New()

	queued := &domain.Receipt{
		ID:          receiptID,
		HouseholdID: householdID,
		RawText:     safewayText,
		Fingerprint: domain.Fingerprint(householdID, safewayText),
		ParseStatus: domain.ParseStatusProcessing,
		Attempts:    1,
	}

	correctionRepo.On("ListByStore", mock.Anything, "SAFEWAY").Return([]domain.StoreCorrection{}, nil).Once()
	receiptRepo.On("CompleteParse", mock.Anything, mock.MatchedBy(func(r *domain.Receipt) bool {
		return r.ID == receiptID && r.ParseStatus == domain.ParseStatusCompleted
	}), mock.AnythingOfType("[]domain.ReceiptItem")).Return(nil).Once()
	reviewRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Once()
	ledger.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

	svc.ProcessQueued(context.Background(), queued, 3)

	assert.Equal(t, domain.ParseStatusCompleted, queued.ParseStatus)
	assert.Equal(t, "SAFEWAY", queued.Store)
	receiptRepo.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestProcessQueued_MarksFailedAfterMaxRetries(t *testing.T) {
	svc, receiptRepo, _, correctionRepo, ledger := newParseService()
	householdID := uuid.New()
	receiptID := uuid.New()

	queued := &domain.Receipt{
		ID:          receiptID,
		HouseholdID: householdID,
		RawText:     safewayText,
		Attempts:    3,
	}

	correctionRepo.On("ListByStore", mock.Anything, "SAFEWAY").Return([]domain.StoreCorrection{}, nil).Once()
	receiptRepo.On("CompleteParse", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("deadlock detected")).Once()
	receiptRepo.On("MarkFailed", mock.Anything, receiptID, mock.AnythingOfType("string")).Return(nil).Once()

	svc.ProcessQueued(context.Background(), queued, 3)

	receiptRepo.AssertExpectations(t)
	ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}
