package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Receipt is a parsed receipt belonging to a household.
type Receipt struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	HouseholdID uuid.UUID   `db:"household_id" json:"household_id"`
	Store       string      `db:"store" json:"store"`
	Method      string      `db:"method" json:"method"`
	Confidence  float64     `db:"confidence" json:"confidence"`
	Subtotal    float64     `db:"subtotal" json:"subtotal"`
	Tax         float64     `db:"tax" json:"tax"`
	Total       float64     `db:"total" json:"total"`
	RawText     string      `db:"raw_text" json:"-"`
	Fingerprint string      `db:"fingerprint" json:"-"`
	ParseStatus ParseStatus `db:"parse_status" json:"parse_status"`
	ParseError  *string     `db:"parse_error" json:"parse_error,omitempty"`
	Attempts    int         `db:"attempts" json:"-"`
	ParsedAt    *time.Time  `db:"parsed_at" json:"parsed_at"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// ReceiptItem is one extracted purchase line on a receipt.
type ReceiptItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ReceiptID   uuid.UUID `db:"receipt_id" json:"receipt_id"`
	HouseholdID uuid.UUID `db:"household_id" json:"household_id"`
	Position    int       `db:"position" json:"position"`
	Name        string    `db:"name" json:"name"`
	Price       float64   `db:"price" json:"price"`
	Quantity    float64   `db:"quantity" json:"quantity"`
	Unit        string    `db:"unit" json:"unit"`
	Code        string    `db:"code" json:"code,omitempty"`
	RawText     string    `db:"raw_text" json:"raw_text"`
	Confidence  float64   `db:"confidence" json:"confidence"`
	NeedsReview bool      `db:"needs_review" json:"needs_review"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ReviewItem is a review-queue row for a low-confidence extracted item.
type ReviewItem struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	ReceiptID     uuid.UUID    `db:"receipt_id" json:"receipt_id"`
	ItemID        uuid.UUID    `db:"item_id" json:"item_id"`
	HouseholdID   uuid.UUID    `db:"household_id" json:"household_id"`
	Status        ReviewStatus `db:"status" json:"status"`
	CorrectedName string       `db:"corrected_name" json:"corrected_name"`
	ResolvedAt    *time.Time   `db:"resolved_at" json:"resolved_at"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

// ExtractionRecord is an idempotency ledger entry: one row per distinct
// (household, raw text) submission, pointing at the receipt it produced.
// Rows are only ever read or inserted, never mutated.
type ExtractionRecord struct {
	Fingerprint string    `db:"fingerprint" json:"fingerprint"`
	HouseholdID uuid.UUID `db:"household_id" json:"household_id"`
	ReceiptID   uuid.UUID `db:"receipt_id" json:"receipt_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// StoreCorrection is a learned OCR correction for a retailer, fed by the
// review workflow and merged into extraction hints on later parses.
type StoreCorrection struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Store     string    `db:"store" json:"store"`
	Misread   string    `db:"misread" json:"misread"`
	Corrected string    `db:"corrected" json:"corrected"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Fingerprint computes the deterministic duplicate-detection hash for a
// household's raw receipt text.
func Fingerprint(householdID uuid.UUID, rawText string) string {
	h := sha256.New()
	h.Write([]byte(householdID.String()))
	h.Write([]byte{'\n'})
	h.Write([]byte(rawText))
	return hex.EncodeToString(h.Sum(nil))
}
