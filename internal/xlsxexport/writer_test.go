package xlsxexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pantryos/internal/domain"
)

func TestBuild_TwoSheets(t *testing.T) {
	receiptID := uuid.New()
	parsedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	receipts := []domain.Receipt{{
		ID:          receiptID,
		Store:       "SAFEWAY",
		Method:      "coded_2line,plu",
		Confidence:  0.85,
		Subtotal:    7.69,
		Tax:         0,
		Total:       7.69,
		ParseStatus: domain.ParseStatusCompleted,
		ParsedAt:    &parsedAt,
		CreatedAt:   parsedAt,
	}}
	itemsByReceipt := map[uuid.UUID][]domain.ReceiptItem{
		receiptID: {
			{ReceiptID: receiptID, Position: 0, Name: "BREAD WHT", Code: "1234567", Quantity: 1, Price: 3.49, Confidence: 0.9},
			{ReceiptID: receiptID, Position: 1, Name: "BANANAS", Code: "4011", Quantity: 2, Price: 4.20, Confidence: 0.9, NeedsReview: true},
		},
	}

	f, err := Build(receipts, itemsByReceipt)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	// Round-trip through the serialized form
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	parsed, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = parsed.Close() }()

	rows, err := parsed.GetRows("Receipts")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Receipt ID", rows[0][0])
	assert.Equal(t, receiptID.String(), rows[1][0])
	assert.Equal(t, "SAFEWAY", rows[1][1])
	assert.Equal(t, "2", rows[1][7]) // item count

	items, err := parsed.GetRows("Items")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Item", items[0][3])
	assert.Equal(t, "BREAD WHT", items[1][3])
	assert.Equal(t, "BANANAS", items[2][3])
	assert.Equal(t, "TRUE", items[2][9])
}

func TestBuild_Empty(t *testing.T) {
	f, err := Build(nil, nil)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Receipts")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Q3_Receipts", SanitizeFilename("Q3 Receipts!"))
	assert.Equal(t, "a_b_c", SanitizeFilename("a  /  b///c"))
	assert.Equal(t, "already-clean_name", SanitizeFilename("already-clean_name"))

	long := SanitizeFilename(string(bytes.Repeat([]byte{'x'}, 150)))
	assert.Len(t, long, 100)
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("receipts export")
	assert.Contains(t, name, "receipts_export_")
	assert.Contains(t, name, ".xlsx")
	assert.Contains(t, name, time.Now().Format("2006-01-02"))
}
