package xlsxexport

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"pantryos/internal/domain"
)

const (
	sheetReceipts = "Receipts"
	sheetItems    = "Items"
)

var receiptColumns = []string{
	"Receipt ID",
	"Store",
	"Method",
	"Confidence",
	"Subtotal",
	"Tax",
	"Total",
	"Item Count",
	"Parse Status",
	"Parsed At",
	"Created At",
}

var itemColumns = []string{
	"Receipt ID",
	"Store",
	"Position",
	"Item",
	"Code",
	"Quantity",
	"Unit",
	"Price",
	"Confidence",
	"Needs Review",
}

// Build creates a two-sheet workbook: one receipt per row on the first
// sheet, one extracted item per row on the second.
func Build(receipts []domain.Receipt, itemsByReceipt map[uuid.UUID][]domain.ReceiptItem) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetReceipts)
	if _, err := f.NewSheet(sheetItems); err != nil {
		return nil, fmt.Errorf("create items sheet: %w", err)
	}

	if err := writeRow(f, sheetReceipts, 1, headerCells(receiptColumns)); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheetItems, 1, headerCells(itemColumns)); err != nil {
		return nil, err
	}

	itemRow := 2
	for i := range receipts {
		r := &receipts[i]
		items := itemsByReceipt[r.ID]
		cells := []interface{}{
			r.ID.String(),
			r.Store,
			r.Method,
			r.Confidence,
			r.Subtotal,
			r.Tax,
			r.Total,
			len(items),
			string(r.ParseStatus),
			formatTime(r.ParsedAt),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := writeRow(f, sheetReceipts, i+2, cells); err != nil {
			return nil, err
		}

		for j := range items {
			it := &items[j]
			cells := []interface{}{
				r.ID.String(),
				r.Store,
				it.Position,
				it.Name,
				it.Code,
				it.Quantity,
				it.Unit,
				it.Price,
				it.Confidence,
				it.NeedsReview,
			}
			if err := writeRow(f, sheetItems, itemRow, cells); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	return f, nil
}

func headerCells(cols []string) []interface{} {
	cells := make([]interface{}, len(cols))
	for i, c := range cols {
		cells[i] = c
	}
	return cells
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.xlsx
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.xlsx", sanitized, date)
}
