// Command seedstores converts a store-corrections Excel workbook into a SQL
// seed file. The sheet has three columns: Store, Misread, Corrected. Data
// starts at row 2 (row 1 is the header).
// Usage: go run ./cmd/seedstores corrections.xlsx
// Output: db/seeds/store_corrections.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"pantryos/internal/extract"
)

const batchSize = 500

type correction struct {
	store     string
	misread   string
	corrected string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedstores <corrections.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/store_corrections.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseSheet(f)
	if err != nil {
		return fmt.Errorf("parse sheet: %w", err)
	}
	log.Printf("parsed %d corrections", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Store correction seed data generated from Excel.",
		fmt.Sprintf("-- %d entries in batches of %d.", len(entries), batchSize),
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseSheet reads the first sheet. Columns: A(0)=store, B(1)=misread,
// C(2)=corrected. Stores must match the detector's canonical identifiers.
func parseSheet(f *excelize.File) ([]correction, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool)
	for _, s := range extract.KnownStores() {
		known[s] = true
	}

	seen := make(map[string]bool)
	var entries []correction
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 3 {
			continue
		}
		store := strings.ToUpper(strings.TrimSpace(cellVal(row, 0)))
		misread := strings.ToUpper(strings.TrimSpace(cellVal(row, 1)))
		corrected := strings.ToUpper(strings.TrimSpace(cellVal(row, 2)))
		if store == "" || misread == "" || corrected == "" || misread == corrected {
			continue
		}
		if !known[store] {
			log.Printf("row %d: unknown store %q, skipping", i+1, store)
			continue
		}
		key := store + "|" + misread
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, correction{store: store, misread: misread, corrected: corrected})
	}
	return entries, nil
}

func writeBatch(out *os.File, batch []correction) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO store_corrections (id, store, misread, corrected, created_at) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', '%s', '%s', NOW())",
			escapeSQL(e.store), escapeSQL(e.misread), escapeSQL(e.corrected))
	}

	b.WriteString("\nON CONFLICT (store, misread) DO UPDATE SET corrected = EXCLUDED.corrected;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
