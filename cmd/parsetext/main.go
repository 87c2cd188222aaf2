// Command parsetext runs the extraction pipeline over receipt text files
// and prints each result as JSON. No database required; an in-memory
// ledger skips files whose text was already seen in the same run.
// Usage: go run ./cmd/parsetext receipt.txt [more.txt ...]
// With no arguments it reads a single receipt from stdin.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"pantryos/internal/domain"
	"pantryos/internal/extract"
	"pantryos/internal/repository/memory"
)

// output is the per-file result envelope printed to stdout.
type output struct {
	File      string          `json:"file,omitempty"`
	Duplicate bool            `json:"duplicate,omitempty"`
	Result    *extract.Result `json:"result,omitempty"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()
	ledger := memory.NewLedger()
	// One synthetic household for the whole run so identical files
	// fingerprint identically.
	householdID := uuid.New()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if len(os.Args) < 2 {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		result := extract.Parse(string(raw))
		return enc.Encode(output{Result: &result})
	}

	for _, path := range os.Args[1:] {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		fingerprint := domain.Fingerprint(householdID, string(raw))
		if _, err := ledger.Get(ctx, fingerprint); err == nil {
			if err := enc.Encode(output{File: path, Duplicate: true}); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("ledger lookup: %w", err)
		}

		result := extract.Parse(string(raw))
		if err := ledger.Record(ctx, &domain.ExtractionRecord{
			Fingerprint: fingerprint,
			HouseholdID: householdID,
			ReceiptID:   uuid.New(),
		}); err != nil {
			return fmt.Errorf("ledger record: %w", err)
		}

		if err := enc.Encode(output{File: path, Result: &result}); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}
	return nil
}
