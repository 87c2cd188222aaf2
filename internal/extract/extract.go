// Package extract turns raw receipt OCR text into structured line items and
// totals using a fixed set of line-grammar matchers. The whole package is
// pure: a scan is a deterministic function of the input lines and the store
// hints, performs no I/O, and always produces a Result (possibly with zero
// items and floor confidence) once input validation has passed.
package extract

import (
	"sort"
	"strings"
)

// Item is a single extracted purchase line.
type Item struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Code       string  `json:"code,omitempty"`
	RawText    string  `json:"raw_text"`
	Confidence float64 `json:"confidence"`
}

// Totals holds receipt-level amounts. Fields are independently optional;
// zero means the label was not found.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Result is the outcome of one full scan. Immutable once returned.
type Result struct {
	Items       []Item   `json:"items"`
	Totals      Totals   `json:"totals"`
	Confidence  float64  `json:"confidence"`
	FormatsUsed []string `json:"formats_used"`
	Store       string   `json:"store"`
}

// StoreHints carries optional per-retailer name mappings. Extraction must
// succeed with the zero value.
type StoreHints struct {
	Normalizations map[string]string
	Corrections    map[string]string
}

// NormalizeName expands abbreviations, applies OCR corrections, and strips a
// single trailing tax-letter token, in that order.
func (h StoreHints) NormalizeName(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		if exp, ok := h.Normalizations[f]; ok {
			fields[i] = exp
		}
	}
	for i, f := range fields {
		if fix, ok := h.Corrections[f]; ok {
			fields[i] = fix
		}
	}
	if n := len(fields); n > 1 {
		last := fields[n-1]
		if len(last) == 1 && last[0] >= 'A' && last[0] <= 'Z' {
			fields = fields[:n-1]
		}
	}
	return strings.Join(fields, " ")
}

// Parse detects the store, looks up its built-in hints, and runs the scan.
func Parse(rawText string) Result {
	store := DetectStore(rawText)
	return ParseWithHints(rawText, store, HintsFor(store))
}

// ParseWithHints runs the full deterministic extraction over raw OCR text
// with caller-supplied hints (e.g. built-in tables merged with learned
// corrections).
func ParseWithHints(rawText, store string, hints StoreHints) Result {
	lines := SplitLines(rawText)

	items, formats := scan(lines, hints)
	totals := ExtractTotals(lines)

	return Result{
		Items:       items,
		Totals:      totals,
		Confidence:  overallConfidence(items, totals),
		FormatsUsed: formats,
		Store:       store,
	}
}

// SplitLines breaks raw OCR text into trimmed, non-empty lines.
func SplitLines(rawText string) []string {
	var lines []string
	for _, l := range strings.Split(rawText, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// sortedSet returns the keys of set in stable order.
func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
