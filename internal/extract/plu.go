package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// PLU codes are the short 4-5 digit lookups used for loose produce.
	pluCodeRe = regexp.MustCompile(`^\d{4,5}$`)

	// pluNameStartRe: produce name lines start with a letter, a digit, or a
	// quantity marker like "2@".
	pluNameStartRe = regexp.MustCompile(`^[A-Za-z0-9@]`)

	// qtyPrefixRe captures a leading "2@" / "2#" quantity marker.
	qtyPrefixRe = regexp.MustCompile(`^(\d+)\s*[@#]\s*`)
)

// pluMatcher handles the produce layout: a bare PLU code on its own line, a
// name line (possibly quantity-prefixed), then a price, tolerating an
// interleaved weight-annotation line before or after the first price.
type pluMatcher struct{}

func (pluMatcher) Name() string { return FormatPLU }

func (pluMatcher) Detect(lines []string, i int) bool {
	if !pluCodeRe.MatchString(lines[i]) || i+1 >= len(lines) {
		return false
	}
	name := lines[i+1]
	return pluNameStartRe.MatchString(name) && !isPriceLine(name) && !isTotalLine(name)
}

func (pluMatcher) Extract(lines []string, i int, hints StoreHints) (Item, int, bool) {
	name := lines[i+1]
	qty := 1.0
	if m := qtyPrefixRe.FindStringSubmatch(name); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			qty = float64(v)
		}
		name = name[len(m[0]):]
	}
	if alphaCount(name) < 2 {
		return Item{}, 0, false
	}

	// Weight lines ("WT ...") between name and price, or between the first
	// price and a discount line, are classified as noise and skipped inside
	// resolvePrice.
	price, end, ok := resolvePrice(lines, i+2)
	if !ok || price <= 0 {
		return Item{}, 0, false
	}
	return Item{
		Name:     hints.NormalizeName(cleanName(name)),
		Price:    price,
		Quantity: qty,
		Unit:     "piece",
		Code:     lines[i],
		RawText:  strings.Join(lines[i:end+1], "\n"),
	}, end - i + 1, true
}
