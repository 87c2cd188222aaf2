package extract

import (
	"regexp"
	"strconv"
	"unicode"
)

// A "price" throughout this package is a currency-formatted number optionally
// followed by a single uppercase tax-category letter.
var (
	amountRe = regexp.MustCompile(`\$?(\d{1,4}\.\d{2})`)

	// priceLineRe matches lines that consist only of one or more prices plus
	// an optional trailing tax letter, e.g. "2.99", "5.49 4.99 S".
	priceLineRe = regexp.MustCompile(`^\$?\d{1,4}\.\d{2}(?:\s+\$?\d{1,4}\.\d{2})*\s*[A-Z]?$`)
)

// pricesOn returns every currency amount appearing on the line, in order.
func pricesOn(line string) []float64 {
	var out []float64
	for _, m := range amountRe.FindAllStringSubmatch(line, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// isPriceLine reports whether the line holds nothing but prices (and an
// optional tax letter).
func isPriceLine(line string) bool {
	return priceLineRe.MatchString(line)
}

func alphaCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// priceLookahead bounds how far a matcher searches past the item line for
// its price. Keeps extract attempts O(1) per line.
const priceLookahead = 4

// resolvePrice scans forward from start for the price belonging to the item
// that began just above. Noise lines (weight annotations, discount-program
// labels) are skipped; the scan stops at the totals boundary or at the first
// ordinary text line.
//
// Discount rule: when a second price line immediately follows the first, or
// two prices share one line, the later-appearing price always wins. This is
// a fixed regular-price-then-discount convention, not a magnitude check, so
// a quantity pair like "2 4.99" is deliberately read the same way.
func resolvePrice(lines []string, start int) (price float64, end int, found bool) {
	for j := start; j < len(lines) && j <= start+priceLookahead; j++ {
		line := lines[j]
		if isTotalLine(line) {
			break
		}
		if v, yEnd, ok := youPayAmount(lines, j); ok {
			// "You Pay" closes a discount-program block; its amount is final.
			return v, yEnd, true
		}
		if isPriceLine(line) {
			ps := pricesOn(line)
			if found {
				return ps[len(ps)-1], j, true
			}
			price = ps[len(ps)-1]
			end = j
			found = true
			continue
		}
		if !isNoise(line) {
			// Ordinary text: either the next item (keep what we have) or an
			// unresolvable shape (nothing found yet).
			break
		}
	}
	return price, end, found
}

var youPayRe = regexp.MustCompile(`(?i)^YOU\s*PAY\b`)

// youPayAmount resolves the "You Pay" discount-program label at index j,
// accepting the amount on the label line itself or on the line below it.
func youPayAmount(lines []string, j int) (float64, int, bool) {
	if !youPayRe.MatchString(lines[j]) {
		return 0, 0, false
	}
	if ps := pricesOn(lines[j]); len(ps) > 0 {
		return ps[len(ps)-1], j, true
	}
	if j+1 < len(lines) && isPriceLine(lines[j+1]) {
		ps := pricesOn(lines[j+1])
		return ps[len(ps)-1], j + 1, true
	}
	return 0, 0, false
}
