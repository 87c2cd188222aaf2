package extract

import "regexp"

// Structural noise: lines a receipt prints around the purchasable items.
// The catalog is fixed; adding a pattern here changes both the inline skip
// behavior and the item-section boundary, so keep totals patterns in
// totalLineRe only.
var noisePatterns = []*regexp.Regexp{
	// lone tax-code letters
	regexp.MustCompile(`^[A-Z]$`),
	// department / section banners
	regexp.MustCompile(`(?i)^(PRODUCE|DAIRY|BAKERY|MEAT|SEAFOOD|DELI|FROZEN(\s+FOODS?)?|GROCERY|BEVERAGES?|HOUSEHOLD|FLORAL|PHARMACY|GEN(ERAL)?\s*MERCH(ANDISE)?)$`),
	// payment / tender lines
	regexp.MustCompile(`(?i)^\s*(CASH|CREDIT|DEBIT|CHANGE|VISA|MASTERCARD|AMEX|DISCOVER|GIFT\s*CARD|EBT|TEND(ER)?|MEMBER(SHIP)?\s*(#|NUM)?|PAYMENT|AUTH)\b`),
	// street-address-shaped lines
	regexp.MustCompile(`(?i)^\d+\s+[A-Z0-9 .]+\b(ST|STREET|AVE|AVENUE|RD|ROAD|BLVD|DR|DRIVE|HWY|PKWY|WAY|LN|LANE)\.?$`),
	// discount-program labels
	regexp.MustCompile(`(?i)^(REG(ULAR)?\s+)?PRICE\b`),
	regexp.MustCompile(`(?i)^YOU\s*PAY\b`),
	regexp.MustCompile(`(?i)^(MEMBER|CARD|CLUB)\s+SAVINGS\b`),
	// weight annotations, e.g. "WT 1.23 lb @ 2.99/lb"
	regexp.MustCompile(`(?i)^WT\b`),
	regexp.MustCompile(`(?i)^\d+(\.\d+)?\s*(LB|OZ|KG|G)\s*@`),
}

// totalLineRe marks the totals section; the first such line is the item-scan
// boundary even when later lines would otherwise match an item grammar.
var totalLineRe = regexp.MustCompile(`(?i)^\s*\**\s*(SUB\s*-?\s*TOTAL|SUBTOTAL|TAX|TOTAL|BALANCE(\s+DUE)?|AMOUNT\s+DUE)\b`)

// isNoise reports whether a line is structural noise rather than a
// purchasable item or its price.
func isNoise(line string) bool {
	if totalLineRe.MatchString(line) {
		return true
	}
	for _, p := range noisePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func isTotalLine(line string) bool {
	return totalLineRe.MatchString(line)
}

// itemBoundary returns the index of the first totals-section line, or
// len(lines) when the text has none.
func itemBoundary(lines []string) int {
	for i, l := range lines {
		if isTotalLine(l) {
			return i
		}
	}
	return len(lines)
}
