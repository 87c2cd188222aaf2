package extract

import (
	"regexp"
	"strings"
)

// codedItemLineRe matches "[tax letter] CODE [secondary number] NAME" where
// CODE is a 4-13 digit product code and NAME is free text starting with a
// letter, e.g. "96716 ORG SPINACH" or "T 0003400000440 CANDY PNUT BTR".
var codedItemLineRe = regexp.MustCompile(`^(?:[A-Z]\s+)?(\d{4,13})(?:\s+\d{1,6})?\s+([A-Za-z].*)$`)

// codedTwoLineMatcher handles the code-and-name line followed by a price on
// the next non-noise line. Covers the one-price, regular-then-discounted,
// and "Price" / "You Pay" program layouts.
type codedTwoLineMatcher struct{}

func (codedTwoLineMatcher) Name() string { return FormatCodedTwoLine }

func (codedTwoLineMatcher) Detect(lines []string, i int) bool {
	if isNoise(lines[i]) || isPriceLine(lines[i]) {
		return false
	}
	m := codedItemLineRe.FindStringSubmatch(lines[i])
	return m != nil && alphaCount(m[2]) >= 2
}

func (codedTwoLineMatcher) Extract(lines []string, i int, hints StoreHints) (Item, int, bool) {
	m := codedItemLineRe.FindStringSubmatch(lines[i])
	if m == nil {
		return Item{}, 0, false
	}
	price, end, ok := resolvePrice(lines, i+1)
	if !ok || price <= 0 {
		return Item{}, 0, false
	}
	return Item{
		Name:     hints.NormalizeName(cleanName(m[2])),
		Price:    price,
		Quantity: 1,
		Unit:     "piece",
		Code:     m[1],
		RawText:  strings.Join(lines[i:end+1], "\n"),
	}, end - i + 1, true
}

// bareCodeRe matches a long product code alone on its line; 4-5 digit codes
// are left to the PLU matcher.
var bareCodeRe = regexp.MustCompile(`^\d{6,13}$`)

// codedThreeLineMatcher handles "CODE / NAME / PRICE" across three lines,
// with the same trailing-discount-line rule as the two-line form.
type codedThreeLineMatcher struct{}

func (codedThreeLineMatcher) Name() string { return FormatCodedThreeLine }

func (codedThreeLineMatcher) Detect(lines []string, i int) bool {
	if !bareCodeRe.MatchString(lines[i]) || i+1 >= len(lines) {
		return false
	}
	name := lines[i+1]
	return !isNoise(name) && !isPriceLine(name) && alphaCount(name) >= 2
}

func (codedThreeLineMatcher) Extract(lines []string, i int, hints StoreHints) (Item, int, bool) {
	price, end, ok := resolvePrice(lines, i+2)
	if !ok || price <= 0 {
		return Item{}, 0, false
	}
	return Item{
		Name:     hints.NormalizeName(cleanName(lines[i+1])),
		Price:    price,
		Quantity: 1,
		Unit:     "piece",
		Code:     lines[i],
		RawText:  strings.Join(lines[i:end+1], "\n"),
	}, end - i + 1, true
}

// cleanName strips embedded price tokens and trailing punctuation from a
// candidate item name.
func cleanName(name string) string {
	name = amountRe.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), " ")
	return strings.TrimRight(name, " .,;:-_*")
}
