package extract

import "regexp"

// singleLineRe captures "NAME PRICE [tax letter]" on one line. The name part
// may itself contain an earlier price (multi-price discount form); the
// captured group is the final price on the line, which is the one that
// counts.
var singleLineRe = regexp.MustCompile(`^(.*\S)\s+\$?(\d{1,4}\.\d{2})\s*[A-Z]?$`)

const maxSinglePrice = 1000

// singleLineMatcher is the lowest-priority fallback: name and price sharing
// one line. Guards reject orphaned price fragments like "7.99 7.99 T" that
// carry no real name.
type singleLineMatcher struct{}

func (singleLineMatcher) Name() string { return FormatSingleLine }

func (singleLineMatcher) Detect(lines []string, i int) bool {
	if isNoise(lines[i]) {
		return false
	}
	m := singleLineRe.FindStringSubmatch(lines[i])
	return m != nil && alphaCount(m[1]) >= 3
}

func (singleLineMatcher) Extract(lines []string, i int, hints StoreHints) (Item, int, bool) {
	m := singleLineRe.FindStringSubmatch(lines[i])
	if m == nil || alphaCount(m[1]) < 3 {
		return Item{}, 0, false
	}
	ps := pricesOn(m[2])
	if len(ps) == 0 {
		return Item{}, 0, false
	}
	price := ps[0]
	if price <= 0 || price > maxSinglePrice {
		return Item{}, 0, false
	}
	return Item{
		Name:     hints.NormalizeName(cleanName(m[1])),
		Price:    price,
		Quantity: 1,
		Unit:     "piece",
		RawText:  lines[i],
	}, 1, true
}
