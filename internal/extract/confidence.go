package extract

import "math"

// Per-item confidence. The cap stays below 1.0 so a later human correction
// can always outrank a machine-extracted value.
const (
	itemBaseConfidence   = 0.70
	itemCodeBonus        = 0.10
	itemCodedFormatBonus = 0.10
	itemConfidenceCap    = 0.95
)

// Overall confidence. Reconciliation bands compare the item-price sum
// against the subtotal (or total); the tightest band earns the largest
// bonus.
const (
	overallBase           = 0.50
	itemCountBonus        = 0.10 // each of the >=5 and >=10 thresholds
	reconTightBonus       = 0.25 // within 1%
	reconMediumBonus      = 0.15 // within 5%
	reconLooseBonus       = 0.05 // within 10%
	nameQualityWeight     = 0.10
	overallCap            = 0.99
	emptyResultConfidence = 0.10
)

// itemConfidence scores a single extracted item by its provenance.
func itemConfidence(format string, item Item) float64 {
	c := itemBaseConfidence
	if item.Code != "" {
		c += itemCodeBonus
	}
	switch format {
	case FormatCodedTwoLine, FormatCodedThreeLine, FormatPLU:
		c += itemCodedFormatBonus
	}
	return math.Min(c, itemConfidenceCap)
}

// overallConfidence combines structural signals with arithmetic
// reconciliation between the item-price sum and the extracted totals.
func overallConfidence(items []Item, totals Totals) float64 {
	if len(items) == 0 {
		return emptyResultConfidence
	}

	c := overallBase
	if len(items) >= 5 {
		c += itemCountBonus
	}
	if len(items) >= 10 {
		c += itemCountBonus
	}
	c += reconciliationBonus(items, totals)

	wellFormed := 0
	for _, it := range items {
		if len(it.Name) >= 3 && alphaCount(it.Name) > 0 {
			wellFormed++
		}
	}
	c += nameQualityWeight * float64(wellFormed) / float64(len(items))

	return math.Min(c, overallCap)
}

// reconciliationBonus rewards agreement between the summed item prices and
// the subtotal, falling back to the total when no subtotal was found. A
// mismatch is never an error; it only withholds the bonus.
func reconciliationBonus(items []Item, totals Totals) float64 {
	ref := totals.Subtotal
	if ref <= 0 {
		ref = totals.Total
	}
	if ref <= 0 {
		return 0
	}

	var sum float64
	for _, it := range items {
		sum += it.Price
	}

	diff := math.Abs(sum-ref) / ref
	switch {
	case diff <= 0.01:
		return reconTightBonus
	case diff <= 0.05:
		return reconMediumBonus
	case diff <= 0.10:
		return reconLooseBonus
	default:
		return 0
	}
}
