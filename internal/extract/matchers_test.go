package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractOne(t *testing.T, lines []string, hints StoreHints) (Item, string) {
	t.Helper()
	items, formats := scan(lines, hints)
	require.Len(t, items, 1)
	require.Len(t, formats, 1)
	return items[0], formats[0]
}

func TestCodedTwoLine_SinglePrice(t *testing.T) {
	item, format := extractOne(t, []string{
		"96716 ORG SPINACH",
		"2.99 S",
	}, StoreHints{})

	assert.Equal(t, FormatCodedTwoLine, format)
	assert.Equal(t, "ORG SPINACH", item.Name)
	assert.Equal(t, 2.99, item.Price)
	assert.Equal(t, "96716", item.Code)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, "piece", item.Unit)
}

func TestCodedTwoLine_DiscountTieBreak(t *testing.T) {
	// The later price always wins, regardless of magnitude.
	t.Run("discount_smaller", func(t *testing.T) {
		item, _ := extractOne(t, []string{
			"96716 ORG SPINACH",
			"5.49 4.99 S",
		}, StoreHints{})
		assert.Equal(t, 4.99, item.Price)
	})

	t.Run("second_larger", func(t *testing.T) {
		item, _ := extractOne(t, []string{
			"96716 ORG SPINACH",
			"4.99 5.49 S",
		}, StoreHints{})
		assert.Equal(t, 5.49, item.Price)
	})
}

func TestCodedTwoLine_DiscountOnFollowingLine(t *testing.T) {
	item, _ := extractOne(t, []string{
		"96716 ORG SPINACH",
		"5.49",
		"4.99 S",
	}, StoreHints{})
	assert.Equal(t, 4.99, item.Price)
}

func TestCodedTwoLine_YouPayLayout(t *testing.T) {
	t.Run("amounts_on_own_lines", func(t *testing.T) {
		item, format := extractOne(t, []string{
			"1234567 GRANOLA BARS",
			"Price",
			"5.49",
			"You Pay",
			"4.99",
		}, StoreHints{})
		assert.Equal(t, FormatCodedTwoLine, format)
		assert.Equal(t, 4.99, item.Price)
	})

	t.Run("amounts_on_label_lines", func(t *testing.T) {
		item, _ := extractOne(t, []string{
			"1234567 GRANOLA BARS",
			"Price 5.49",
			"You Pay 4.99",
		}, StoreHints{})
		assert.Equal(t, 4.99, item.Price)
	})
}

func TestCodedTwoLine_TaxMarkerAndSecondaryField(t *testing.T) {
	item, _ := extractOne(t, []string{
		"T 4011 0001 BANANAS YELLOW",
		"1.49",
	}, StoreHints{})
	assert.Equal(t, "BANANAS YELLOW", item.Name)
	assert.Equal(t, "4011", item.Code)
}

func TestCodedTwoLine_NoResolvablePrice(t *testing.T) {
	items, _ := scan([]string{
		"96716 ORG SPINACH",
		"NO PRICE HERE AT ALL",
	}, StoreHints{})
	assert.Empty(t, items)
}

func TestCodedThreeLine(t *testing.T) {
	item, format := extractOne(t, []string{
		"004850001234",
		"CHEDDAR BLOCK",
		"6.99 T",
	}, StoreHints{})

	assert.Equal(t, FormatCodedThreeLine, format)
	assert.Equal(t, "CHEDDAR BLOCK", item.Name)
	assert.Equal(t, 6.99, item.Price)
	assert.Equal(t, "004850001234", item.Code)
}

func TestCodedThreeLine_DiscountLine(t *testing.T) {
	item, _ := extractOne(t, []string{
		"004850001234",
		"CHEDDAR BLOCK",
		"6.99",
		"5.99 T",
	}, StoreHints{})
	assert.Equal(t, 5.99, item.Price)
}

func TestCodedThreeLine_RejectsPriceAsName(t *testing.T) {
	// A price line is not a valid name continuation; nothing extractable.
	items, _ := scan([]string{
		"004850001234",
		"6.99",
	}, StoreHints{})
	assert.Empty(t, items)
}

func TestPLU_Basic(t *testing.T) {
	item, format := extractOne(t, []string{
		"4011",
		"BANANAS",
		"1.49",
	}, StoreHints{})

	assert.Equal(t, FormatPLU, format)
	assert.Equal(t, "BANANAS", item.Name)
	assert.Equal(t, 1.49, item.Price)
	assert.Equal(t, "4011", item.Code)
}

func TestPLU_QuantityPrefix(t *testing.T) {
	t.Run("at_sign", func(t *testing.T) {
		item, _ := extractOne(t, []string{
			"4011",
			"2@ BANANAS",
			"2.98",
		}, StoreHints{})
		assert.Equal(t, "BANANAS", item.Name)
		assert.Equal(t, 2.0, item.Quantity)
	})

	t.Run("hash_sign", func(t *testing.T) {
		item, _ := extractOne(t, []string{
			"4608",
			"2# GARLIC",
			"1.98",
		}, StoreHints{})
		assert.Equal(t, "GARLIC", item.Name)
		assert.Equal(t, 2.0, item.Quantity)
	})
}

func TestPLU_WeightLineInterleaved(t *testing.T) {
	t.Run("before_price", func(t *testing.T) {
		item, _ := extractOne(t, []string{
			"4011",
			"BANANAS",
			"WT 2.31 lb @ 0.69/lb",
			"1.59",
		}, StoreHints{})
		assert.Equal(t, 1.59, item.Price)
	})

	t.Run("between_price_and_discount", func(t *testing.T) {
		item, _ := extractOne(t, []string{
			"4011",
			"BANANAS",
			"1.59",
			"WT 2.31 lb @ 0.69/lb",
			"1.39 S",
		}, StoreHints{})
		assert.Equal(t, 1.39, item.Price)
	})
}

func TestSingleLine(t *testing.T) {
	item, format := extractOne(t, []string{
		"MILK WHOLE GALLON 3.49 T",
	}, StoreHints{})

	assert.Equal(t, FormatSingleLine, format)
	assert.Equal(t, "MILK WHOLE GALLON", item.Name)
	assert.Equal(t, 3.49, item.Price)
	assert.Empty(t, item.Code)
}

func TestSingleLine_EmbeddedFirstPrice(t *testing.T) {
	// Multi-price discount form on one line: the captured (final) price wins
	// and the embedded regular price is scrubbed from the name.
	item, _ := extractOne(t, []string{
		"GRANOLA BARS 5.49 4.99 S",
	}, StoreHints{})
	assert.Equal(t, "GRANOLA BARS", item.Name)
	assert.Equal(t, 4.99, item.Price)
}

func TestSingleLine_NameGuard(t *testing.T) {
	// Orphaned price fragments carry no real name and must not become items.
	items, _ := scan([]string{"7.99 7.99 T"}, StoreHints{})
	assert.Empty(t, items)
}

func TestSingleLine_PriceCeiling(t *testing.T) {
	items, _ := scan([]string{"STORE PHONE 555.12"}, StoreHints{})
	require.Len(t, items, 1) // in range, accepted

	items, _ = scan([]string{"SOME ITEM 1000.01"}, StoreHints{})
	assert.Empty(t, items)
}

func TestMatcherOrder(t *testing.T) {
	assert.Equal(t, []string{
		FormatCodedTwoLine,
		FormatCodedThreeLine,
		FormatPLU,
		FormatSingleLine,
	}, MatcherOrder())
}
