package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoise(t *testing.T) {
	noisy := []string{
		"T",
		"PRODUCE",
		"dairy",
		"FROZEN FOODS",
		"CASH 20.00",
		"CHANGE 1.74",
		"VISA TEND 8.19",
		"MEMBER # 123456",
		"123 MAIN ST",
		"4500 ELM AVENUE",
		"Price",
		"REGULAR PRICE 5.49",
		"You Pay",
		"MEMBER SAVINGS 0.50",
		"WT 2.31 lb @ 0.69/lb",
		"1.2 LB @ 2.99",
		"SUBTOTAL",
		"SUB TOTAL 12.34",
		"TAX 0.45",
		"TOTAL 12.79",
		"BALANCE DUE 12.79",
		"AMOUNT DUE",
	}
	for _, line := range noisy {
		assert.True(t, isNoise(line), "expected noise: %q", line)
	}

	clean := []string{
		"96716 ORG SPINACH",
		"BANANAS",
		"2.99 S",
		"5.49 4.99 S",
		"MILK WHOLE GALLON 3.49 T",
		"CASHEWS ROASTED 6.99",
		"4011",
	}
	for _, line := range clean {
		assert.False(t, isNoise(line), "expected not noise: %q", line)
	}
}

func TestItemBoundary(t *testing.T) {
	t.Run("stops_at_first_totals_line", func(t *testing.T) {
		lines := []string{"96716 ORG SPINACH", "2.99", "SUBTOTAL 2.99", "88211 AFTER", "9.99"}
		assert.Equal(t, 2, itemBoundary(lines))
	})

	t.Run("no_totals_section", func(t *testing.T) {
		lines := []string{"96716 ORG SPINACH", "2.99"}
		assert.Equal(t, 2, itemBoundary(lines))
	})

	t.Run("tax_line_is_a_boundary", func(t *testing.T) {
		lines := []string{"ITEM ONE 1.00", "TAX 0.08", "ITEM TWO 2.00"}
		assert.Equal(t, 1, itemBoundary(lines))
	})
}
