package extract

import "regexp"

var (
	subtotalRe = regexp.MustCompile(`(?i)\bSUB\s*-?\s*TOTAL\b`)
	taxRe      = regexp.MustCompile(`(?i)\bTAX\b`)
	totalRe    = regexp.MustCompile(`(?i)\b(TOTAL|BALANCE)\b`)
)

// ExtractTotals scans every line for subtotal, tax, and total labels
// independently of item extraction. First match per label wins; when a label
// line carries no amount, the line below it is consulted. Absent labels
// leave the zero value, which is not an error.
func ExtractTotals(lines []string) Totals {
	var t Totals
	var haveSub, haveTax, haveTotal bool

	for i, line := range lines {
		switch {
		case !haveSub && subtotalRe.MatchString(line):
			if v, ok := labelAmount(lines, i); ok {
				t.Subtotal = v
				haveSub = true
			}
		case !haveTax && taxRe.MatchString(line):
			if v, ok := labelAmount(lines, i); ok {
				t.Tax = v
				haveTax = true
			}
		case !haveTotal && totalRe.MatchString(line) && !subtotalRe.MatchString(line):
			if v, ok := labelAmount(lines, i); ok {
				t.Total = v
				haveTotal = true
			}
		}
	}
	return t
}

// labelAmount returns the first amount on the label line, falling back to
// the first amount on the immediately following line.
func labelAmount(lines []string, i int) (float64, bool) {
	if ps := pricesOn(lines[i]); len(ps) > 0 {
		return ps[0], true
	}
	if i+1 < len(lines) {
		if ps := pricesOn(lines[i+1]); len(ps) > 0 {
			return ps[0], true
		}
	}
	return 0, false
}
