package extract

// Matcher family names, reported in Result.FormatsUsed and stored with each
// receipt for audit.
const (
	FormatCodedTwoLine   = "coded_2line"
	FormatCodedThreeLine = "coded_3line"
	FormatPLU            = "plu"
	FormatSingleLine     = "single_line"
)

// FormatMatcher recognizes one line grammar. Detect is a cheap pattern check
// on the line at index i; Extract consumes one or more lines starting at i
// and reports how many it used. Extract may fail on a detected shape (no
// resolvable price), in which case the engine tries the next matcher.
type FormatMatcher interface {
	Name() string
	Detect(lines []string, i int) bool
	Extract(lines []string, i int, hints StoreHints) (Item, int, bool)
}

// matchers is the fixed priority order. Earlier entries win; changing the
// order changes which family claims overlapping shapes.
var matchers = []FormatMatcher{
	codedTwoLineMatcher{},
	codedThreeLineMatcher{},
	pluMatcher{},
	singleLineMatcher{},
}

// MatcherOrder exposes the priority order by name for tests and diagnostics.
func MatcherOrder() []string {
	out := make([]string, len(matchers))
	for i, m := range matchers {
		out[i] = m.Name()
	}
	return out
}
