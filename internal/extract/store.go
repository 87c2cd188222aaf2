package extract

import "strings"

// StoreUnknown is returned when no retailer signature matches. Extraction
// proceeds with empty hints; detection is advisory only.
const StoreUnknown = "UNKNOWN"

// storeDetectWindow bounds how many leading lines are inspected for a
// retailer signature.
const storeDetectWindow = 10

// storeSignatures maps substring signatures to canonical retailer names.
// Order is fixed so detection stays deterministic.
var storeSignatures = []struct {
	signature string
	name      string
}{
	{"SAFEWAY", "SAFEWAY"},
	{"COSTCO", "COSTCO"},
	{"WHOLE FOODS", "WHOLE_FOODS"},
	{"WHOLEFDS", "WHOLE_FOODS"},
	{"TRADER JOE", "TRADER_JOES"},
	{"KROGER", "KROGER"},
	{"H-E-B", "HEB"},
	{"HEB ", "HEB"},
	{"WALMART", "WALMART"},
	{"WAL-MART", "WALMART"},
	{"TARGET", "TARGET"},
	{"ALBERTSONS", "ALBERTSONS"},
	{"PUBLIX", "PUBLIX"},
	{"H MART", "HMART"},
	{"ALDI", "ALDI"},
}

// KnownStores returns the canonical names of every detectable retailer,
// sorted and deduplicated.
func KnownStores() []string {
	set := make(map[string]bool, len(storeSignatures))
	for _, sig := range storeSignatures {
		set[sig.name] = true
	}
	return sortedSet(set)
}

// DetectStore scans the leading lines of the text for a known retailer
// signature (case-insensitive substring match). Returns StoreUnknown when
// nothing matches; a miss never blocks extraction.
func DetectStore(rawText string) string {
	lines := SplitLines(rawText)
	if len(lines) > storeDetectWindow {
		lines = lines[:storeDetectWindow]
	}
	for _, line := range lines {
		upper := strings.ToUpper(line)
		for _, sig := range storeSignatures {
			if strings.Contains(upper, sig.signature) {
				return sig.name
			}
		}
	}
	return StoreUnknown
}

// storeNormalizations expands the abbreviations each retailer prints for
// common product words. Purely additive: unknown stores get empty maps.
var storeNormalizations = map[string]map[string]string{
	"SAFEWAY": {
		"ORG":  "ORGANIC",
		"WHP":  "WHIPPED",
		"CHKN": "CHICKEN",
		"BNLS": "BONELESS",
		"GRND": "GROUND",
		"SFWY": "SAFEWAY",
	},
	"COSTCO": {
		"ORG": "ORGANIC",
		"KS":  "KIRKLAND SIGNATURE",
		"LS":  "LESS SODIUM",
	},
	"WHOLE_FOODS": {
		"OG":  "ORGANIC",
		"ORG": "ORGANIC",
		"365": "365 EVERYDAY VALUE",
	},
	"KROGER": {
		"ORG": "ORGANIC",
		"KRO": "KROGER",
	},
	"TRADER_JOES": {
		"TJ":  "TRADER JOE'S",
		"ORG": "ORGANIC",
	},
}

// storeCorrections fixes recurring OCR misreads seen on a retailer's
// receipts.
var storeCorrections = map[string]map[string]string{
	"SAFEWAY": {
		"SPINRCH": "SPINACH",
		"T0MATO":  "TOMATO",
		"M1LK":    "MILK",
	},
	"COSTCO": {
		"0RGANIC":    "ORGANIC",
		"R0TISSERIE": "ROTISSERIE",
	},
}

// HintsFor returns the built-in hint tables for a detected store. The zero
// hints come back for StoreUnknown and unlisted retailers.
func HintsFor(store string) StoreHints {
	return StoreHints{
		Normalizations: copyTable(storeNormalizations[store]),
		Corrections:    copyTable(storeCorrections[store]),
	}
}

func copyTable(src map[string]string) map[string]string {
	if len(src) == 0 {
		return map[string]string{}
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
