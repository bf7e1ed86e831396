// Package measure converts human-entered bar heights to and from the
// canonical storage unit (centimeters).
//
// Parsing is deliberately forgiving: athletes type heights as "11' 6\"",
// "11-6", "3.5m" or just "350", and the codec extracts a canonical value
// where one can be found. Formatting is the display direction only;
// canonical values are never re-stored from formatted text.
package measure

import (
	"math"
	"strconv"
	"strings"
)

// Unit is a display/input preference. It never changes how a value is
// stored; canonical values are always centimeters.
type Unit string

// Supported unit modes.
const (
	Imperial Unit = "imperial"
	Metric   Unit = "metric"
)

// Conversion constants.
const (
	cmPerInch     = 2.54
	inchesPerFoot = 12
)

// UnitFromString coerces an arbitrary stored string to a Unit.
// Unknown values report ok=false so callers can apply their default.
func UnitFromString(s string) (Unit, bool) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case Imperial:
		return Imperial, true
	case Metric:
		return Metric, true
	}
	return Imperial, false
}

// Parse extracts a canonical centimeter value from free-form text.
// ok is false when the text carries no usable measurement; the caller
// keeps the raw text either way.
func Parse(raw string, unit Unit) (cm float64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if unit == Metric {
		return parseMetric(s)
	}
	return parseImperial(s)
}

// parseImperial handles explicit foot/inch markers and their word
// synonyms, then falls back to a positional split: first number is feet,
// second is inches.
func parseImperial(s string) (float64, bool) {
	s = canonicalizeImperial(s)

	if i := strings.IndexByte(s, '\''); i >= 0 {
		feetTokens := numberTokens(s[:i], false)
		if len(feetTokens) == 0 {
			return 0, false
		}
		feet := feetTokens[len(feetTokens)-1]
		inches := 0.0
		if rest := numberTokens(s[i+1:], false); len(rest) > 0 {
			inches = rest[0]
		}
		return imperialToCm(feet, inches)
	}

	tokens := numberTokens(s, false)
	if len(tokens) < 2 {
		return 0, false
	}
	return imperialToCm(tokens[0], tokens[1])
}

func imperialToCm(feet, inches float64) (float64, bool) {
	cm := (feet*inchesPerFoot + inches) * cmPerInch
	if math.IsNaN(cm) || math.IsInf(cm, 0) {
		return 0, false
	}
	return cm, true
}

// parseMetric reads the first number and disambiguates the unit: an
// explicit "cm" or "m" suffix wins, otherwise magnitude decides
// (values under 10 are meters, anything else centimeters).
func parseMetric(s string) (float64, bool) {
	lower := strings.ToLower(s)
	tokens := numberTokens(lower, true)
	if len(tokens) == 0 {
		return 0, false
	}
	v := tokens[0]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	switch {
	case strings.Contains(lower, "cm"):
		return v, true
	case strings.Contains(lower, "m"):
		return v * 100, true
	case math.Abs(v) >= 10:
		return v, true
	default:
		return v * 100, true
	}
}

// Format renders a canonical centimeter value for display in the given
// unit mode. Re-parsing the result in the same mode reconstructs the
// value to quarter-inch precision.
func Format(cm float64, unit Unit) string {
	if unit == Metric {
		return strconv.FormatFloat(cm/100, 'f', 2, 64) + " m"
	}

	totalInches := cm / cmPerInch
	feet := math.Floor(totalInches / inchesPerFoot)
	// Remaining inches snap to the nearest quarter inch.
	inches := math.Round((totalInches-feet*inchesPerFoot)*4) / 4
	if inches >= inchesPerFoot {
		feet++
		inches -= inchesPerFoot
	}
	return strconv.FormatFloat(feet, 'f', 0, 64) + "' " +
		strconv.FormatFloat(inches, 'f', -1, 64) + "\""
}

// imperialSynonyms maps word and curly-quote spellings onto the two
// canonical markers. Longer spellings are listed first so that "inches"
// is rewritten before "in" gets a chance to match inside it.
var imperialSynonyms = []struct{ from, to string }{
	{"feet", "'"},
	{"foot", "'"},
	{"ft", "'"},
	{"inches", "\""},
	{"inch", "\""},
	{"in", "\""},
	{"’", "'"},
	{"‘", "'"},
	{"”", "\""},
	{"“", "\""},
	{"″", "\""},
	{"′", "'"},
}

func canonicalizeImperial(s string) string {
	s = strings.ToLower(s)
	for _, syn := range imperialSynonyms {
		s = strings.ReplaceAll(s, syn.from, syn.to)
	}
	return s
}

// numberTokens scans s for decimal numbers. When signed is false a '-'
// acts as a separator ("11-6" splits into 11 and 6); when true it is a
// leading sign.
func numberTokens(s string, signed bool) []float64 {
	var out []float64
	i := 0
	for i < len(s) {
		c := s[i]
		start := i
		if signed && c == '-' && i+1 < len(s) && isDigit(s[i+1]) {
			i++
			c = s[i]
		}
		if !isDigit(c) {
			i++
			continue
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i < len(s) && s[i] == '.' && i+1 < len(s) && isDigit(s[i+1]) {
			i++
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		}
		v, err := strconv.ParseFloat(s[start:i], 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
