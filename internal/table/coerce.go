package table

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regex for numeric validation (avoids recompilation on each call)
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber attempts to interpret a raw string as a number.
// Returns false for empty or non-numeric text.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ToNumber attempts numeric coercion of a single cell. Callers filter
// out null cells first; a null cell always fails coercion here.
// Boolean cells coerce to 1/0.
func ToNumber(c Cell) (float64, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Num, true
	case KindBool:
		if c.Bool {
			return 1, true
		}
		return 0, true
	case KindText:
		return ParseNumber(c.Raw)
	default:
		return 0, false
	}
}

// IsIntegerLike reports whether a coerced value has zero fractional
// remainder (3.0 is integer-like, 3.5 is not).
func IsIntegerLike(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// parseBool recognizes the boolean literals spreadsheet tools emit.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
