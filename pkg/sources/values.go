package sources

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal reads a number the way cashiers type it: "1.250,50",
// "1,250.50", "TRY 120", "120,5". Blank or unreadable input is zero.
func ParseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	neg := strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-")

	// Keep digits and separators only.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	clean := normalizeSeparators(b.String())
	if clean == "" {
		return decimal.Zero
	}
	if neg {
		clean = "-" + clean
	}

	val, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return val
}

// normalizeSeparators turns a digit string with ',' and '.' into one with at
// most a single '.' decimal point. The right-most separator is the decimal
// point when both appear; a lone ',' is a decimal point unless it groups
// exactly three trailing digits more than once.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}

// ParseInt reads a whole number; blank or unreadable input is zero.
func ParseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
