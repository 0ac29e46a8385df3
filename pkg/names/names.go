// Package names turns guest names from different exports into comparable
// forms. The hotel system writes "Last, First, HONORIFIC" while the
// government feeds write "First Last", both with inconsistent casing and
// Turkish letters, so matching goes through a canonical form rather than
// string equality.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// honorific matches a trailing BY/BYN/BAY/BAYAN title on an upper-cased
	// name. A separator must precede it so surnames ending in "BY" survive.
	honorific = regexp.MustCompile(`[,\s]\s*(BYN|BY|BAYAN|BAY)$`)

	// honorificAnyCase is honorific for display formatting, where the input
	// has not been upper-cased.
	honorificAnyCase = regexp.MustCompile(`(?i)[,\s]\s*(BYN|BY|BAYAN|BAY)$`)

	whitespace = regexp.MustCompile(`\s+`)
)

// Canonicalize reduces a name to its comparison form: Turkish-aware upper
// case, honorific stripped, commas/periods/slashes/whitespace removed and
// diacritics folded.
func Canonicalize(raw string) string {
	s := strings.TrimSpace(upper(raw))
	s = honorific.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ',' || r == '.' || r == '/':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, s)
	return fold(s)
}

// StripHonorific removes a trailing honorific in any case.
func StripHonorific(raw string) string {
	return strings.TrimSpace(honorificAnyCase.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// FormatForDisplay turns "Last, First, HONORIFIC" into "First Last". A name
// without a comma is returned trimmed and otherwise unchanged.
func FormatForDisplay(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, ",") {
		return trimmed
	}
	last, first := splitLastFirst(StripHonorific(trimmed))
	if first == "" {
		return last
	}
	return first + " " + last
}

// SameName reports whether two free-text names refer to the same person,
// ignoring case, spacing, punctuation and diacritics.
func SameName(a, b string) bool {
	ca, cb := Canonicalize(a), Canonicalize(b)
	return ca != "" && ca == cb
}

// splitLastFirst splits "Last, First[, ...]" into its two leading parts.
func splitLastFirst(s string) (last, first string) {
	parts := strings.Split(s, ",")
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return "", ""
	case 1:
		return kept[0], ""
	default:
		return kept[0], kept[1]
	}
}

// upper applies Turkish case mapping so i/İ and ı/I pair correctly. A Caser
// is stateful, hence one per call.
func upper(s string) string {
	return cases.Upper(language.Turkish).String(s)
}

// fold strips combining marks after canonical decomposition, so "Ş" and "S"
// compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
