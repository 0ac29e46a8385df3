package names

import "strings"

// Key holds the two canonical orderings of one person's name. Two keys
// refer to the same person when any of their forms coincide.
type Key struct {
	Natural string // first + last
	Swapped string // last + first
}

// KeyFromParts builds a key from separate first and last names.
func KeyFromParts(first, last string) Key {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	return Key{
		Natural: Canonicalize(first + " " + last),
		Swapped: Canonicalize(last + " " + first),
	}
}

// KeyFromRaw builds a key from a single name string. "Last, First" input is
// split on the comma; free text is split before its final word.
func KeyFromRaw(raw string) Key {
	s := StripHonorific(raw)
	if strings.Contains(s, ",") {
		last, first := splitLastFirst(s)
		return KeyFromParts(first, last)
	}
	words := strings.Fields(s)
	if len(words) < 2 {
		c := Canonicalize(s)
		return Key{Natural: c, Swapped: c}
	}
	lastWord := words[len(words)-1]
	return Key{
		Natural: Canonicalize(s),
		Swapped: Canonicalize(lastWord + " " + strings.Join(words[:len(words)-1], " ")),
	}
}

// IsZero reports whether the key carries no name at all.
func (k Key) IsZero() bool {
	return k.Natural == "" && k.Swapped == ""
}

// Matches reports whether k and other name the same person in either order.
func (k Key) Matches(other Key) bool {
	if k.IsZero() || other.IsZero() {
		return false
	}
	for _, a := range k.forms() {
		for _, b := range other.forms() {
			if a != "" && a == b {
				return true
			}
		}
	}
	return false
}

// Sort returns the form used to order entries deterministically.
func (k Key) Sort() string {
	return k.Natural
}

func (k Key) forms() [2]string {
	return [2]string{k.Natural, k.Swapped}
}
