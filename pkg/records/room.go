package records

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// NormalizeRoom returns the comparison form of a room number: whitespace
// removed and upper-cased. Leading zeros are kept.
func NormalizeRoom(room string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, room))
}

// SameRoom reports whether two room numbers are the same room.
func SameRoom(a, b string) bool {
	return NormalizeRoom(a) == NormalizeRoom(b)
}

// CompareRooms orders room numbers: numeric rooms by value and before any
// non-numeric room, non-numeric rooms lexically. Equal numeric values fall
// back to the normalized strings so "012" and "12" still order stably.
func CompareRooms(a, b string) int {
	na, nb := NormalizeRoom(a), NormalizeRoom(b)
	ia, errA := strconv.Atoi(na)
	ib, errB := strconv.Atoi(nb)
	switch {
	case errA == nil && errB == nil:
		if ia != ib {
			if ia < ib {
				return -1
			}
			return 1
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(na, nb)
}

// SortRooms sorts room numbers in place with CompareRooms.
func SortRooms(rooms []string) {
	sort.SliceStable(rooms, func(i, j int) bool {
		return CompareRooms(rooms[i], rooms[j]) < 0
	})
}
