package reconcile

import "github.com/agentstation/nightaudit/pkg/records"

// Entry is one matcher gap. SourceGuest is the unmatched guest;
// CounterpartGuest, when set, is an unmatched guest of the same room on the
// other side, usually the same person spelled differently.
type Entry struct {
	records.Finding
	SourceGuest      *records.GuestRef `json:"source_guest,omitempty" yaml:"source_guest,omitempty"`
	CounterpartGuest *records.GuestRef `json:"counterpart_guest,omitempty" yaml:"counterpart_guest,omitempty"`

	sortKey string
}

// Discrepancies is the matcher result keyed by room. The zero value is an
// empty result.
type Discrepancies struct {
	rooms  []string
	byRoom map[string][]Entry
}

// Rooms returns the rooms with at least one entry, numeric rooms first.
func (d Discrepancies) Rooms() []string {
	return append([]string(nil), d.rooms...)
}

// ForRoom returns the entries of a room ordered by canonical name.
func (d Discrepancies) ForRoom(room string) []Entry {
	return append([]Entry(nil), d.byRoom[records.NormalizeRoom(room)]...)
}

// Findings flattens all entries in room order.
func (d Discrepancies) Findings() []records.Finding {
	var out []records.Finding
	for _, room := range d.rooms {
		for _, e := range d.byRoom[room] {
			out = append(out, e.Finding)
		}
	}
	return out
}

// Len returns the number of rooms with discrepancies.
func (d Discrepancies) Len() int {
	return len(d.rooms)
}

// GuestCount returns the number of unmatched guests over all rooms.
func (d Discrepancies) GuestCount() int {
	n := 0
	for _, entries := range d.byRoom {
		n += len(entries)
	}
	return n
}

// Count returns the number of entries of type t.
func (d Discrepancies) Count(t records.FindingType) int {
	n := 0
	for _, entries := range d.byRoom {
		for _, e := range entries {
			if e.Type == t {
				n++
			}
		}
	}
	return n
}

// Empty reports whether every guest matched.
func (d Discrepancies) Empty() bool {
	return len(d.rooms) == 0
}
