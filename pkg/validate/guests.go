package validate

import (
	"strconv"

	"github.com/agentstation/nightaudit/pkg/names"
	"github.com/agentstation/nightaudit/pkg/records"
)

// GuestCount flags in-house rooms whose declared head count (adults plus
// children) differs from the named occupants (primary plus accompanying).
func GuestCount(inhouse []records.GuestRecord) []records.Finding {
	var out []records.Finding
	for _, g := range inhouse {
		declared, named := g.Declared(), g.Named()
		if declared == named {
			continue
		}
		f := records.NewFinding(records.GuestCountMismatch, g.RoomNo,
			"Guest count mismatch: %d declared (A:%d C:%d) but %d named",
			declared, g.Adults, g.Children, named).
			With("declared", strconv.Itoa(declared)).
			With("named", strconv.Itoa(named))
		out = append(out, f)
	}
	return out
}

// BirthDates flags police report guests without a birth date.
func BirthDates(police []records.GuestRecord) []records.Finding {
	var out []records.Finding
	for _, g := range police {
		if blank(g.BirthDate) {
			out = append(out, records.NewFinding(records.MissingBirthDate, g.RoomNo,
				"Missing birth date: %s", displayName(g)))
		}
	}
	return out
}

// PoliceCoverage flags in-house rooms that have no guest in the police
// report. One finding per room.
func PoliceCoverage(inhouse, police []records.GuestRecord) []records.Finding {
	reported := make(map[string]bool, len(police))
	for _, g := range police {
		reported[records.NormalizeRoom(g.RoomNo)] = true
	}

	seen := make(map[string]bool)
	var out []records.Finding
	for _, g := range inhouse {
		room := records.NormalizeRoom(g.RoomNo)
		if room == "" || reported[room] || seen[room] {
			continue
		}
		seen[room] = true
		out = append(out, records.NewFinding(records.MissingPoliceData, g.RoomNo,
			"No police report record for room %s (%s)", g.RoomNo, names.FormatForDisplay(g.FullName())))
	}
	return out
}

func displayName(g records.GuestRecord) string {
	if name := g.FullName(); name != "" {
		return names.FormatForDisplay(name)
	}
	return "room " + g.RoomNo
}
