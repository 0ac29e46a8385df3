package validate

import (
	"regexp"
	"strings"

	"github.com/agentstation/nightaudit/pkg/names"
	"github.com/agentstation/nightaudit/pkg/records"
)

// commentNameSeparator splits the guest list staff type after the routing
// marker: "2 Ali Veli, Ayse Kaya ve John Doe". Later comment segments are
// split off as well.
var commentNameSeparator = regexp.MustCompile(`, | ve |\s*\|\|\s*`)

// RoutingComments checks that a room receiving charges from other rooms
// names their guests in its comment. For every routed pair (self-routes
// ignored) the target room must exist in the in-house list, have a comment
// starting with the routing marker, and list every primary guest of the
// source room.
func RoutingComments(inhouse []records.GuestRecord, routing []records.RoutingEntry, rules Rules) []records.Finding {
	rules = rules.withDefaults()

	byRoom := make(map[string][]records.GuestRecord)
	for _, g := range inhouse {
		room := records.NormalizeRoom(g.RoomNo)
		byRoom[room] = append(byRoom[room], g)
	}

	type pair struct{ source, target string }
	seen := make(map[pair]bool)

	var out []records.Finding
	for _, entry := range routing {
		source := records.NormalizeRoom(entry.RoomNo)
		for _, tx := range entry.Outgoing() {
			target := records.NormalizeRoom(tx.CounterpartyRoom)
			if target == "" || target == source {
				continue
			}
			p := pair{source, target}
			if seen[p] {
				continue
			}
			seen[p] = true

			expected := occupantNames(byRoom[source])
			if len(expected) == 0 {
				continue
			}
			if f, ok := checkRoutingComment(source, target, expected, byRoom[target], rules); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

func checkRoutingComment(source, target string, expected []string, targetRecords []records.GuestRecord, rules Rules) (records.Finding, bool) {
	if len(targetRecords) == 0 {
		return records.NewFinding(records.RoutingCommentMismatch, target,
			"Room %s is routed to room %s, which is not in the in-house list", source, target).
			With("source_room", source), true
	}

	comment, ok := routingComment(targetRecords, rules)
	if !ok {
		return records.NewFinding(records.RoutingCommentMismatch, target,
			"Room %s pays for room %s but its comment does not start with %q",
			target, source, rules.routingPrefix()).
			With("source_room", source), true
	}

	found := CommentNames(comment, rules)
	var missing []string
	for _, name := range expected {
		if !containsName(found, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return records.Finding{}, false
	}
	return records.NewFinding(records.RoutingCommentMismatch, target,
		"Room %s comment is missing guests of room %s: %s",
		target, source, strings.Join(missing, ", ")).
		With("source_room", source).
		With("expected", strings.Join(expected, ", ")).
		With("found", strings.Join(found, ", ")), true
}

// routingComment returns the first comment of the room that starts with
// the routing marker. Segments are joined first, so a marker in a later
// segment does not count.
func routingComment(recs []records.GuestRecord, rules Rules) (string, bool) {
	for _, g := range recs {
		if c := commentText(g); strings.HasPrefix(c, rules.routingPrefix()) {
			return c, true
		}
	}
	return "", false
}

// CommentNames extracts the guest names from a routing comment.
func CommentNames(comment string, rules Rules) []string {
	rules = rules.withDefaults()
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), strings.TrimSpace(rules.RoutingMarker)))
	var out []string
	for _, name := range commentNameSeparator.Split(body, -1) {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// occupantNames returns the primary guests of a room in "First Last" form.
func occupantNames(recs []records.GuestRecord) []string {
	var out []string
	for _, g := range recs {
		if name := names.FormatForDisplay(g.FullName()); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func containsName(list []string, name string) bool {
	for _, candidate := range list {
		if names.SameName(candidate, name) {
			return true
		}
	}
	return false
}

// commentText returns the full comment of a record.
func commentText(g records.GuestRecord) string {
	if c := strings.TrimSpace(g.Comment); c != "" {
		return c
	}
	return strings.TrimSpace(strings.Join(g.CommentSegments, records.CommentSeparator))
}
