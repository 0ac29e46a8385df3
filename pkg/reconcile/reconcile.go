// Package reconcile matches the government registration feed against the
// in-house roster. Both directions are checked independently: a government
// guest with no in-house match yields KBS_MISSING_IN_OPERA, an in-house
// occupant with no government match yields OPERA_MISSING_IN_KBS. A guest
// registered under a different name in the same room therefore produces
// one discrepancy of each kind.
package reconcile

import (
	"sort"
	"strings"

	"github.com/agentstation/nightaudit/pkg/names"
	"github.com/agentstation/nightaudit/pkg/records"
)

// occupant is one named person of a room with its precomputed match key.
type occupant struct {
	room string // normalized
	key  names.Key
	ref  *records.GuestRef
}

// Match compares government records against in-house records room by room.
// Rooms are compared as normalized strings, names by canonical form in
// either order.
func Match(government, inhouse []records.GuestRecord) Discrepancies {
	gov := governmentOccupants(government)
	hotel := inhouseOccupants(inhouse)

	govByRoom := groupByRoom(gov)
	hotelByRoom := groupByRoom(hotel)

	b := newBuilder()

	for _, g := range gov {
		candidates := hotelByRoom[g.room]
		if anyMatch(g, candidates) {
			continue
		}
		f := records.NewFinding(records.KBSMissingInOpera, g.room,
			"Registered in KBS but not in the in-house list: %s", g.ref.Name)
		b.add(Entry{
			Finding:          f,
			SourceGuest:      g.ref,
			CounterpartGuest: firstUnmatched(candidates, govByRoom[g.room]),
			sortKey:          g.key.Sort(),
		})
	}

	for _, h := range hotel {
		candidates := govByRoom[h.room]
		if anyMatch(h, candidates) {
			continue
		}
		f := records.NewFinding(records.OperaMissingInKBS, h.room,
			"In the in-house list but not registered in KBS: %s", h.ref.Name)
		b.add(Entry{
			Finding:          f,
			SourceGuest:      h.ref,
			CounterpartGuest: firstUnmatched(candidates, hotelByRoom[h.room]),
			sortKey:          h.key.Sort(),
		})
	}

	return b.build()
}

func governmentOccupants(government []records.GuestRecord) []occupant {
	out := make([]occupant, 0, len(government))
	for _, g := range government {
		var key names.Key
		if g.FirstName != "" || g.LastName != "" {
			key = names.KeyFromParts(g.FirstName, g.LastName)
		} else {
			key = names.KeyFromRaw(g.Name)
		}
		ref := g.Ref()
		ref.RoomNo = strings.TrimSpace(g.RoomNo)
		// A row without a usable name still counts; its zero key never matches.
		if key.IsZero() {
			ref.Name = unnamed(g)
		}
		out = append(out, occupant{room: records.NormalizeRoom(g.RoomNo), key: key, ref: ref})
	}
	return out
}

// unnamed is the display name of a government record without a name.
func unnamed(g records.GuestRecord) string {
	if doc := strings.TrimSpace(g.DocumentNumber); doc != "" {
		return "(no name, document " + doc + ")"
	}
	return "(no name)"
}

// inhouseOccupants flattens every in-house room into its primary guest plus
// one entry per accompanying name.
func inhouseOccupants(inhouse []records.GuestRecord) []occupant {
	var out []occupant
	for _, g := range inhouse {
		room := records.NormalizeRoom(g.RoomNo)
		raws := append([]string{g.FullName()}, g.Accompanying()...)
		for _, raw := range raws {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			out = append(out, occupant{
				room: room,
				key:  names.KeyFromRaw(raw),
				ref:  inhouseRef(g, raw),
			})
		}
	}
	return out
}

// inhouseRef describes one in-house occupant in display form.
func inhouseRef(g records.GuestRecord, raw string) *records.GuestRef {
	ref := &records.GuestRef{
		Source: g.Source,
		RoomNo: strings.TrimSpace(g.RoomNo),
		Name:   names.FormatForDisplay(raw),
	}
	if ref.Source == "" {
		ref.Source = records.SourceInhouse
	}
	if stripped := names.StripHonorific(raw); strings.Contains(stripped, ",") {
		parts := strings.SplitN(stripped, ",", 2)
		ref.LastName = strings.TrimSpace(parts[0])
		ref.FirstName = strings.TrimSpace(parts[1])
	}
	return ref
}

func groupByRoom(occupants []occupant) map[string][]occupant {
	out := make(map[string][]occupant)
	for _, o := range occupants {
		out[o.room] = append(out[o.room], o)
	}
	return out
}

func anyMatch(o occupant, candidates []occupant) bool {
	for _, c := range candidates {
		if o.key.Matches(c.key) {
			return true
		}
	}
	return false
}

// firstUnmatched returns the first candidate that matches nobody on the
// other side, the likely misspelling of the same guest.
func firstUnmatched(candidates, others []occupant) *records.GuestRef {
	for _, c := range candidates {
		if !anyMatch(c, others) {
			return c.ref
		}
	}
	return nil
}

type builder struct {
	byRoom map[string][]Entry
}

func newBuilder() *builder {
	return &builder{byRoom: make(map[string][]Entry)}
}

func (b *builder) add(e Entry) {
	b.byRoom[e.RoomNo] = append(b.byRoom[e.RoomNo], e)
}

func (b *builder) build() Discrepancies {
	rooms := make([]string, 0, len(b.byRoom))
	for room, entries := range b.byRoom {
		rooms = append(rooms, room)
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].sortKey != entries[j].sortKey {
				return entries[i].sortKey < entries[j].sortKey
			}
			return entries[i].Type < entries[j].Type
		})
	}
	records.SortRooms(rooms)
	return Discrepancies{rooms: rooms, byRoom: b.byRoom}
}
