package sources

import (
	"context"
	"encoding/xml"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/records"
)

// Routing reads the routing details report (ROUTING_DETAILS).
type Routing struct {
	// PseudoRoomFloor drops numeric rooms at or above this number. Zero
	// keeps every room.
	PseudoRoomFloor int
}

// ID returns RoutingID.
func (*Routing) ID() ID { return RoutingID }

type routingDoc struct {
	XMLName xml.Name
	Groups  []struct {
		Groups []struct {
			Rooms []routingRoom `xml:"LIST_G_ROOM_NO>G_ROOM_NO"`
		} `xml:"LIST_G_GROUP2_SORT>G_GROUP2_SORT"`
	} `xml:"LIST_G_GROUP1_SORT>G_GROUP1_SORT"`
}

type routingRoom struct {
	RoomNo   string       `xml:"ROOM_NO"`
	FullName string       `xml:"FULL_NAME"`
	Status   string       `xml:"SHORT_RESV_STATUS"`
	Routings []routingTrx `xml:"LIST_G_ROUTING>G_ROUTING"`
}

// routingTrx accepts payment method and window either as child elements or
// as attributes; report versions differ.
type routingTrx struct {
	Text          string `xml:"TRX_STRING"`
	PaymentMethod string `xml:"PAYMENT_METHOD"`
	PaymentAttr   string `xml:"PAYMENT_METHOD,attr"`
	Window        string `xml:"WINDOW"`
	WindowAttr    string `xml:"WINDOW,attr"`
}

// statusCheckedIn is the reservation status of an occupied room.
const statusCheckedIn = "CKIN"

// Parse implements Source.
func (s *Routing) Parse(ctx context.Context, r io.Reader) (Dataset, error) {
	var doc routingDoc
	if err := decodeXML(ctx, r, &doc); err != nil {
		return nil, err
	}
	if err := checkRoot(s.ID(), doc.XMLName, "ROUTING_DETAILS"); err != nil {
		return nil, err
	}

	var rooms []routingRoom
	for _, g1 := range doc.Groups {
		for _, g2 := range g1.Groups {
			rooms = append(rooms, g2.Rooms...)
		}
	}
	if len(rooms) == 0 {
		return nil, errors.NewShapeError(s.ID().String(),
			"ROUTING_DETAILS", "LIST_G_GROUP1_SORT", "G_GROUP1_SORT",
			"LIST_G_GROUP2_SORT", "G_GROUP2_SORT", "LIST_G_ROOM_NO", "G_ROOM_NO").
			WithReason("no rooms found")
	}
	return RoutingSet{Entries: s.normalize(rooms)}, nil
}

// normalize keeps checked-in guest rooms, parses their transactions and
// orders the result by room.
func (s *Routing) normalize(rooms []routingRoom) []records.RoutingEntry {
	var out []records.RoutingEntry
	for _, room := range rooms {
		roomNo := trim(room.RoomNo)
		if roomNo == "" || strings.ToUpper(trim(room.Status)) != statusCheckedIn {
			continue
		}
		if n, ok := leadingInt(roomNo); ok && s.PseudoRoomFloor > 0 && n >= s.PseudoRoomFloor {
			continue
		}

		entry := records.RoutingEntry{
			RoomNo: roomNo,
			Name:   trim(room.FullName),
			Status: statusCheckedIn,
		}
		for _, trx := range room.Routings {
			tx, ok := ParseTransaction(trx.Text)
			if !ok {
				continue
			}
			tx.PaymentMethod = strings.ToUpper(firstNonEmpty(trx.PaymentMethod, trx.PaymentAttr))
			tx.FolioWindow = ParseInt(firstNonEmpty(trx.Window, trx.WindowAttr))
			entry.Transactions = append(entry.Transactions, tx)
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return records.CompareRooms(out[i].RoomNo, out[j].RoomNo) < 0
	})
	return out
}

var (
	routedTo   = regexp.MustCompile(`(?i)^routed\s+to\s+(.*)$`)
	routedFrom = regexp.MustCompile(`(?i)^routed\s+from\s+(.*)$`)

	// counterpartyRoom matches a leading room number such as "0412" or "412A".
	counterpartyRoom = regexp.MustCompile(`^(\d[0-9A-Za-z]*)\s+(.*)$`)
)

// ParseTransaction parses "Routed to <room> <name>: <board>" and
// "Routed from <name>". Any other text is rejected.
func ParseTransaction(text string) (records.RoutingTransaction, bool) {
	raw := trim(text)
	tx := records.RoutingTransaction{Raw: raw}

	var rest string
	if m := routedTo.FindStringSubmatch(raw); m != nil {
		tx.Direction = records.RoutedTo
		rest = m[1]
	} else if m := routedFrom.FindStringSubmatch(raw); m != nil {
		tx.Direction = records.RoutedFrom
		rest = m[1]
	} else {
		return tx, false
	}

	if i := strings.LastIndex(rest, ":"); i >= 0 {
		tx.BoardType = trim(rest[i+1:])
		rest = rest[:i]
	}
	rest = trim(rest)
	tx.CounterpartyRoomAndName = rest

	if m := counterpartyRoom.FindStringSubmatch(rest); m != nil {
		tx.CounterpartyRoom = m[1]
		tx.CounterpartyName = trim(m[2])
	} else if isRoomToken(rest) {
		tx.CounterpartyRoom = rest
	} else {
		tx.CounterpartyName = rest
	}
	return tx, true
}

func isRoomToken(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9' && !strings.ContainsAny(s, " \t")
}

// leadingInt parses the leading digits of s, so "9001A" reads as 9001.
func leadingInt(s string) (int, bool) {
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	return n, digits > 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = trim(v); v != "" {
			return v
		}
	}
	return ""
}
