package sources

import (
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/records"
)

// Inhouse reads the in-house guest list report (GIBYROOM).
type Inhouse struct{}

// ID returns InhouseID.
func (*Inhouse) ID() ID { return InhouseID }

type inhouseDoc struct {
	XMLName xml.Name
	Rooms   []inhouseRoom `xml:"LIST_G_ROOM>G_ROOM"`
}

type inhouseRoom struct {
	Room          string           `xml:"ROOM"`
	FullName      string           `xml:"FULL_NAME"`
	CompanyName   string           `xml:"COMPANY_NAME"`
	RateCode      string           `xml:"RATE_CODE"`
	ShareAmount   string           `xml:"SHARE_AMOUNT"`
	Accompanying  string           `xml:"ACCOMPANYING_NAMES"`
	PaymentMethod string           `xml:"PAYMENT_METHOD"`
	CurrencyCode  string           `xml:"CURRENCY_CODE"`
	Adults        string           `xml:"ADULTS"`
	Children      string           `xml:"CHILDREN"`
	Balance       string           `xml:"BALANCE"`
	Arrival       string           `xml:"ARRIVAL"`
	Departure     string           `xml:"DEPARTURE"`
	Comments      []inhouseComment `xml:"LIST_G_COMMENT_RESV_NAME_ID>G_COMMENT_RESV_NAME_ID"`
}

type inhouseComment struct {
	Type    string `xml:"RES_COMMENT_TYPE"`
	Comment string `xml:"RES_COMMENT"`
}

// Parse implements Source.
func (s *Inhouse) Parse(ctx context.Context, r io.Reader) (Dataset, error) {
	var doc inhouseDoc
	if err := decodeXML(ctx, r, &doc); err != nil {
		return nil, err
	}
	if err := checkRoot(s.ID(), doc.XMLName, "GIBYROOM"); err != nil {
		return nil, err
	}
	if len(doc.Rooms) == 0 {
		return nil, errors.NewShapeError(s.ID().String(), "GIBYROOM", "LIST_G_ROOM", "G_ROOM").
			WithReason("no rooms found")
	}
	return InhouseSet{Records: normalizeInhouse(doc.Rooms)}, nil
}

// normalizeInhouse maps raw in-house rooms onto guest records in export order.
func normalizeInhouse(rooms []inhouseRoom) []records.GuestRecord {
	out := make([]records.GuestRecord, 0, len(rooms))
	for _, room := range rooms {
		last, first := splitInhouseName(room.FullName)
		segments := commentSegments(room.Comments)
		out = append(out, records.GuestRecord{
			Source:            records.SourceInhouse,
			RoomNo:            trim(room.Room),
			Name:              trim(room.FullName),
			FirstName:         first,
			LastName:          last,
			AccompanyingNames: trim(room.Accompanying),
			Adults:            ParseInt(room.Adults),
			Children:          ParseInt(room.Children),
			CompanyName:       trim(room.CompanyName),
			RateCode:          trim(room.RateCode),
			Rate:              ParseDecimal(room.ShareAmount),
			CurrencyCode:      trim(room.CurrencyCode),
			PaymentMethod:     strings.ToUpper(trim(room.PaymentMethod)),
			Balance:           ParseDecimal(room.Balance),
			ArrivalDate:       trim(room.Arrival),
			DepartureDate:     trim(room.Departure),
			Comment:           strings.Join(segments, records.CommentSeparator),
			CommentSegments:   segments,
		})
	}
	return out
}

// commentSegments keeps every non-empty comment in export order.
func commentSegments(comments []inhouseComment) []string {
	var out []string
	for _, c := range comments {
		if text := trim(c.Comment); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// splitInhouseName splits "Last, First, HONORIFIC". The honorific, when
// present, is dropped.
func splitInhouseName(full string) (last, first string) {
	parts := strings.Split(full, ",")
	if len(parts) > 0 {
		last = trim(parts[0])
	}
	if len(parts) > 1 {
		first = trim(parts[1])
	}
	return last, first
}
