package sources

import (
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/records"
)

// Cashring reads the balance-by-window cashier report (P2009_BALANCEBYWINDOW).
type Cashring struct{}

// ID returns CashringID.
func (*Cashring) ID() ID { return CashringID }

type cashringDoc struct {
	XMLName xml.Name
	Rooms   []cashringRoom `xml:"LIST_G_ROOM>G_ROOM"`
}

type cashringRoom struct {
	Room     string `xml:"ROOM"`
	Balance  string `xml:"BALANCE"`
	Window1  string `xml:"WINDOW1"`
	Window2  string `xml:"WINDOW2"`
	Window3  string `xml:"WINDOW3"`
	Window4  string `xml:"WINDOW4"`
	AccRate  string `xml:"ACC_RATE"`
	PM       string `xml:"PM"`
	Variance string `xml:"VARIANCE"`
}

// Parse implements Source.
func (s *Cashring) Parse(ctx context.Context, r io.Reader) (Dataset, error) {
	var doc cashringDoc
	if err := decodeXML(ctx, r, &doc); err != nil {
		return nil, err
	}
	if err := checkRoot(s.ID(), doc.XMLName, "P2009_BALANCEBYWINDOW"); err != nil {
		return nil, err
	}
	if len(doc.Rooms) == 0 {
		return nil, errors.NewShapeError(s.ID().String(), "P2009_BALANCEBYWINDOW", "LIST_G_ROOM", "G_ROOM").
			WithReason("no rooms found")
	}

	entries := make([]records.CashringEntry, 0, len(doc.Rooms))
	for _, room := range doc.Rooms {
		entries = append(entries, records.CashringEntry{
			RoomNo:  trim(room.Room),
			Balance: ParseDecimal(room.Balance),
			Windows: [records.WindowCount]decimal.Decimal{
				ParseDecimal(room.Window1),
				ParseDecimal(room.Window2),
				ParseDecimal(room.Window3),
				ParseDecimal(room.Window4),
			},
			AccRate:       ParseDecimal(room.AccRate),
			PaymentMethod: strings.ToUpper(trim(room.PM)),
			Variance:      ParseDecimal(room.Variance),
		})
	}
	return CashringSet{Entries: entries}, nil
}
