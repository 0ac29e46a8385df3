// Package roomtable joins the in-house roster with the routing log and the
// cashier report into one row per in-house guest record.
package roomtable

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agentstation/nightaudit/pkg/names"
	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/validate"
)

// companyCodeLength is the internal account code the hotel system prefixes
// to company names.
const companyCodeLength = 3

// segmentSeparator joins the fields of one outgoing route.
const segmentSeparator = "|"

// WindowCell is one folio window of a room: its cashier balance and the
// room and guest its charges are routed to.
type WindowCell struct {
	Balance     decimal.Decimal `json:"balance" yaml:"balance"`
	RoutingName string          `json:"routing_name,omitempty" yaml:"routing_name,omitempty"`
}

// Row is one display row.
type Row struct {
	// ID is synthetic; rows are identified by room and name.
	ID string `json:"id" yaml:"id"`

	RoomNo        string          `json:"room_no" yaml:"room_no"`
	Name          string          `json:"name" yaml:"name"`
	DisplayName   string          `json:"display_name" yaml:"display_name"`
	Adults        int             `json:"adults" yaml:"adults"`
	Children      int             `json:"children" yaml:"children"`
	Accompanying  string          `json:"accompanying,omitempty" yaml:"accompanying,omitempty"`
	RateCode      string          `json:"rate_code,omitempty" yaml:"rate_code,omitempty"`
	Company       string          `json:"company,omitempty" yaml:"company,omitempty"`
	Rate          decimal.Decimal `json:"rate" yaml:"rate"`
	Currency      string          `json:"currency,omitempty" yaml:"currency,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty" yaml:"payment_method,omitempty"`
	Comment       string          `json:"comment,omitempty" yaml:"comment,omitempty"`
	ArrivalDate   string          `json:"arrival_date,omitempty" yaml:"arrival_date,omitempty"`
	DepartureDate string          `json:"departure_date,omitempty" yaml:"departure_date,omitempty"`
	Balance       decimal.Decimal `json:"balance" yaml:"balance"`

	// RoutedTo lists outgoing routes as "room|name|board|paymentMethod"
	// segments joined by " || ".
	RoutedTo string `json:"routed_to,omitempty" yaml:"routed_to,omitempty"`

	// RoutedFrom lists the rooms routing into this one, comma separated.
	RoutedFrom string `json:"routed_from,omitempty" yaml:"routed_from,omitempty"`

	Windows [records.WindowCount]WindowCell `json:"windows" yaml:"windows"`
	AccRate decimal.Decimal                 `json:"acc_rate" yaml:"acc_rate"`

	// Cashier report values; zero when the room is not in the report.
	CashierBalance       decimal.Decimal `json:"cashier_balance" yaml:"cashier_balance"`
	CashierPaymentMethod string          `json:"cashier_payment_method,omitempty" yaml:"cashier_payment_method,omitempty"`
	Variance             decimal.Decimal `json:"variance" yaml:"variance"`

	Highlights validate.Highlights `json:"highlights" yaml:"highlights"`
}

// Window returns folio window n (1-based); out of range windows are empty.
func (r Row) Window(n int) WindowCell {
	if n < 1 || n > records.WindowCount {
		return WindowCell{}
	}
	return r.Windows[n-1]
}

// Assemble builds one row per in-house record in input order. Rooms missing
// from the routing log or the cashier report get empty values.
func Assemble(inhouse []records.GuestRecord, routing []records.RoutingEntry, cashring []records.CashringEntry, rules validate.Rules) []Row {
	routes := make(map[string][]records.RoutingTransaction)
	for _, e := range routing {
		room := records.NormalizeRoom(e.RoomNo)
		routes[room] = append(routes[room], e.Transactions...)
	}

	balances := make(map[string]records.CashringEntry, len(cashring))
	for _, c := range cashring {
		room := records.NormalizeRoom(c.RoomNo)
		if _, dup := balances[room]; !dup {
			balances[room] = c
		}
	}

	rows := make([]Row, 0, len(inhouse))
	for _, g := range inhouse {
		room := records.NormalizeRoom(g.RoomNo)
		txs := routes[room]
		cash := balances[room]

		row := Row{
			ID:            uuid.NewString(),
			RoomNo:        g.RoomNo,
			Name:          g.FullName(),
			DisplayName:   names.FormatForDisplay(g.FullName()),
			Adults:        g.Adults,
			Children:      g.Children,
			Accompanying:  g.AccompanyingNames,
			RateCode:      g.RateCode,
			Company:       StripCompanyCode(g.CompanyName),
			Rate:          g.Rate,
			Currency:      g.CurrencyCode,
			PaymentMethod: g.PaymentMethod,
			Comment:       joinComment(g),
			ArrivalDate:   g.ArrivalDate,
			DepartureDate: g.DepartureDate,
			Balance:       g.Balance,
			RoutedTo:      outgoing(txs),
			RoutedFrom:    incoming(txs),
			AccRate:       cash.AccRate,

			CashierBalance:       cash.Balance,
			CashierPaymentMethod: cash.PaymentMethod,
			Variance:             cash.Variance,

			Highlights: validate.RateCheck(g, rules),
		}
		for n := 1; n <= records.WindowCount; n++ {
			row.Windows[n-1] = WindowCell{
				Balance:     cash.Window(n),
				RoutingName: windowTarget(txs, n),
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// StripCompanyCode removes the internal account code from a company name.
// Names no longer than the code are kept.
func StripCompanyCode(company string) string {
	r := []rune(strings.TrimSpace(company))
	if len(r) <= companyCodeLength {
		return string(r)
	}
	return strings.TrimSpace(string(r[companyCodeLength:]))
}

func joinComment(g records.GuestRecord) string {
	if len(g.CommentSegments) > 0 {
		return strings.Join(g.CommentSegments, records.CommentSeparator)
	}
	return g.Comment
}

// outgoing renders "to" routes as deduplicated segments in first-seen order.
func outgoing(txs []records.RoutingTransaction) string {
	var d dedup
	for _, tx := range txs {
		if tx.Direction != records.RoutedTo {
			continue
		}
		d.add(strings.Join([]string{
			tx.CounterpartyRoom,
			tx.CounterpartyName,
			tx.BoardType,
			tx.PaymentMethod,
		}, segmentSeparator))
	}
	return strings.Join(d.items, records.CommentSeparator)
}

// incoming renders "from" routes as a deduplicated comma list.
func incoming(txs []records.RoutingTransaction) string {
	var d dedup
	for _, tx := range txs {
		if tx.Direction == records.RoutedFrom {
			d.add(tx.CounterpartyRoomAndName)
		}
	}
	return strings.Join(d.items, ", ")
}

// windowTarget names the rooms that folio window n routes to.
func windowTarget(txs []records.RoutingTransaction, n int) string {
	var d dedup
	for _, tx := range txs {
		if tx.Direction == records.RoutedTo && tx.FolioWindow == n {
			d.add(tx.CounterpartyRoomAndName)
		}
	}
	return strings.Join(d.items, ", ")
}

type dedup struct {
	seen  map[string]bool
	items []string
}

func (d *dedup) add(s string) {
	s = strings.TrimSpace(s)
	if s == "" || d.seen[s] {
		return
	}
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	d.seen[s] = true
	d.items = append(d.items, s)
}

// Columns returns the header of the flat table form returned by Cells.
func Columns() []string {
	cols := []string{
		"room", "name", "rate_code", "company", "rate", "currency", "ca_cl",
		"comment", "arrival", "departure", "balance", "routed_to", "routed_from",
	}
	for n := 1; n <= records.WindowCount; n++ {
		cols = append(cols, "window_"+strconv.Itoa(n))
	}
	return append(cols, "acc_rate", "cashier_balance", "variance")
}

// Cells returns the row in Columns order. Window cells read
// "balance -> routing name" when the window is routed.
func (r Row) Cells() []string {
	cells := []string{
		r.RoomNo, r.DisplayName, r.RateCode, r.Company, r.Rate.StringFixed(2), r.Currency,
		r.PaymentMethod, r.Comment, r.ArrivalDate, r.DepartureDate, r.Balance.StringFixed(2),
		r.RoutedTo, r.RoutedFrom,
	}
	for _, w := range r.Windows {
		cell := w.Balance.StringFixed(2)
		if w.RoutingName != "" {
			cell += " -> " + w.RoutingName
		}
		cells = append(cells, cell)
	}
	return append(cells, r.AccRate.StringFixed(2), r.CashierBalance.StringFixed(2), r.Variance.StringFixed(2))
}
