package records

import "github.com/shopspring/decimal"

// Direction of a routing transaction.
type Direction string

// Routing directions.
const (
	RoutedTo   Direction = "to"
	RoutedFrom Direction = "from"
)

// RoutingTransaction is one parsed "Routed to ..." / "Routed from ..." line.
type RoutingTransaction struct {
	Direction Direction `json:"direction" yaml:"direction"`

	// CounterpartyRoomAndName is the text between the direction marker and
	// the board type, e.g. "0412 Yilmaz, Ali".
	CounterpartyRoomAndName string `json:"counterparty_room_and_name" yaml:"counterparty_room_and_name"`
	CounterpartyRoom        string `json:"counterparty_room,omitempty" yaml:"counterparty_room,omitempty"`
	CounterpartyName        string `json:"counterparty_name,omitempty" yaml:"counterparty_name,omitempty"`

	BoardType     string `json:"board_type,omitempty" yaml:"board_type,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty" yaml:"payment_method,omitempty"`
	FolioWindow   int    `json:"folio_window,omitempty" yaml:"folio_window,omitempty"`
	Raw           string `json:"raw" yaml:"raw"`
}

// RoutingEntry is one room of the routing log.
type RoutingEntry struct {
	RoomNo       string               `json:"room_no" yaml:"room_no"`
	Name         string               `json:"name,omitempty" yaml:"name,omitempty"`
	Status       string               `json:"status,omitempty" yaml:"status,omitempty"`
	Transactions []RoutingTransaction `json:"transactions" yaml:"transactions"`
}

// Outgoing returns the "to" transactions in export order.
func (r RoutingEntry) Outgoing() []RoutingTransaction {
	return r.byDirection(RoutedTo)
}

// Incoming returns the "from" transactions in export order.
func (r RoutingEntry) Incoming() []RoutingTransaction {
	return r.byDirection(RoutedFrom)
}

func (r RoutingEntry) byDirection(d Direction) []RoutingTransaction {
	var out []RoutingTransaction
	for _, tx := range r.Transactions {
		if tx.Direction == d {
			out = append(out, tx)
		}
	}
	return out
}

// WindowCount is the number of parallel folio windows a room can route into.
const WindowCount = 4

// CashringEntry is one room of the cashier balance-by-window report.
type CashringEntry struct {
	RoomNo        string                       `json:"room_no" yaml:"room_no"`
	Balance       decimal.Decimal              `json:"balance" yaml:"balance"`
	Windows       [WindowCount]decimal.Decimal `json:"windows" yaml:"windows"`
	AccRate       decimal.Decimal              `json:"acc_rate" yaml:"acc_rate"`
	PaymentMethod string                       `json:"payment_method,omitempty" yaml:"payment_method,omitempty"`
	Variance      decimal.Decimal              `json:"variance" yaml:"variance"`
}

// Window returns the balance of folio window n (1-based). Out of range
// windows are zero.
func (c CashringEntry) Window(n int) decimal.Decimal {
	if n < 1 || n > WindowCount {
		return decimal.Zero
	}
	return c.Windows[n-1]
}
