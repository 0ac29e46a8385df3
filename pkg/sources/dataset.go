package sources

import "github.com/agentstation/nightaudit/pkg/records"

// Dataset is the normalized content of one export. It is one of
// InhouseSet, KBSSet, PoliceSet, RoutingSet or CashringSet.
type Dataset interface {
	// Source returns the ID of the export that produced the set
	Source() ID

	// Len returns the number of records
	Len() int

	dataset()
}

// InhouseSet is the in-house roster, one record per room.
type InhouseSet struct {
	Records []records.GuestRecord
}

// KBSSet is the government registration spreadsheet, one record per guest.
type KBSSet struct {
	Records []records.GuestRecord
}

// PoliceSet is the police report with identity documents, checked-in stays only.
type PoliceSet struct {
	Records []records.GuestRecord
}

// RoutingSet is the routing log, checked-in guest rooms only.
type RoutingSet struct {
	Entries []records.RoutingEntry
}

// CashringSet is the balance-by-window cashier report.
type CashringSet struct {
	Entries []records.CashringEntry
}

func (InhouseSet) Source() ID  { return InhouseID }
func (KBSSet) Source() ID      { return KBSID }
func (PoliceSet) Source() ID   { return PoliceID }
func (RoutingSet) Source() ID  { return RoutingID }
func (CashringSet) Source() ID { return CashringID }

func (s InhouseSet) Len() int  { return len(s.Records) }
func (s KBSSet) Len() int      { return len(s.Records) }
func (s PoliceSet) Len() int   { return len(s.Records) }
func (s RoutingSet) Len() int  { return len(s.Entries) }
func (s CashringSet) Len() int { return len(s.Entries) }

func (InhouseSet) dataset()  {}
func (KBSSet) dataset()      {}
func (PoliceSet) dataset()   {}
func (RoutingSet) dataset()  {}
func (CashringSet) dataset() {}
