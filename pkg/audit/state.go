// Package audit keeps the night audit state and recomputes it when an
// export is loaded. Every update returns a new *State; a State handed out
// earlier is never modified, so readers always see a complete, internally
// consistent snapshot.
package audit

import (
	"maps"
	"slices"

	"github.com/agentstation/nightaudit/pkg/reconcile"
	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/roomtable"
	"github.com/agentstation/nightaudit/pkg/sources"
)

// Status of a check.
type Status string

// Check statuses.
const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Check is the progress of one named check. Findings are data, so a check
// that found problems is still completed; error means an input failed to
// load.
type Check struct {
	ID      CheckID  `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Status  Status   `json:"status" yaml:"status"`
	Flagged int      `json:"flagged" yaml:"flagged"`
	Inputs  []string `json:"inputs" yaml:"inputs"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Level of a notice.
type Level string

// Notice levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a user-facing message. Identical texts are posted once.
type Notice struct {
	Level  Level  `json:"level" yaml:"level"`
	Text   string `json:"text" yaml:"text"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// State is an immutable audit snapshot.
type State struct {
	version       int
	datasets      map[sources.ID]sources.Dataset
	table         []roomtable.Row
	discrepancies reconcile.Discrepancies
	findings      map[CheckID][]records.Finding
	checks        map[CheckID]Check
	notices       []Notice
	posted        map[string]bool
}

// NewState returns the empty state: no data, every check pending.
func NewState() *State {
	s := &State{
		datasets: make(map[sources.ID]sources.Dataset),
		findings: make(map[CheckID][]records.Finding),
		checks:   make(map[CheckID]Check),
		posted:   make(map[string]bool),
	}
	for _, def := range definitions {
		s.checks[def.id] = Check{ID: def.id, Title: def.title, Status: StatusPending, Inputs: def.inputNames()}
	}
	return s
}

// clone copies every container so the copy can be changed freely.
func (s *State) clone() *State {
	next := &State{
		version:       s.version + 1,
		datasets:      maps.Clone(s.datasets),
		table:         s.table,
		discrepancies: s.discrepancies,
		findings:      maps.Clone(s.findings),
		checks:        maps.Clone(s.checks),
		notices:       slices.Clone(s.notices),
		posted:        maps.Clone(s.posted),
	}
	return next
}

// post appends a notice unless the same text was posted before.
func (s *State) post(level Level, source, text string) bool {
	if s.posted[text] {
		return false
	}
	s.posted[text] = true
	s.notices = append(s.notices, Notice{Level: level, Text: text, Source: source})
	return true
}

// Version counts the updates that produced this snapshot.
func (s *State) Version() int {
	return s.version
}

// Loaded reports whether a dataset is present for id.
func (s *State) Loaded(id sources.ID) bool {
	_, ok := s.datasets[id]
	return ok
}

// Dataset returns the dataset loaded for id.
func (s *State) Dataset(id sources.ID) (sources.Dataset, bool) {
	ds, ok := s.datasets[id]
	return ds, ok
}

// Inhouse returns the in-house records, nil when not loaded.
func (s *State) Inhouse() []records.GuestRecord {
	if ds, ok := s.datasets[sources.InhouseID].(sources.InhouseSet); ok {
		return ds.Records
	}
	return nil
}

// KBS returns the government registration records.
func (s *State) KBS() []records.GuestRecord {
	if ds, ok := s.datasets[sources.KBSID].(sources.KBSSet); ok {
		return ds.Records
	}
	return nil
}

// Police returns the police report records.
func (s *State) Police() []records.GuestRecord {
	if ds, ok := s.datasets[sources.PoliceID].(sources.PoliceSet); ok {
		return ds.Records
	}
	return nil
}

// Routing returns the routing entries.
func (s *State) Routing() []records.RoutingEntry {
	if ds, ok := s.datasets[sources.RoutingID].(sources.RoutingSet); ok {
		return ds.Entries
	}
	return nil
}

// Cashring returns the cashier report entries.
func (s *State) Cashring() []records.CashringEntry {
	if ds, ok := s.datasets[sources.CashringID].(sources.CashringSet); ok {
		return ds.Entries
	}
	return nil
}

// Table returns the unified room table.
func (s *State) Table() []roomtable.Row {
	return slices.Clone(s.table)
}

// Discrepancies returns the KBS/in-house matcher result.
func (s *State) Discrepancies() reconcile.Discrepancies {
	return s.discrepancies
}

// Findings returns the findings of one check.
func (s *State) Findings(id CheckID) []records.Finding {
	return slices.Clone(s.findings[id])
}

// AllFindings returns every finding of every check ordered by room.
func (s *State) AllFindings() []records.Finding {
	var out []records.Finding
	for _, def := range definitions {
		out = append(out, s.findings[def.id]...)
	}
	records.SortFindings(out)
	return out
}

// Check returns the status of one check.
func (s *State) Check(id CheckID) (Check, bool) {
	c, ok := s.checks[id]
	return c, ok
}

// Checks returns every check in declaration order.
func (s *State) Checks() []Check {
	out := make([]Check, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, s.checks[def.id])
	}
	return out
}

// Notices returns the notices in posting order.
func (s *State) Notices() []Notice {
	return slices.Clone(s.notices)
}
