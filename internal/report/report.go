// Package report renders an audit snapshot as a markdown document for the
// night auditor's hand-over.
package report

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/nightaudit/internal/cmd/table"
	"github.com/agentstation/nightaudit/pkg/audit"
	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/roomtable"
)

// Options controls which sections are rendered.
type Options struct {
	Title        string
	BusinessDate string
	WithTable    bool
	WithNotices  bool
}

// Option configures the report.
type Option func(*Options)

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithBusinessDate prints the audited business date under the title.
func WithBusinessDate(date string) Option {
	return func(o *Options) {
		o.BusinessDate = date
	}
}

// WithRoomTable appends the unified room table.
func WithRoomTable() Option {
	return func(o *Options) {
		o.WithTable = true
	}
}

// WithNotices appends the notices posted while loading.
func WithNotices() Option {
	return func(o *Options) {
		o.WithNotices = true
	}
}

// Write renders s to w.
func Write(w io.Writer, s *audit.State, opts ...Option) error {
	o := &Options{Title: "Night Audit Report"}
	for _, opt := range opts {
		opt(o)
	}

	doc := md.NewMarkdown(w)
	doc.H1(o.Title).LF()
	if o.BusinessDate != "" {
		doc.PlainTextf("Business date: %s", md.Bold(o.BusinessDate)).LF().LF()
	}

	writeChecks(doc, s.Checks())
	writeFindings(doc, s.AllFindings())
	writeDiscrepancies(doc, s)
	if o.WithTable {
		writeRooms(doc, s.Table())
	}
	if o.WithNotices {
		writeNotices(doc, s.Notices())
	}

	return doc.Build()
}

func writeChecks(doc *md.Markdown, checks []audit.Check) {
	doc.H2("Checks").LF()
	data := table.Checks(checks)
	doc.Table(md.TableSet{Header: data.Headers, Rows: escapeRows(data.Rows)}).LF()
}

// writeFindings groups findings by room, errors before warnings.
func writeFindings(doc *md.Markdown, findings []records.Finding) {
	doc.H2("Findings").LF()
	if len(findings) == 0 {
		doc.PlainText("No findings.").LF().LF()
		return
	}

	errs, warns := 0, 0
	for _, f := range findings {
		if f.Severity == records.SeverityError {
			errs++
		} else {
			warns++
		}
	}
	doc.PlainTextf("%d errors, %d warnings.", errs, warns).LF().LF()

	byRoom := records.GroupByRoom(findings)
	for _, room := range sortedRooms(byRoom) {
		doc.H3("Room " + room).LF()
		items := make([]string, 0, len(byRoom[room]))
		for _, sev := range []records.Severity{records.SeverityError, records.SeverityWarning, records.SeverityInfo} {
			for _, f := range byRoom[room] {
				if f.Severity == sev {
					items = append(items, fmt.Sprintf("%s %s", md.Code(string(f.Type)), f.Message))
				}
			}
		}
		doc.BulletList(items...).LF()
	}
}

func writeDiscrepancies(doc *md.Markdown, s *audit.State) {
	d := s.Discrepancies()
	if d.Empty() {
		return
	}
	doc.H2("KBS / In-House Discrepancies").LF()
	doc.PlainTextf("%d rooms, %d guests.", d.Len(), d.GuestCount()).LF().LF()
	data := table.Discrepancies(d)
	doc.Table(md.TableSet{Header: data.Headers, Rows: escapeRows(data.Rows)}).LF()
}

func writeRooms(doc *md.Markdown, rows []roomtable.Row) {
	doc.H2("Rooms").LF()
	if len(rows) == 0 {
		doc.PlainText("No in-house data loaded.").LF().LF()
		return
	}
	data := table.Rooms(rows, true)
	doc.Table(md.TableSet{Header: data.Headers, Rows: escapeRows(data.Rows)}).LF()
}

func writeNotices(doc *md.Markdown, notices []audit.Notice) {
	if len(notices) == 0 {
		return
	}
	doc.H2("Notices").LF()
	items := make([]string, 0, len(notices))
	for _, n := range notices {
		items = append(items, fmt.Sprintf("%s: %s", md.Bold(string(n.Level)), n.Text))
	}
	doc.BulletList(items...).LF()
}

func sortedRooms(byRoom map[string][]records.Finding) []string {
	rooms := make([]string, 0, len(byRoom))
	for room := range byRoom {
		rooms = append(rooms, room)
	}
	records.SortRooms(rooms)
	return rooms
}

// escapeRows keeps pipes inside cells (routing segments) from splitting
// table columns.
func escapeRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = strings.ReplaceAll(cell, "|", `\|`)
		}
	}
	return out
}
