// Package table converts audit results into rows for CLI table output.
package table

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/nightaudit/internal/cmd/emoji"
	"github.com/agentstation/nightaudit/pkg/audit"
	"github.com/agentstation/nightaudit/pkg/reconcile"
	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/roomtable"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Header turns a snake_case column key into a title, e.g. "rate_code"
// becomes "Rate Code".
func Header(key string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(key, "_", " "))
}

// narrowColumns are shown unless the wide format is requested.
var narrowColumns = map[string]bool{
	"room": true, "name": true, "rate_code": true, "company": true, "rate": true,
	"ca_cl": true, "balance": true, "routed_to": true, "routed_from": true, "acc_rate": true,
}

// Rooms converts the unified room table.
func Rooms(rows []roomtable.Row, wide bool) Data {
	cols := roomtable.Columns()
	keep := make([]int, 0, len(cols))
	var data Data
	for i, col := range cols {
		if wide || narrowColumns[col] {
			keep = append(keep, i)
			data.Headers = append(data.Headers, Header(col))
			data.ColumnAlignment = append(data.ColumnAlignment, alignFor(col))
		}
	}
	data.Headers = append(data.Headers, "Flags")

	for _, row := range rows {
		cells := row.Cells()
		out := make([]string, 0, len(keep)+1)
		for _, i := range keep {
			out = append(out, dash(cells[i]))
		}
		out = append(out, highlightFlags(row))
		data.Rows = append(data.Rows, out)
	}
	return data
}

// Findings converts findings, one row each.
func Findings(findings []records.Finding) Data {
	data := Data{
		Headers:         []string{"Room", "Severity", "Type", "Message"},
		ColumnAlignment: []Align{AlignRight, AlignCenter, AlignLeft, AlignLeft},
	}
	for _, f := range findings {
		data.Rows = append(data.Rows, []string{f.RoomNo, severityIcon(f.Severity), string(f.Type), f.Message})
	}
	return data
}

// Checks converts the check list.
func Checks(checks []audit.Check) Data {
	data := Data{
		Headers:         []string{"Check", "Status", "Flagged", "Inputs", "Error"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft},
	}
	for _, c := range checks {
		data.Rows = append(data.Rows, []string{
			c.Title,
			statusIcon(c.Status) + " " + string(c.Status),
			fmt.Sprintf("%d", c.Flagged),
			strings.Join(c.Inputs, ", "),
			dash(c.Error),
		})
	}
	return data
}

// Discrepancies converts the KBS/in-house matcher result, one row per
// unmatched guest with the room's other-side guest next to it.
func Discrepancies(d reconcile.Discrepancies) Data {
	data := Data{Headers: []string{"Room", "Type", "Guest", "Other Side"}}
	for _, room := range d.Rooms() {
		for _, e := range d.ForRoom(room) {
			var guest, other string
			if e.SourceGuest != nil {
				guest = e.SourceGuest.Name
			}
			if e.CounterpartGuest != nil {
				other = e.CounterpartGuest.Name
			}
			data.Rows = append(data.Rows, []string{room, string(e.Type), guest, dash(other)})
		}
	}
	return data
}

func highlightFlags(row roomtable.Row) string {
	var flags []string
	if row.Highlights.Rate {
		flags = append(flags, "rate")
	}
	if row.Highlights.Comment {
		flags = append(flags, "comment")
	}
	if row.Highlights.CaCl {
		flags = append(flags, "ca/cl")
	}
	if row.Highlights.Company {
		flags = append(flags, "company")
	}
	if len(flags) == 0 {
		return emoji.Optional
	}
	return emoji.Warning + " " + strings.Join(flags, ",")
}

func severityIcon(s records.Severity) string {
	switch s {
	case records.SeverityError:
		return emoji.Error
	case records.SeverityWarning:
		return emoji.Warning
	default:
		return emoji.Info
	}
}

func statusIcon(s audit.Status) string {
	switch s {
	case audit.StatusCompleted:
		return emoji.Success
	case audit.StatusError:
		return emoji.Error
	default:
		return emoji.Pending
	}
}

func alignFor(col string) Align {
	switch {
	case col == "rate", col == "balance", col == "acc_rate", col == "cashier_balance", col == "variance",
		strings.HasPrefix(col, "window_"):
		return AlignRight
	default:
		return AlignDefault
	}
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return emoji.Optional
	}
	return s
}
