package report_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nightaudit/internal/report"
	"github.com/agentstation/nightaudit/pkg/audit"
	"github.com/agentstation/nightaudit/pkg/logging"
	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/sources"
)

func loadedState(t *testing.T) *audit.State {
	t.Helper()
	o := audit.NewOrchestrator(audit.WithLogger(logging.NewNopLogger()))
	s := o.Apply(nil, sources.InhouseSet{Records: []records.GuestRecord{
		{RoomNo: "0101", Name: "Doe, John", Adults: 2, Rate: decimal.NewFromInt(100)},
		{RoomNo: "0102", Name: "Kaya, Ayse", Adults: 1},
	}})
	return o.Apply(s, sources.KBSSet{Records: []records.GuestRecord{
		{RoomNo: "0101", FirstName: "John", LastName: "Doe"},
		{RoomNo: "0103", FirstName: "Ali", LastName: "Veli"},
	}})
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, loadedState(t),
		report.WithBusinessDate("2026-10-14"), report.WithRoomTable(), report.WithNotices()))

	out := buf.String()
	assert.Contains(t, out, "# Night Audit Report")
	assert.Contains(t, out, "**2026-10-14**")
	assert.Contains(t, out, "## Checks")
	assert.Contains(t, out, "### Room 0101")
	assert.Contains(t, out, "`GUEST_COUNT_MISMATCH`")
	assert.Contains(t, out, "## KBS / In-House Discrepancies")
	assert.Contains(t, out, "Ali Veli")
	assert.Contains(t, out, "## Rooms")
	assert.Contains(t, out, "## Notices")
}

func TestWriteEmptyState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, audit.NewState(), report.WithTitle("Audit")))

	out := buf.String()
	assert.Contains(t, out, "# Audit")
	assert.Contains(t, out, "No findings.")
	assert.NotContains(t, out, "## Rooms")
	assert.NotContains(t, out, "Discrepancies")
}
