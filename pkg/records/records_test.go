package records_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nightaudit/pkg/records"
)

func TestGuestRecordOccupants(t *testing.T) {
	tests := []struct {
		name         string
		accompanying string
		wantNames    []string
		wantNamed    int
	}{
		{name: "no accompanying", accompanying: "", wantNames: nil, wantNamed: 1},
		{name: "single", accompanying: "Jane Doe", wantNames: []string{"Jane Doe"}, wantNamed: 2},
		{name: "blanks dropped", accompanying: " Jane Doe / /Ali Veli ", wantNames: []string{"Jane Doe", "Ali Veli"}, wantNamed: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := records.GuestRecord{AccompanyingNames: tt.accompanying, Adults: 2, Children: 1}
			assert.Equal(t, tt.wantNames, g.Accompanying())
			assert.Equal(t, tt.wantNamed, g.Named())
			assert.Equal(t, 3, g.Declared())
		})
	}
}

func TestGuestRecordFullName(t *testing.T) {
	assert.Equal(t, "Doe, John, BY", records.GuestRecord{Name: " Doe, John, BY "}.FullName())
	assert.Equal(t, "John Doe", records.GuestRecord{FirstName: "John", LastName: "Doe"}.FullName())
	assert.Equal(t, "Doe", records.GuestRecord{LastName: "Doe"}.FullName())
}

func TestGuestRecordKey(t *testing.T) {
	a := records.GuestRecord{Source: records.SourceKBS, RoomNo: " 0101 ", FirstName: "Ali", LastName: "Veli"}
	b := records.GuestRecord{Source: records.SourceKBS, RoomNo: "0101", FirstName: "Ali", LastName: "Veli"}
	assert.Equal(t, a.Key(), b.Key())

	c := b
	c.Source = records.SourcePolice
	assert.NotEqual(t, b.Key(), c.Key())
}

func TestCompareRooms(t *testing.T) {
	rooms := []string{"B12", "101", "0099", "A1", "12", " 7 "}
	records.SortRooms(rooms)
	assert.Equal(t, []string{" 7 ", "12", "0099", "101", "A1", "B12"}, rooms)

	assert.Equal(t, 0, records.CompareRooms("101", " 101"))
	assert.Equal(t, -1, records.CompareRooms("012", "12"))
	assert.True(t, records.SameRoom("a 12", "A12"))
}

func TestFindingEquality(t *testing.T) {
	a := records.NewFinding(records.GuestCountMismatch, "101", "declared %d, named %d", 3, 2)
	b := records.NewFinding(records.GuestCountMismatch, "101", "declared %d, named %d", 3, 2)

	require.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.Equal(b))
	assert.True(t, records.EqualFindings([]records.Finding{a}, []records.Finding{b}))

	c := b.With("declared", "3")
	assert.False(t, a.Equal(c))
	assert.Nil(t, b.Details, "With must not mutate the receiver")
}

func TestFindingDefaults(t *testing.T) {
	assert.Equal(t, records.SeverityWarning, records.NewFinding(records.TCKN9xWarning, "1", "x").Severity)
	assert.Equal(t, records.SeverityError, records.NewFinding(records.PasUyrukTC, "1", "x").Severity)
	assert.Len(t, records.FindingTypes(), 16)
}

func TestSortFindings(t *testing.T) {
	findings := []records.Finding{
		records.NewFinding(records.MissingUyruk, "B1", "b"),
		records.NewFinding(records.MissingBelgeNo, "12", "z"),
		records.NewFinding(records.MissingBelgeNo, "12", "a"),
		records.NewFinding(records.GuestCountMismatch, "12", "m"),
		records.NewFinding(records.MissingUyruk, "3", "c"),
	}
	records.SortFindings(findings)

	var got []string
	for _, f := range findings {
		got = append(got, f.RoomNo+":"+f.Type.String()+":"+f.Message)
	}
	assert.Equal(t, []string{
		"3:MISSING_UYRUK:c",
		"12:GUEST_COUNT_MISMATCH:m",
		"12:MISSING_BELGENO:a",
		"12:MISSING_BELGENO:z",
		"B1:MISSING_UYRUK:b",
	}, got)

	grouped := records.GroupByRoom(findings)
	assert.Len(t, grouped["12"], 3)
}

func TestCashringWindow(t *testing.T) {
	var c records.CashringEntry
	assert.True(t, c.Window(0).IsZero())
	assert.True(t, c.Window(5).IsZero())
	assert.True(t, c.Window(4).IsZero())
}

func TestRoutingEntryDirections(t *testing.T) {
	e := records.RoutingEntry{Transactions: []records.RoutingTransaction{
		{Direction: records.RoutedTo, Raw: "a"},
		{Direction: records.RoutedFrom, Raw: "b"},
		{Direction: records.RoutedTo, Raw: "c"},
	}}
	require.Len(t, e.Outgoing(), 2)
	assert.Equal(t, "c", e.Outgoing()[1].Raw)
	require.Len(t, e.Incoming(), 1)
}
