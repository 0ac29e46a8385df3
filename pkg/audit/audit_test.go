package audit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nightaudit/pkg/audit"
	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/logging"
	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/sources"
)

func newOrchestrator(t *testing.T) (*audit.Orchestrator, *logging.TestLogger) {
	t.Helper()
	tl := logging.NewTestLogger(t)
	return audit.NewOrchestrator(audit.WithLogger(tl.Logger)), tl
}

func inhouseSet() sources.InhouseSet {
	return sources.InhouseSet{Records: []records.GuestRecord{
		{Source: records.SourceInhouse, RoomNo: "0101", Name: "Doe, John", Adults: 1, Rate: decimal.NewFromInt(100), PaymentMethod: "CL"},
		{Source: records.SourceInhouse, RoomNo: "0102", Name: "Roe, Jane", AccompanyingNames: "Roe, Rick", Adults: 3},
	}}
}

func kbsSet() sources.KBSSet {
	return sources.KBSSet{Records: []records.GuestRecord{
		{Source: records.SourceKBS, RoomNo: "0101", FirstName: "John", LastName: "Doe"},
		{Source: records.SourceKBS, RoomNo: "0102", FirstName: "Jane", LastName: "Roe"},
		{Source: records.SourceKBS, RoomNo: "0102", FirstName: "Rick", LastName: "Roe"},
		{Source: records.SourceKBS, RoomNo: "0200", FirstName: "Ayse", LastName: "Kaya"},
	}}
}

func policeSet() sources.PoliceSet {
	return sources.PoliceSet{Records: []records.GuestRecord{
		{Source: records.SourcePolice, RoomNo: "0101", FirstName: "John", LastName: "Doe", DocumentType: records.DocumentPassport, DocumentNumber: "u1234567", Nationality: "USA", ResidenceCountry: "USA", BirthDate: "1980-01-01"},
	}}
}

func TestNewStateHasEveryCheckPending(t *testing.T) {
	s := audit.NewState()
	require.Len(t, s.Checks(), len(audit.CheckIDs()))
	for _, c := range s.Checks() {
		assert.Equal(t, audit.StatusPending, c.Status, c.ID)
		assert.NotEmpty(t, c.Inputs, c.ID)
	}
	assert.Empty(t, s.Table())
	assert.Empty(t, s.Notices())
	assert.True(t, s.Discrepancies().Empty())
}

func TestApplyLeavesPreviousStateUntouched(t *testing.T) {
	o, _ := newOrchestrator(t)
	s0 := audit.NewState()
	s1 := o.Apply(s0, inhouseSet())

	assert.False(t, s0.Loaded(sources.InhouseID))
	assert.Empty(t, s0.Table())
	assert.Empty(t, s0.Findings(audit.CheckGuestCount))
	assert.Equal(t, 0, s0.Version())

	assert.True(t, s1.Loaded(sources.InhouseID))
	assert.Len(t, s1.Table(), 2)
	assert.Equal(t, 1, s1.Version())
}

func TestApplyRunsOnlyReadyChecksThatReadTheSource(t *testing.T) {
	o, _ := newOrchestrator(t)
	s := o.Apply(nil, inhouseSet())

	status := func(id audit.CheckID) audit.Status {
		c, ok := s.Check(id)
		require.True(t, ok)
		return c.Status
	}
	assert.Equal(t, audit.StatusCompleted, status(audit.CheckGuestCount))
	assert.Equal(t, audit.StatusCompleted, status(audit.CheckCaCl))
	assert.Equal(t, audit.StatusPending, status(audit.CheckKBSOpera))
	assert.Equal(t, audit.StatusPending, status(audit.CheckPoliceCoverage))
	assert.Equal(t, audit.StatusPending, status(audit.CheckDocuments))

	findings := s.Findings(audit.CheckGuestCount)
	require.Len(t, findings, 1)
	assert.Equal(t, records.GuestCountMismatch, findings[0].Type)
	assert.Equal(t, "0102", findings[0].RoomNo)

	c, _ := s.Check(audit.CheckCaCl)
	assert.Equal(t, 1, c.Flagged)
}

func TestApplyKBSReconciles(t *testing.T) {
	o, _ := newOrchestrator(t)
	s := o.Apply(nil, inhouseSet())
	s = o.Apply(s, kbsSet())

	c, _ := s.Check(audit.CheckKBSOpera)
	assert.Equal(t, audit.StatusCompleted, c.Status)
	assert.Equal(t, []string{"0200"}, s.Discrepancies().Rooms())
	assert.Equal(t, 1, c.Flagged)

	findings := s.Findings(audit.CheckKBSOpera)
	require.Len(t, findings, 1)
	assert.Equal(t, records.KBSMissingInOpera, findings[0].Type)
}

func TestApplyDoesNotRerunUnrelatedChecks(t *testing.T) {
	o, _ := newOrchestrator(t)
	s1 := o.Apply(nil, inhouseSet())
	s2 := o.Apply(s1, policeSet())

	before := s1.Findings(audit.CheckGuestCount)
	after := s2.Findings(audit.CheckGuestCount)
	require.Len(t, after, 1)
	assert.Equal(t, before[0].ID, after[0].ID, "guest count must not be recomputed on a police load")

	c, _ := s2.Check(audit.CheckPoliceCoverage)
	assert.Equal(t, audit.StatusCompleted, c.Status)
	coverage := s2.Findings(audit.CheckPoliceCoverage)
	require.Len(t, coverage, 1)
	assert.Equal(t, "0102", coverage[0].RoomNo)
}

func TestFailClearsOnlyTheFailedSource(t *testing.T) {
	o, _ := newOrchestrator(t)
	s := o.Apply(nil, inhouseSet())
	s = o.Apply(s, kbsSet())
	s = o.Apply(s, policeSet())

	failure := errors.NewShapeError("kbs", "sheet", "header").WithReason("no data rows")
	s = o.Fail(s, sources.KBSID, failure)

	assert.False(t, s.Loaded(sources.KBSID))
	assert.True(t, s.Loaded(sources.InhouseID))
	assert.True(t, s.Loaded(sources.PoliceID))
	assert.Len(t, s.Table(), 2)

	kbs, _ := s.Check(audit.CheckKBSOpera)
	assert.Equal(t, audit.StatusError, kbs.Status)
	assert.NotEmpty(t, kbs.Error)
	assert.Empty(t, s.Findings(audit.CheckKBSOpera))
	assert.True(t, s.Discrepancies().Empty())

	guests, _ := s.Check(audit.CheckGuestCount)
	assert.Equal(t, audit.StatusCompleted, guests.Status)

	var errs int
	for _, n := range s.Notices() {
		if n.Level == audit.LevelError {
			errs++
			assert.Equal(t, "kbs", n.Source)
		}
	}
	assert.Equal(t, 1, errs)
}

func TestFailInhouseClearsTable(t *testing.T) {
	o, _ := newOrchestrator(t)
	s := o.Apply(nil, inhouseSet())
	s = o.Fail(s, sources.InhouseID, errors.New("boom"))

	assert.Empty(t, s.Table())
	c, _ := s.Check(audit.CheckCaCl)
	assert.Equal(t, audit.StatusError, c.Status)
}

func TestNoticesAreDeduplicated(t *testing.T) {
	o, _ := newOrchestrator(t)
	s := o.Apply(nil, inhouseSet())
	n := len(s.Notices())
	require.NotZero(t, n)

	s = o.Apply(s, inhouseSet())
	assert.Len(t, s.Notices(), n)

	texts := make(map[string]bool)
	for _, notice := range s.Notices() {
		assert.False(t, texts[notice.Text], "duplicate notice %q", notice.Text)
		texts[notice.Text] = true
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	o, _ := newOrchestrator(t)
	s1 := o.Apply(o.Apply(nil, inhouseSet()), kbsSet())
	s2 := o.Apply(s1, kbsSet())

	assert.True(t, records.EqualFindings(s1.Findings(audit.CheckKBSOpera), s2.Findings(audit.CheckKBSOpera)))
	assert.Equal(t, s1.Discrepancies().Rooms(), s2.Discrepancies().Rooms())
	assert.Len(t, s2.Table(), len(s1.Table()))
}

func TestRerun(t *testing.T) {
	o, _ := newOrchestrator(t)
	s := o.Apply(nil, inhouseSet())

	next, err := o.Rerun(s, audit.CheckGuestCount)
	require.NoError(t, err)
	assert.Equal(t, s.Version()+1, next.Version())

	_, err = o.Rerun(s, audit.CheckKBSOpera)
	assert.True(t, errors.IsValidationError(err))

	_, err = o.Rerun(s, "nope")
	assert.True(t, errors.IsNotFound(err))
}

func TestApplyLogsSourceField(t *testing.T) {
	o, tl := newOrchestrator(t)
	o.Apply(nil, policeSet())
	tl.AssertContains(t, `"source":"police"`)
}

func TestRunCheckLogsCheckAndRoomFields(t *testing.T) {
	o, tl := newOrchestrator(t)
	o.Apply(nil, inhouseSet())

	tl.AssertContains(t, `"check":"guest_count"`)
	tl.AssertContains(t, `"room":"0102"`)
	tl.AssertContains(t, `"type":"GUEST_COUNT_MISMATCH"`)
	tl.AssertContains(t, `"version":1`)
}

func TestCountByType(t *testing.T) {
	o, _ := newOrchestrator(t)
	s := o.Apply(nil, inhouseSet())
	counts := audit.CountByType(s.AllFindings())
	assert.Equal(t, 1, counts[records.GuestCountMismatch])
}
