package records

import (
	"fmt"
	"maps"
	"sort"

	"github.com/google/uuid"
)

// FindingType is the stable classification of a finding.
type FindingType string

// String returns the string representation of a finding type.
func (t FindingType) String() string {
	return string(t)
}

// Finding types.
const (
	GuestCountMismatch     FindingType = "GUEST_COUNT_MISMATCH"
	MissingBirthDate       FindingType = "MISSING_BIRTH_DATE"
	MissingBelgeNo         FindingType = "MISSING_BELGENO"
	MissingBelgeTuru       FindingType = "MISSING_BELGETURU"
	MissingIkametAdresi    FindingType = "MISSING_IKAMET_ADRESI"
	MissingUyruk           FindingType = "MISSING_UYRUK"
	TCUyrukMismatch        FindingType = "TC_UYRUK_MISMATCH"
	TCIkametMismatch       FindingType = "TC_IKAMET_MISMATCH"
	TCBelgeNoInvalid       FindingType = "TC_BELGENO_INVALID"
	TCKN9xWarning          FindingType = "TCKN_9X_WARNING"
	PasUyrukTC             FindingType = "PAS_UYRUK_TC"
	PasIkametTurkey        FindingType = "PAS_IKAMET_TURKEY"
	RoutingCommentMismatch FindingType = "ROUTING_COMMENT_MISMATCH"
	MissingPoliceData      FindingType = "MISSING_POLICE_DATA"
	KBSMissingInOpera      FindingType = "KBS_MISSING_IN_OPERA"
	OperaMissingInKBS      FindingType = "OPERA_MISSING_IN_KBS"
)

// FindingTypes returns every finding type in declaration order.
func FindingTypes() []FindingType {
	return []FindingType{
		GuestCountMismatch,
		MissingBirthDate,
		MissingBelgeNo,
		MissingBelgeTuru,
		MissingIkametAdresi,
		MissingUyruk,
		TCUyrukMismatch,
		TCIkametMismatch,
		TCBelgeNoInvalid,
		TCKN9xWarning,
		PasUyrukTC,
		PasIkametTurkey,
		RoutingCommentMismatch,
		MissingPoliceData,
		KBSMissingInOpera,
		OperaMissingInKBS,
	}
}

// Severity of a finding.
type Severity string

// Severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultSeverity returns the severity a finding type carries unless the
// producer says otherwise.
func (t FindingType) DefaultSeverity() Severity {
	switch t {
	case TCKN9xWarning, GuestCountMismatch:
		return SeverityWarning
	case KBSMissingInOpera, OperaMissingInKBS:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Finding is one data-quality issue. RoomNo and Type are enough to group,
// sort and dedupe findings without parsing Message.
type Finding struct {
	// ID is synthetic and must not be used for equality.
	ID       string            `json:"id" yaml:"id"`
	Type     FindingType       `json:"type" yaml:"type"`
	RoomNo   string            `json:"room_no" yaml:"room_no"`
	Message  string            `json:"message" yaml:"message"`
	Severity Severity          `json:"severity,omitempty" yaml:"severity,omitempty"`
	Details  map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewFinding creates a finding with a fresh ID and the type's default
// severity.
func NewFinding(t FindingType, room, format string, args ...any) Finding {
	return Finding{
		ID:       uuid.NewString(),
		Type:     t,
		RoomNo:   room,
		Message:  fmt.Sprintf(format, args...),
		Severity: t.DefaultSeverity(),
	}
}

// With returns a copy of the finding carrying an extra detail.
func (f Finding) With(key, value string) Finding {
	details := make(map[string]string, len(f.Details)+1)
	maps.Copy(details, f.Details)
	details[key] = value
	f.Details = details
	return f
}

// Equal compares two findings ignoring their IDs.
func (f Finding) Equal(other Finding) bool {
	return f.Type == other.Type &&
		f.RoomNo == other.RoomNo &&
		f.Message == other.Message &&
		f.Severity == other.Severity &&
		maps.Equal(f.Details, other.Details)
}

// EqualFindings reports whether two lists hold the same findings in the same
// order, ignoring IDs.
func EqualFindings(a, b []Finding) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// SortFindings orders findings by room (numeric first), then type, then
// message. The sort is stable.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if c := CompareRooms(a.RoomNo, b.RoomNo); c != 0 {
			return c < 0
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Message < b.Message
	})
}

// GroupByRoom groups findings by their room, preserving order within a room.
func GroupByRoom(findings []Finding) map[string][]Finding {
	out := make(map[string][]Finding)
	for _, f := range findings {
		out[f.RoomNo] = append(out[f.RoomNo], f)
	}
	return out
}
