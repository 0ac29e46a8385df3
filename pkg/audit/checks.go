package audit

import (
	"fmt"
	"slices"

	"github.com/agentstation/nightaudit/pkg/reconcile"
	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/sources"
	"github.com/agentstation/nightaudit/pkg/validate"
)

// CheckID names a check.
type CheckID string

// String returns the string representation of a check ID.
func (id CheckID) String() string {
	return string(id)
}

// Checks.
const (
	CheckKBSOpera       CheckID = "kbs_opera"
	CheckGuestCount     CheckID = "guest_count"
	CheckDocuments      CheckID = "documents"
	CheckBirthDate      CheckID = "birth_date"
	CheckPoliceCoverage CheckID = "police_coverage"
	CheckCaCl           CheckID = "ca_cl"
	CheckRoutingComment CheckID = "routing_comment"
)

// CheckIDs returns every check in declaration order.
func CheckIDs() []CheckID {
	ids := make([]CheckID, 0, len(definitions))
	for _, def := range definitions {
		ids = append(ids, def.id)
	}
	return ids
}

// outcome is what a check computed.
type outcome struct {
	findings      []records.Finding
	discrepancies *reconcile.Discrepancies
	flagged       int
	summary       string
	clean         string
}

// definition declares a check's inputs and how to run it. A check runs only
// when all of its inputs are loaded.
type definition struct {
	id     CheckID
	title  string
	inputs []sources.ID
	run    func(s *State, rules validate.Rules) outcome
}

func (d definition) uses(id sources.ID) bool {
	return slices.Contains(d.inputs, id)
}

func (d definition) ready(s *State) bool {
	for _, in := range d.inputs {
		if !s.Loaded(in) {
			return false
		}
	}
	return true
}

func (d definition) inputNames() []string {
	out := make([]string, 0, len(d.inputs))
	for _, in := range d.inputs {
		out = append(out, in.String())
	}
	return out
}

var definitions = []definition{
	{
		id:     CheckKBSOpera,
		title:  "KBS / in-house names",
		inputs: []sources.ID{sources.KBSID, sources.InhouseID},
		run: func(s *State, _ validate.Rules) outcome {
			d := reconcile.Match(s.KBS(), s.Inhouse())
			return outcome{
				findings:      d.Findings(),
				discrepancies: &d,
				flagged:       d.GuestCount(),
				summary:       fmt.Sprintf("KBS/in-house mismatch: %d rooms and %d guests", d.Len(), d.GuestCount()),
				clean:         "KBS and in-house lists match",
			}
		},
	},
	{
		id:     CheckGuestCount,
		title:  "Guest count",
		inputs: []sources.ID{sources.InhouseID},
		run: func(s *State, _ validate.Rules) outcome {
			return findingsOutcome(validate.GuestCount(s.Inhouse()),
				"Guest count mismatch in %d rooms", "Guest counts match the named occupants")
		},
	},
	{
		id:     CheckDocuments,
		title:  "Identity documents",
		inputs: []sources.ID{sources.PoliceID},
		run: func(s *State, rules validate.Rules) outcome {
			return findingsOutcome(validate.Documents(s.Police(), rules),
				"Identity document issues: %d", "Identity documents are complete and consistent")
		},
	},
	{
		id:     CheckBirthDate,
		title:  "Birth dates",
		inputs: []sources.ID{sources.PoliceID},
		run: func(s *State, _ validate.Rules) outcome {
			return findingsOutcome(validate.BirthDates(s.Police()),
				"Police report has %d guests without a birth date", "Every police report guest has a birth date")
		},
	},
	{
		id:     CheckPoliceCoverage,
		title:  "Police report coverage",
		inputs: []sources.ID{sources.InhouseID, sources.PoliceID},
		run: func(s *State, _ validate.Rules) outcome {
			return findingsOutcome(validate.PoliceCoverage(s.Inhouse(), s.Police()),
				"%d in-house rooms are missing from the police report", "Every in-house room is in the police report")
		},
	},
	{
		id:     CheckCaCl,
		title:  "CA / CL payment",
		inputs: []sources.ID{sources.InhouseID},
		run: func(s *State, _ validate.Rules) outcome {
			n := 0
			for _, row := range s.table {
				if row.Highlights.CaCl {
					n++
				}
			}
			return outcome{
				flagged: n,
				summary: fmt.Sprintf("%d rooms pay by city ledger (CL)", n),
				clean:   "No city ledger (CL) rooms",
			}
		},
	},
	{
		id:     CheckRoutingComment,
		title:  "Routing comments",
		inputs: []sources.ID{sources.InhouseID, sources.RoutingID},
		run: func(s *State, rules validate.Rules) outcome {
			return findingsOutcome(validate.RoutingComments(s.Inhouse(), s.Routing(), rules),
				"Routing comment issues: %d", "Routing comments name every routed guest")
		},
	},
}

func findingsOutcome(findings []records.Finding, summary, clean string) outcome {
	return outcome{
		findings: findings,
		flagged:  len(findings),
		summary:  fmt.Sprintf(summary, len(findings)),
		clean:    clean,
	}
}

func lookup(id CheckID) (definition, bool) {
	for _, def := range definitions {
		if def.id == id {
			return def, true
		}
	}
	return definition{}, false
}
