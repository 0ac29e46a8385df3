// Package check provides the check command: load exports, run every
// check whose inputs are present and print the findings.
package check

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/nightaudit/internal/appcontext"
	"github.com/agentstation/nightaudit/internal/cmd/cmdutil"
	"github.com/agentstation/nightaudit/internal/cmd/output"
	"github.com/agentstation/nightaudit/internal/cmd/table"
	"github.com/agentstation/nightaudit/pkg/audit"
	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/reconcile"
	"github.com/agentstation/nightaudit/pkg/records"
)

// Result is the structured output of the check command.
type Result struct {
	Checks        []audit.Check               `json:"checks" yaml:"checks"`
	Findings      []records.Finding           `json:"findings" yaml:"findings"`
	Discrepancies []reconcile.Entry           `json:"discrepancies,omitempty" yaml:"discrepancies,omitempty"`
	Counts        map[records.FindingType]int `json:"counts,omitempty" yaml:"counts,omitempty"`
}

// ErrFindings is returned with --fail-on-error when error findings exist.
var ErrFindings = errors.New("audit has error findings")

// NewCommand creates the check command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var failOnError bool
	var only []string

	cmd := &cobra.Command{
		Use:     "check",
		GroupID: "core",
		Short:   "Run the night audit checks",
		Long: `Check loads the given exports and runs every check whose inputs are
present: KBS/in-house names, guest counts, identity documents, birth dates,
police report coverage, CA/CL payments and routing comments.

A malformed export is reported and skipped; the other checks still run.`,
		Example: `  nightaudit check --inhouse inhouse.xml --kbs kbs.xlsx --police police.xml
  nightaudit check --inhouse inhouse.xml --routing routing.xml -o json`,
		Args: cobra.NoArgs,
	}
	inputs := cmdutil.AddInputFlags(cmd)
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "Exit with an error when any error finding exists")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Only print these checks (e.g. guest_count,documents)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		auditor, err := app.Auditor()
		if err != nil {
			return err
		}
		if err := inputs.Load(cmd.Context(), auditor, app.Logger()); err != nil {
			return err
		}

		result, err := build(auditor.State(), only)
		if err != nil {
			return err
		}
		if err := render(cmd.OutOrStdout(), app.OutputFormat(), result); err != nil {
			return err
		}

		if failOnError {
			for _, f := range result.Findings {
				if f.Severity == records.SeverityError {
					return ErrFindings
				}
			}
		}
		return nil
	}
	return cmd
}

func build(s *audit.State, only []string) (Result, error) {
	result := Result{}
	selected := make(map[audit.CheckID]bool)
	for _, name := range only {
		id := audit.CheckID(name)
		if _, ok := s.Check(id); !ok {
			return Result{}, errors.NewNotFoundError("check", name)
		}
		selected[id] = true
	}

	for _, c := range s.Checks() {
		if len(selected) > 0 && !selected[c.ID] {
			continue
		}
		result.Checks = append(result.Checks, c)
		result.Findings = append(result.Findings, s.Findings(c.ID)...)
	}
	records.SortFindings(result.Findings)
	result.Counts = audit.CountByType(result.Findings)

	if len(selected) == 0 || selected[audit.CheckKBSOpera] {
		d := s.Discrepancies()
		for _, room := range d.Rooms() {
			result.Discrepancies = append(result.Discrepancies, d.ForRoom(room)...)
		}
	}
	return result, nil
}

func render(w io.Writer, format string, result Result) error {
	f := output.DetectFormat(format)
	switch f {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(f).Format(w, result)
	}

	formatter := output.NewFormatter(output.FormatTable)
	if err := formatter.Format(w, table.Checks(result.Checks)); err != nil {
		return err
	}
	if len(result.Findings) == 0 {
		_, err := fmt.Fprintln(w, "\nNo findings.")
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return formatter.Format(w, table.Findings(result.Findings))
}
