// Package table provides the table command, which prints the unified room
// table joined from the in-house, routing and cashier exports.
package table

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/nightaudit/internal/appcontext"
	"github.com/agentstation/nightaudit/internal/cmd/cmdutil"
	"github.com/agentstation/nightaudit/internal/cmd/output"
	cmdtable "github.com/agentstation/nightaudit/internal/cmd/table"
	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/roomtable"
	"github.com/agentstation/nightaudit/pkg/sources"
)

// NewCommand creates the table command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var highlighted bool

	cmd := &cobra.Command{
		Use:     "table",
		GroupID: "core",
		Short:   "Print the unified room table",
		Long: `Table joins the in-house list with the routing details and the balance
by folio window report into one row per in-house guest. Routing and cashier
exports are optional; their columns stay empty without them.`,
		Example: `  nightaudit table --inhouse inhouse.xml --routing routing.xml --cashring cashring.xml
  nightaudit table --inhouse inhouse.xml --highlighted -o wide`,
		Args: cobra.NoArgs,
	}
	inputs := cmdutil.AddInputFlags(cmd)
	cmd.Flags().BoolVar(&highlighted, "highlighted", false, "Only rows with a highlighted cell")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if inputs.Inhouse == "" {
			return errors.NewValidationError("inhouse", nil, "the room table needs --inhouse")
		}
		auditor, err := app.Auditor()
		if err != nil {
			return err
		}
		if err := inputs.Load(cmd.Context(), auditor, app.Logger()); err != nil {
			return err
		}

		state := auditor.State()
		if !state.Loaded(sources.InhouseID) {
			return errors.NewValidationError("inhouse", inputs.Inhouse, "in-house export did not load")
		}

		rows := state.Table()
		if highlighted {
			rows = filterHighlighted(rows)
		}

		format := output.DetectFormat(app.OutputFormat())
		switch format {
		case output.FormatJSON, output.FormatYAML:
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), rows)
		default:
			data := cmdtable.Rooms(rows, format == output.FormatWide)
			return output.NewFormatter(output.FormatTable).Format(cmd.OutOrStdout(), data)
		}
	}
	return cmd
}

func filterHighlighted(rows []roomtable.Row) []roomtable.Row {
	out := rows[:0:0]
	for _, row := range rows {
		if row.Highlights.Any() {
			out = append(out, row)
		}
	}
	return out
}
