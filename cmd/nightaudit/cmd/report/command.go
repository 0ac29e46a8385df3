// Package report provides the report command, which writes the audit as a
// markdown document.
package report

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/nightaudit/internal/appcontext"
	"github.com/agentstation/nightaudit/internal/cmd/cmdutil"
	"github.com/agentstation/nightaudit/internal/report"
	"github.com/agentstation/nightaudit/pkg/errors"
)

// reportFilePermissions is used for the written report.
const reportFilePermissions = 0o644

// NewCommand creates the report command. businessDate is the configured
// default for --date.
func NewCommand(app appcontext.Interface, businessDate string) *cobra.Command {
	var (
		out       string
		date      string
		title     string
		withTable bool
		notices   bool
	)

	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "core",
		Short:   "Write the audit as a markdown report",
		Example: `  nightaudit report --inhouse inhouse.xml --kbs kbs.xlsx --police police.xml --out audit.md
  nightaudit report --inhouse inhouse.xml --rooms --date 2026-10-14`,
		Args: cobra.NoArgs,
	}
	inputs := cmdutil.AddInputFlags(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Write the report to this file instead of stdout")
	cmd.Flags().StringVar(&date, "date", businessDate, "Business date printed under the title")
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	cmd.Flags().BoolVar(&withTable, "rooms", false, "Append the unified room table")
	cmd.Flags().BoolVar(&notices, "notices", false, "Append the notices posted while loading")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		auditor, err := app.Auditor()
		if err != nil {
			return err
		}
		if err := inputs.Load(cmd.Context(), auditor, app.Logger()); err != nil {
			return err
		}

		var opts []report.Option
		if title != "" {
			opts = append(opts, report.WithTitle(title))
		}
		if date != "" {
			opts = append(opts, report.WithBusinessDate(date))
		}
		if withTable {
			opts = append(opts, report.WithRoomTable())
		}
		if notices {
			opts = append(opts, report.WithNotices())
		}

		var w io.Writer = cmd.OutOrStdout()
		if out != "" {
			f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, reportFilePermissions) //nolint:gosec // path comes from the operator
			if err != nil {
				return errors.WrapIO("create", out, err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		if err := report.Write(w, auditor.State(), opts...); err != nil {
			return errors.WrapIO("write", out, err)
		}
		app.Logger().Debug().Str("file", out).Msg("Report written")
		return nil
	}
	return cmd
}
