// Package cmdutil provides shared flags for nightaudit commands.
package cmdutil

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/nightaudit"
	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/sources"
)

// InputFlags holds one export path per source.
type InputFlags struct {
	Inhouse  string
	KBS      string
	Police   string
	Routing  string
	Cashring string

	// Strict makes any failed source fail the command. Otherwise the
	// command reports on what did load.
	Strict bool
}

// AddInputFlags adds the export flags to a command.
func AddInputFlags(cmd *cobra.Command) *InputFlags {
	flags := &InputFlags{}

	cmd.Flags().StringVar(&flags.Inhouse, "inhouse", "",
		"In-house guest list export (XML)")
	cmd.Flags().StringVar(&flags.KBS, "kbs", "",
		"KBS identity registration export (XLSX)")
	cmd.Flags().StringVar(&flags.Police, "police", "",
		"Police report export (XML)")
	cmd.Flags().StringVar(&flags.Routing, "routing", "",
		"Routing details export (XML)")
	cmd.Flags().StringVar(&flags.Cashring, "cashring", "",
		"Balance by folio window export (XML)")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false,
		"Exit with an error when any export fails to load")

	_ = cmd.MarkFlagFilename("inhouse", "xml")
	_ = cmd.MarkFlagFilename("kbs", "xlsx")
	_ = cmd.MarkFlagFilename("police", "xml")
	_ = cmd.MarkFlagFilename("routing", "xml")
	_ = cmd.MarkFlagFilename("cashring", "xml")

	return flags
}

// Files returns the given paths keyed by source.
func (f *InputFlags) Files() map[sources.ID]string {
	files := make(map[sources.ID]string)
	for id, path := range map[sources.ID]string{
		sources.InhouseID:  f.Inhouse,
		sources.KBSID:      f.KBS,
		sources.PoliceID:   f.Police,
		sources.RoutingID:  f.Routing,
		sources.CashringID: f.Cashring,
	} {
		if path != "" {
			files[id] = path
		}
	}
	return files
}

// Load loads every given export into a. Without --strict, load errors are
// logged and the command goes on with what did load; only a missing input
// is an error.
func (f *InputFlags) Load(ctx context.Context, a nightaudit.Auditor, logger *zerolog.Logger) error {
	files := f.Files()
	if len(files) == 0 {
		return errors.NewValidationError("inputs", nil,
			"no export given; use --inhouse, --kbs, --police, --routing or --cashring")
	}
	err := a.LoadFiles(ctx, files)
	if err == nil {
		return nil
	}
	if f.Strict || ctx.Err() != nil {
		return err
	}
	logger.Warn().Err(err).Msg("Some exports did not load")
	return nil
}
