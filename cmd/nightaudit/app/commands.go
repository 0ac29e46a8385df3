package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/nightaudit/cmd/nightaudit/cmd/check"
	"github.com/agentstation/nightaudit/cmd/nightaudit/cmd/completion"
	"github.com/agentstation/nightaudit/cmd/nightaudit/cmd/report"
	"github.com/agentstation/nightaudit/cmd/nightaudit/cmd/table"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(check.NewCommand(a))
	rootCmd.AddCommand(table.NewCommand(a))
	rootCmd.AddCommand(report.NewCommand(a, a.config.BusinessDate))

	rootCmd.AddCommand(completion.NewCommand())
	rootCmd.AddCommand(a.newVersionCommand())
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("nightaudit %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
