// Package cli builds the dispatch command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/ctxutil"
	"github.com/example/dispatch/internal/version"
)

// RootCmd returns a fresh dispatch command tree. The interactive shell builds
// one per input line so flag values never leak between commands.
func RootCmd() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:     "dispatch",
		Short:   "Dispatch - coordination registry for operatives, units and situations",
		Version: version.String(),
		Long: `Dispatch tracks operatives reported by the simulation, groups them into units,
attaches units to situations and binds radio channels to active situations.

State lives in memory for the life of the process; use "dispatch shell" to run
a session of commands against one registry.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(ctxutil.WithActor(cmd.Context(), actor))
		},
	}

	cmd.PersistentFlags().StringVar(&actor, "as", "", "Actor recorded in the audit log (default \"dispatcher\")")

	cmd.AddCommand(InitCmd())
	cmd.AddCommand(PlayerCmd())
	cmd.AddCommand(UnitCmd())
	cmd.AddCommand(SituationCmd())
	cmd.AddCommand(ChannelCmd())
	cmd.AddCommand(AuditCmd())
	cmd.AddCommand(StatusCmd())
	cmd.AddCommand(ShellCmd())

	return cmd
}
