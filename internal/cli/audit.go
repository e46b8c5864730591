package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/wire"
)

// AuditCmd returns the audit command
func AuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the audit log",
	}

	cmd.AddCommand(auditListCmd())
	cmd.AddCommand(auditPruneCmd())

	return cmd
}

func auditListCmd() *cobra.Command {
	var filters primary.AuditFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AuditAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context(), filters)
		},
	}

	cmd.Flags().StringVarP(&filters.EntityType, "type", "t", "", "Filter by entity type (player, unit, situation, channel)")
	cmd.Flags().StringVar(&filters.EntityID, "id", "", "Filter by entity ID")
	cmd.Flags().StringVar(&filters.ActorID, "actor", "", "Filter by actor")
	cmd.Flags().StringVar(&filters.Action, "action", "", "Filter by action (create, update, delete)")
	cmd.Flags().IntVarP(&filters.Limit, "limit", "n", 50, "Maximum entries to show")

	return cmd
}

func auditPruneCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete audit entries older than --days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AuditAdapterWithOutput(cmd.OutOrStdout()).Prune(cmd.Context(), days)
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Age threshold in days")

	return cmd
}
