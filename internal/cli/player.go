package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/wire"
)

// PlayerCmd returns the player command
func PlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "player",
		Aliases: []string{"p"},
		Short:   "Manage operatives",
	}

	cmd.AddCommand(playerReportCmd())
	cmd.AddCommand(playerCreateCmd())
	cmd.AddCommand(playerShowCmd())
	cmd.AddCommand(playerListCmd())
	cmd.AddCommand(playerStatusCmd())
	cmd.AddCommand(playerRoleCmd())
	cmd.AddCommand(playerRankCmd())
	cmd.AddCommand(playerRemoveCmd())
	cmd.AddCommand(playerAwayCmd())

	return cmd
}

func playerReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [name] [x] [y]",
		Short: "Record a position report from the simulation",
		Long: `Record a position report. An unknown name creates the operative;
a known name updates its position and clears its away flag.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x coordinate %q", args[1])
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y coordinate %q", args[2])
			}
			return wire.PlayerAdapterWithOutput(cmd.OutOrStdout()).Report(cmd.Context(), args[0], x, y)
		},
	}
}

func playerCreateCmd() *cobra.Command {
	var rank, role string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create an operative without a position",
		Long: `Create an operative administratively. It has no position and never
goes stale.

Examples:
  dispatch player create alice --rank sergeant
  dispatch player create bob --rank officer --role medic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PlayerAdapterWithOutput(cmd.OutOrStdout()).Create(cmd.Context(), args[0], rank, role)
		},
	}

	cmd.Flags().StringVarP(&rank, "rank", "r", "", "Rank (chief, captain, lieutenant, sergeant, corporal, officer, cadet)")
	cmd.Flags().StringVar(&role, "role", "", "Free-text role")

	return cmd
}

func playerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show operative details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PlayerAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context(), args[0])
		},
	}
}

func playerListCmd() *cobra.Command {
	var filters primary.PlayerFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operatives",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PlayerAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context(), filters)
		},
	}

	cmd.Flags().BoolVar(&filters.AliveOnly, "alive", false, "Only operatives reported within the alive TTL")
	cmd.Flags().BoolVar(&filters.AvailableOnly, "available", false, "Only alive operatives free for assignment")
	cmd.Flags().StringVarP(&filters.UnitID, "unit", "u", "", "Filter by unit ID")

	return cmd
}

func playerStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [name] [status]",
		Short: "Set an operative's status (unassigned, on-duty, leading, off-duty)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PlayerAdapterWithOutput(cmd.OutOrStdout()).SetStatus(cmd.Context(), args[0], args[1])
		},
	}
}

func playerRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "role [name] [role]",
		Short: "Set an operative's role",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := ""
			if len(args) == 2 {
				role = args[1]
			}
			return wire.PlayerAdapterWithOutput(cmd.OutOrStdout()).SetRole(cmd.Context(), args[0], role)
		},
	}
}

func playerRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank [name] [rank]",
		Short: "Set an operative's rank",
		Long: `Set an operative's rank. Unit leadership is recomputed and, when the
unit is attached to a situation, command may pass to it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PlayerAdapterWithOutput(cmd.OutOrStdout()).SetRank(cmd.Context(), args[0], args[1])
		},
	}
}

func playerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove an operative, leaving its unit first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PlayerAdapterWithOutput(cmd.OutOrStdout()).Remove(cmd.Context(), args[0])
		},
	}
}

func playerAwayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "away",
		Short: "Flag operatives idle longer than away_after",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PlayerAdapterWithOutput(cmd.OutOrStdout()).MarkAway(cmd.Context())
		},
	}
}
