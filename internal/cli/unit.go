package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/wire"
)

// UnitCmd returns the unit command
func UnitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unit",
		Aliases: []string{"u"},
		Short:   "Manage units (groups of operatives)",
	}

	cmd.AddCommand(unitCreateCmd())
	cmd.AddCommand(unitShowCmd())
	cmd.AddCommand(unitListCmd())
	cmd.AddCommand(unitAddCmd())
	cmd.AddCommand(unitRemoveMemberCmd())
	cmd.AddCommand(unitLeadCmd())
	cmd.AddCommand(unitRenameCmd())
	cmd.AddCommand(unitCodeCmd())
	cmd.AddCommand(unitChannelCmd())
	cmd.AddCommand(unitClearChannelCmd())
	cmd.AddCommand(unitRemoveCmd())

	return cmd
}

func unitCreateCmd() *cobra.Command {
	var leading bool

	cmd := &cobra.Command{
		Use:   "create [marking] [member...]",
		Short: "Create a unit",
		Long: `Create a unit from one or more unaffiliated operatives.

Examples:
  dispatch unit create 3B alice bob
  dispatch unit create 10A carol --lead`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).Create(cmd.Context(), args[0], args[1:], leading)
		},
	}

	cmd.Flags().BoolVarP(&leading, "lead", "l", false, "Request leadership regardless of rank")

	return cmd
}

func unitShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [unit-id]",
		Short: "Show unit details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context(), args[0])
		},
	}
}

func unitListCmd() *cobra.Command {
	var situationID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List units",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context(), situationID)
		},
	}

	cmd.Flags().StringVarP(&situationID, "situation", "s", "", "Only units attached to this situation")

	return cmd
}

func unitAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [unit-id] [name]",
		Short: "Add an operative to a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).AddMember(cmd.Context(), args[0], args[1])
		},
	}
}

func unitRemoveMemberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-member [unit-id] [name]",
		Short: "Remove an operative from a unit (the last one disbands it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).RemoveMember(cmd.Context(), args[0], args[1])
		},
	}
}

func unitLeadCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "lead [unit-id]",
		Short: "Request (or with --off, withdraw) unit leadership",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).SetLeadership(cmd.Context(), args[0], !off)
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Withdraw the leadership request")

	return cmd
}

func unitRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [unit-id] [marking]",
		Short: "Change a unit's marking",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).Rename(cmd.Context(), args[0], args[1])
		},
	}
}

func unitCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "code [unit-id] [code]",
		Short: "Set a unit's status code (omit the code to clear it)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := ""
			if len(args) == 2 {
				code = args[1]
			}
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).SetStatusCode(cmd.Context(), args[0], code)
		},
	}
}

func unitChannelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channel [unit-id] [channel-id]",
		Short: "Point a unit at a channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).AssignChannel(cmd.Context(), args[0], args[1])
		},
	}
}

func unitClearChannelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-channel [unit-id]",
		Short: "Clear a unit's channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).ClearChannel(cmd.Context(), args[0])
		},
	}
}

func unitRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [unit-id]",
		Short: "Disband a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.UnitAdapterWithOutput(cmd.OutOrStdout()).Remove(cmd.Context(), args[0])
		},
	}
}
