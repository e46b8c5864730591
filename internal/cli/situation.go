package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/wire"
)

// SituationCmd returns the situation command
func SituationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "situation",
		Aliases: []string{"sit", "s"},
		Short:   "Manage situations (incidents units respond to)",
	}

	cmd.AddCommand(situationCreateCmd())
	cmd.AddCommand(situationShowCmd())
	cmd.AddCommand(situationListCmd())
	cmd.AddCommand(situationAttachCmd())
	cmd.AddCommand(situationDetachCmd())
	cmd.AddCommand(situationCommanderCmd())
	cmd.AddCommand(situationMetaCmd())
	cmd.AddCommand(situationCloseCmd())
	cmd.AddCommand(situationOpenCmd())
	cmd.AddCommand(situationRemoveCmd())

	return cmd
}

// parsePairs turns key=value arguments into a map. Later keys win.
func parsePairs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q, expected key=value", arg)
		}
		out[key] = value
	}
	return out, nil
}

func situationCreateCmd() *cobra.Command {
	var metadata map[string]string

	cmd := &cobra.Command{
		Use:   "create [type]",
		Short: "Create an active situation",
		Long: `Create a situation. A "channel" metadata key binds the channel with that
name while the situation is active.

Examples:
  dispatch situation create fire --meta channel=TAC-1
  dispatch situation create pursuit --meta channel=TAC-2,zone=north`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SituationAdapterWithOutput(cmd.OutOrStdout()).Create(cmd.Context(), args[0], metadata)
		},
	}

	cmd.Flags().StringToStringVarP(&metadata, "meta", "m", nil, "Metadata as key=value pairs")

	return cmd
}

func situationShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [situation-id]",
		Short: "Show situation details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SituationAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context(), args[0])
		},
	}
}

func situationListCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List situations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SituationAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context(), activeOnly)
		},
	}

	cmd.Flags().BoolVarP(&activeOnly, "active", "a", false, "Only active situations")

	return cmd
}

func situationAttachCmd() *cobra.Command {
	var asInitiator bool

	cmd := &cobra.Command{
		Use:   "attach [situation-id] [unit-id]",
		Short: "Attach a unit, moving it from any other situation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SituationAdapterWithOutput(cmd.OutOrStdout()).Attach(cmd.Context(), args[0], args[1], asInitiator)
		},
	}

	cmd.Flags().BoolVarP(&asInitiator, "initiator", "i", false, "Make this unit the initiator")

	return cmd
}

func situationDetachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detach [situation-id] [unit-id]",
		Short: "Detach a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SituationAdapterWithOutput(cmd.OutOrStdout()).Detach(cmd.Context(), args[0], args[1])
		},
	}
}

func situationCommanderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commander [situation-id] [unit-id]",
		Short: "Hand command to an attached unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SituationAdapterWithOutput(cmd.OutOrStdout()).SetCommander(cmd.Context(), args[0], args[1])
		},
	}
}

func situationMetaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meta [situation-id] [key=value...]",
		Short: "Replace a situation's metadata",
		Long: `Replace a situation's metadata with the given pairs. Passing no pairs
clears it. Channel bindings follow the "channel" key.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metadata, err := parsePairs(args[1:])
			if err != nil {
				return err
			}
			return wire.SituationAdapterWithOutput(cmd.OutOrStdout()).SetMetadata(cmd.Context(), args[0], metadata)
		},
	}
}

func situationCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close [situation-id]",
		Short: "Close a situation, detaching every unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SituationAdapterWithOutput(cmd.OutOrStdout()).Close(cmd.Context(), args[0])
		},
	}
}

func situationOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [situation-id]",
		Short: "Reopen a closed situation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SituationAdapterWithOutput(cmd.OutOrStdout()).Open(cmd.Context(), args[0])
		},
	}
}

func situationRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [situation-id]",
		Short: "Delete a situation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SituationAdapterWithOutput(cmd.OutOrStdout()).Remove(cmd.Context(), args[0])
		},
	}
}
