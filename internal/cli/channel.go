package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/wire"
)

// ChannelCmd returns the channel command
func ChannelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "channel",
		Aliases: []string{"ch"},
		Short:   "Inspect the radio channel pool",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ChannelAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show [channel-id]",
		Short: "Show one channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ChannelAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context(), args[0])
		},
	})

	return cmd
}
