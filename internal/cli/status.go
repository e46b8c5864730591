package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize every registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.StatusAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context())
		},
	}
}
