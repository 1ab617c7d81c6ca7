package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/localtodo/internal/ui"
)

func newClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(cmd, false); err != nil {
				return err
			}
			defer app.close()

			msg, err := app.bridge.Clear(cmd.Context())
			if err != nil {
				return err
			}
			okLine(cmd, msg)
			return nil
		},
	}
}

func okLine(cmd *cobra.Command, msg string) {
	ui.OK(cmd.OutOrStdout(), msg)
}
