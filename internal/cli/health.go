package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check store health",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := store.Health(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(HealthResult{Status: status})
			return nil
		},
	}
}
