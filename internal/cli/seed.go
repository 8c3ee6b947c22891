package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamehorizon/gamehorizon/internal/model"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty collection with sample games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())

			existing, err := store.ListGames(cmd.Context())
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				out.PrintMessage(fmt.Sprintf("Collection already has %d games, nothing seeded", len(existing)))
				return nil
			}

			samples := model.SampleGames()
			for _, g := range samples {
				if _, err := store.CreateGame(cmd.Context(), g); err != nil {
					return err
				}
			}

			out.PrintMessage(fmt.Sprintf("Seeded %d games", len(samples)))
			return nil
		},
	}
}
