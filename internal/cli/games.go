package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamehorizon/gamehorizon/internal/dependencies/clock"
	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/ui/form"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "games",
		Aliases: []string{"game"},
		Short:   "Game collection commands",
	}

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesGetCmd())
	cmd.AddCommand(newGamesAddCmd())
	cmd.AddCommand(newGamesUpdateCmd())
	cmd.AddCommand(newGamesDeleteCmd())

	return cmd
}

func newGamesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every game in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := store.ListGames(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(GameList(games))
			return nil
		},
	}
}

func newGamesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseGameID(args[0])
			if err != nil {
				return err
			}

			game, err := store.GetGame(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(*game)
			return nil
		},
	}
}

// gameFlags are the record fields settable from the command line
type gameFlags struct {
	title       string
	genre       string
	platforms   []string
	year        int
	rating      float64
	completed   bool
	multiplayer bool
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Game title (at most 100 characters)")
	cmd.Flags().StringVar(&f.genre, "genre", string(form.DefaultGenre), "Genre: Action, Adventure, RPG, Strategy, Sports, Puzzle, Simulation")
	cmd.Flags().StringArrayVar(&f.platforms, "platform", nil, "Platform, repeatable: PC, PS5, Xbox, Switch, Mobile")
	cmd.Flags().IntVar(&f.year, "year", 0, "Release year (defaults to the current year)")
	cmd.Flags().Float64Var(&f.rating, "rating", form.DefaultRating, "Rating from 1.0 to 5.0 in 0.5 steps")
	cmd.Flags().BoolVar(&f.completed, "completed", false, "Mark the game as completed")
	cmd.Flags().BoolVar(&f.multiplayer, "multiplayer", false, "Mark the game as multiplayer")
}

// apply copies the flags the user set onto f, going through the same
// incremental rules as the web form
func (f *gameFlags) apply(cmd *cobra.Command, fm *form.Form) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		fm.SetTitle(f.title)
	}
	if flags.Changed("genre") {
		fm.SetGenre(model.Genre(f.genre))
	}
	if flags.Changed("platform") {
		platforms := make([]model.Platform, len(f.platforms))
		for i, p := range f.platforms {
			platforms[i] = model.Platform(p)
		}
		fm.SetPlatforms(platforms)
	}
	if flags.Changed("year") {
		fm.SetReleaseYear(f.year)
	}
	if flags.Changed("rating") {
		fm.SetRating(f.rating)
	}
	if flags.Changed("completed") {
		fm.SetCompleted(f.completed)
	}
	if flags.Changed("multiplayer") {
		fm.SetMultiplayer(f.multiplayer)
	}
}

func currentYear() int {
	return clock.New().Now().Year()
}

func newGamesAddCmd() *cobra.Command {
	var flags gameFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a game to the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fm := form.OpenCreate(currentYear())
			flags.apply(cmd, fm)

			game, err := fm.Submission()
			if err != nil {
				return err
			}

			created, err := store.CreateGame(cmd.Context(), game)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(created)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newGamesUpdateCmd() *cobra.Command {
	var flags gameFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an existing game",
		Long: `Change fields of an existing game. Only the flags given are changed;
--platform replaces the whole platform list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseGameID(args[0])
			if err != nil {
				return err
			}

			existing, err := store.GetGame(cmd.Context(), id)
			if err != nil {
				return err
			}

			fm := form.OpenEdit(*existing, currentYear())
			flags.apply(cmd, fm)

			game, err := fm.Submission()
			if err != nil {
				return err
			}

			updated, err := store.UpdateGame(cmd.Context(), game)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(updated)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newGamesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseGameID(args[0])
			if err != nil {
				return err
			}

			if err := store.DeleteGame(cmd.Context(), id); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted game %s", id))
			return nil
		},
	}
}
