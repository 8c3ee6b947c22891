package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/gamehorizon/gamehorizon/internal/client"
)

var (
	cfg   *Config
	store *client.Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "gamehorizon",
		Short: "CLI tool for the GameHorizon record store",
		Long: `gamehorizon manages a video game collection held by a GameHorizon record store.

It can list, add, update and delete games, seed an empty collection with
sample games, and check that the store is up.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("invalid output format %q: must be text or json", cfg.Output)
			}
			if cfg.Timeout <= 0 {
				return fmt.Errorf("invalid timeout %s: must be positive", cfg.Timeout)
			}
			if cfg.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "Using store %s\n", cfg.ServerURL)
			}

			store = client.New(cfg.ServerURL, client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Store URL (env: GAMEHORIZON_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Timeout for each request to the store")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		NewOutput(cfg.Output, os.Stdout).PrintError(err)
		os.Exit(1)
	}
}
