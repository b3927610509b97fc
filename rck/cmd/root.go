// Package cmd provides the command-line interface of rck.
package cmd

import (
	"github.com/ackslab/rck/game"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// NewRootCmd creates the base command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rck",
		Short: "rck runs fantasy skirmishes on a shared game clock.",
		Long: `rck runs fantasy skirmishes on a shared game clock. ` +
			`Characters and monsters act when their scheduled turn comes ` +
			`and an autopilot plays the operated character.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringSlice("env", nil,
		"Load the configuration from these .env files (default ./.env)")

	rootCmd.AddCommand(newSkirmishCmd())
	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newReportCmd())

	return rootCmd
}

// Execute runs the command line and exits, flushing the recorders.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadConfig(cmd *cobra.Command) (game.Config, error) {
	envFiles, err := cmd.Flags().GetStringSlice("env")
	if err != nil {
		return game.Config{}, err
	}

	return game.LoadConfig(envFiles...)
}
