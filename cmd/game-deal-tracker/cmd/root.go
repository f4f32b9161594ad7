// Package cmd implements the CLI commands for the game-deal-tracker server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "game-deal-tracker",
	Short: "Track game discounts across storefronts",
	Long: "An API-first service that tracks wishlisted games on Steam and the " +
		"Epic Games Store, scans storefront prices on a schedule, notifies users " +
		"when their games go on sale, and stores human- or AI-authored game reviews.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
