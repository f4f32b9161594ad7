package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func gamesCmd() *cobra.Command {
	gamesRoot := &cobra.Command{
		Use:   "games",
		Short: "Search storefront catalogs",
		Long: "Search the Steam and Epic Games Store catalogs by name, or fetch\n" +
			"current pricing for a single game by its platform identifier.",
	}

	gamesRoot.AddCommand(
		gamesSearchCmd(),
		gamesGetCmd(),
	)

	return gamesRoot
}

func gamesSearchCmd() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search a storefront by game name",
		Example: `  gdt games search "portal" --platform steam
  gdt games search "alan wake" --platform epic --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			games, err := c.SearchGames(context.Background(), platform, args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(games)
			}
			if len(games) == 0 {
				fmt.Println("No games found.")
				return nil
			}
			return printGameTable(games)
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "steam", "storefront (steam, epic)")

	return cmd
}

func gamesGetCmd() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "get <identifier>",
		Short: "Show current pricing for one game",
		Example: `  gdt games get 400 --platform steam
  gdt games get "Alan Wake 2" --platform epic`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			g, err := c.GetGame(context.Background(), platform, args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(g)
			}
			return printGameDetail(g)
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "steam", "storefront (steam, epic)")

	return cmd
}
