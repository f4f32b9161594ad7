package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func wishlistCmd() *cobra.Command {
	wishlistRoot := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage your wishlist",
		Long: "Manage the games tracked on your wishlist. Requires a user identity,\n" +
			"set via --user or GDT_USER.",
	}

	wishlistRoot.AddCommand(
		wishlistListCmd(),
		wishlistAddCmd(),
		wishlistRemoveCmd(),
	)

	return wishlistRoot
}

func wishlistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your wishlist entries",
		Example: `  gdt wishlist list --user 11111111-1111-1111-1111-111111111111
  gdt wishlist list --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			entries, err := c.ListWishlist(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(entries)
			}
			if len(entries) == 0 {
				fmt.Println("Wishlist is empty.")
				return nil
			}
			return printWishlistTable(entries)
		},
	}
}

func wishlistAddCmd() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "add <identifier>",
		Short: "Track a game on your wishlist",
		Example: `  gdt wishlist add 400 --platform steam
  gdt wishlist add "Alan Wake 2" --platform epic`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			entry, err := c.AddWishlistEntry(context.Background(), platform, args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(entry)
			}
			fmt.Printf("Tracking %s on %s.\n", entry.PlatformIdentifier, entry.Platform)
			return nil
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "steam", "storefront (steam, epic)")

	return cmd
}

func wishlistRemoveCmd() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:     "remove <identifier>",
		Short:   "Stop tracking a game",
		Example: `  gdt wishlist remove 400 --platform steam`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			if err := c.RemoveWishlistEntry(context.Background(), platform, args[0]); err != nil {
				return err
			}
			fmt.Printf("Stopped tracking %s on %s.\n", args[0], platform)
			return nil
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "steam", "storefront (steam, epic)")

	return cmd
}
