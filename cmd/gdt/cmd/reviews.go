package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func reviewsCmd() *cobra.Command {
	reviewsRoot := &cobra.Command{
		Use:   "reviews",
		Short: "Manage game reviews",
		Long: "Read, write, and delete game reviews. Reviews are keyed by game name\n" +
			"and can be written by hand or generated by the configured model.",
	}

	reviewsRoot.AddCommand(
		reviewsGetCmd(),
		reviewsCreateCmd(),
		reviewsGenerateCmd(),
		reviewsUpdateCmd(),
		reviewsDeleteCmd(),
	)

	return reviewsRoot
}

func reviewsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game>",
		Short: "Show the review for a game",
		Example: `  gdt reviews get "Hades"
  gdt reviews get "Hades" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			r, err := c.GetReview(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(r)
			}
			return printReviewDetail(r)
		},
	}
}

func reviewsCreateCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:     "create <game>",
		Short:   "Write a review for a game",
		Example: `  gdt reviews create "Hades" --content "A perfect roguelike."`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if content == "" {
				return fmt.Errorf("--content is required")
			}
			c := newClient()
			created, err := c.CreateReview(context.Background(), args[0], content)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(created)
			}
			fmt.Printf("Review created for %s (%s).\n", created.GameName, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "review text")

	return cmd
}

func reviewsGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "generate <game>",
		Short:   "Generate a review using the configured model",
		Example: `  gdt reviews generate "Hades"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			created, err := c.GenerateReview(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(created)
			}
			return printReviewDetail(created)
		},
	}
}

func reviewsUpdateCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Replace a review's content",
		Example: `  gdt reviews update 8b9f... --content "Still holds up."`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if content == "" {
				return fmt.Errorf("--content is required")
			}
			c := newClient()
			updated, err := c.UpdateReview(context.Background(), args[0], content)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(updated)
			}
			fmt.Printf("Review %s updated.\n", updated.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "review text")

	return cmd
}

func reviewsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a review",
		Example: `  gdt reviews delete 8b9f...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			if err := c.DeleteReview(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Review %s deleted.\n", args[0])
			return nil
		},
	}
}
