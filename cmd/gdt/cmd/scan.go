package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "scan",
		Short:   "Trigger a discount scan now",
		Long:    "Run a discount scan across all notifiable users without waiting for the next scheduled run.",
		Example: `  gdt scan`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			if err := c.TriggerScan(context.Background()); err != nil {
				return err
			}
			fmt.Println("Scan completed.")
			return nil
		},
	}
}
