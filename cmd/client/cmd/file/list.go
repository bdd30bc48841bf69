package file

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your files and files shared with you",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		listing, err := app.List(ctx)
		if err != nil {
			return err
		}

		if len(listing.Owned) == 0 && len(listing.Shared) == 0 {
			fmt.Println("No files.")
			return nil
		}

		if len(listing.Owned) > 0 {
			color.Cyan("Owned:")
			for _, f := range listing.Owned {
				fmt.Printf("  %4d  %-30s  %s\n", f.ID, f.Name, f.Mode)
			}
		}

		if len(listing.Shared) > 0 {
			color.Cyan("Shared with you:")
			for _, f := range listing.Shared {
				fmt.Printf("  %4d  %-30s  %s (%s)\n", f.ID, f.Name, f.Mode, f.Tier)
			}
		}

		return nil
	},
}
