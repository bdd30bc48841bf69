package share

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	createGrantee string
	createTier    string
	createTTL     int
)

var CreateCmd = &cobra.Command{
	Use:   "create <file-id>",
	Short: "Share a file",
	Long: `Grant access to one of your files.

With --with the grant goes to a named user; without it you get an
anonymous link token anyone can use until the grant expires.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd.Context())
		if err != nil {
			return err
		}

		fileID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid file id %q", args[0])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		result, err := app.Share(ctx, fileID, createGrantee, createTier, createTTL)
		if err != nil {
			return err
		}

		color.Green("Share %d created (%s, expires %s)", result.ID, result.Tier, result.ExpiresAt)
		if result.Token != "" {
			fmt.Printf("Link token: %s\n", result.Token)
			fmt.Println("Anyone with this token can access the file until it expires.")
		}
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createGrantee, "with", "w", "", "username to share with (omit for an anonymous link)")
	CreateCmd.Flags().StringVarP(&createTier, "tier", "t", "view", "permission tier: view or download")
	CreateCmd.Flags().IntVar(&createTTL, "ttl", 0, "grant lifetime in hours (default 24)")
}
