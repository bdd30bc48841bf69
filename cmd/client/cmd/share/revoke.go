package share

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var RevokeCmd = &cobra.Command{
	Use:   "revoke <share-id>",
	Short: "Revoke a grant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd.Context())
		if err != nil {
			return err
		}

		shareID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid share id %q", args[0])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Revoke(ctx, shareID); err != nil {
			return err
		}

		color.Green("Share %d revoked", shareID)
		return nil
	},
}
