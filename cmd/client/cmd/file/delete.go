package file

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <file-id>",
	Short: "Delete a file and its stored content",
	Args:  cobra.ExactArgs(1),
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

		if err := app.Delete(ctx, fileID); err != nil {
			return err
		}

		color.Green("File %d deleted", fileID)
		return nil
	},
}
