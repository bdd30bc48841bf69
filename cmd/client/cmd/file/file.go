package file

import (
	"context"
	"fmt"

	"filevault/cmd/client/cmd/types"
	"filevault/internal/app/client"

	"github.com/spf13/cobra"
)

// FileCmd groups vault file operations.
var FileCmd = &cobra.Command{
	Use:   "file",
	Short: "Work with vault files",
	Long:  `Upload, download, list and delete files in the vault.`,
}

func appFrom(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("client not initialized")
	}
	return app, nil
}
