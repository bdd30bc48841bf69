package share

import (
	"context"
	"fmt"

	"filevault/cmd/client/cmd/types"
	"filevault/internal/app/client"

	"github.com/spf13/cobra"
)

// ShareCmd groups grant management.
var ShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Grant and revoke access to your files",
}

func appFrom(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("client not initialized")
	}
	return app, nil
}
