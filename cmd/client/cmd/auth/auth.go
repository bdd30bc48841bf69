package auth

import (
	"context"
	"fmt"

	"filevault/cmd/client/cmd/types"
	"filevault/internal/app/client"

	"github.com/spf13/cobra"
)

// AuthCmd groups account commands.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Account management",
	Long:  `Register an account and log in.`,
}

func appFrom(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("client not initialized")
	}
	return app, nil
}
