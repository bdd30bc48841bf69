package cmd

import (
	"context"
	"fmt"
	"os"

	"filevault/cmd/client/cmd/types"
	"filevault/internal/app/client"
	"filevault/internal/app/client/config"
	"filevault/internal/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "filevault",
	Short: "Filevault - encrypted file vault client",
	Long: `Filevault stores files encrypted on the server.

Upload with a password and the server derives the key and encrypts for
you; upload pre-encrypted bytes with your own nonce and salt and the
server never sees the plaintext. Files can be shared with other users or
through anonymous links.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg := config.MustLoad()
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log := logger.NewLogger(cfg.Env)

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Filevault server URL")
}
