package file

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"

	"filevault/internal/app/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	downloadOutput     string
	downloadOp         string
	downloadNoPassword bool
)

var DownloadCmd = &cobra.Command{
	Use:   "download <file-id>",
	Short: "Download a file from the vault",
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

		password, err := maybeReadPassword(downloadNoPassword)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		content, err := app.Download(ctx, fileID, password, downloadOp)
		if err != nil {
			return err
		}

		return writeContent(content, downloadOutput)
	},
}

// SharedCmd fetches a file through an anonymous share link token.
var SharedCmd = &cobra.Command{
	Use:   "shared <token>",
	Short: "Download a file via an anonymous share link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd.Context())
		if err != nil {
			return err
		}

		password, err := maybeReadPassword(downloadNoPassword)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		content, err := app.Shared(ctx, args[0], password, downloadOp)
		if err != nil {
			return err
		}

		return writeContent(content, downloadOutput)
	},
}

func maybeReadPassword(skip bool) (string, error) {
	if skip {
		return "", nil
	}
	fmt.Print("Encryption password (empty if none): ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Println()
	return string(pw), nil
}

func writeContent(content client.Content, output string) error {
	data, err := base64.StdEncoding.DecodeString(content.Data)
	if err != nil {
		return fmt.Errorf("decode content: %w", err)
	}

	if output == "" {
		output = content.Name
	}
	if err := os.WriteFile(output, data, 0600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	color.Green("Saved %s (%d bytes, mode %s)", output, len(data), content.Mode)
	if content.Mode == "opaque" {
		fmt.Printf("nonce: %s\nsalt:  %s\n", content.Nonce, content.Salt)
		fmt.Println("The content is still encrypted with your client key.")
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{DownloadCmd, SharedCmd} {
		c.Flags().StringVarP(&downloadOutput, "output", "o", "", "output path (defaults to the stored name)")
		c.Flags().StringVar(&downloadOp, "op", "", "access tier to request: view or download")
		c.Flags().BoolVar(&downloadNoPassword, "no-password", false, "skip the password prompt")
	}
}
