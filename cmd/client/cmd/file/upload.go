package file

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	uploadName  string
	uploadNonce string
	uploadSalt  string
)

var UploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a file into the vault",
	Long: `Upload a file. By default you are prompted for an encryption
password and the server encrypts the content with a key derived from it.

Pass --nonce and --salt (base64) to mark the file as already encrypted on
your side; the server then stores the bytes untouched and returns them
with these parameters on download.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd.Context())
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}

		name := uploadName
		if name == "" {
			name = filepath.Base(args[0])
		}

		var password string
		if uploadNonce == "" {
			fmt.Print("Encryption password: ")
			pw, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			fmt.Println()
			password = string(pw)
		} else if uploadSalt == "" {
			return fmt.Errorf("--nonce requires --salt")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		id, err := app.Upload(ctx, name, base64.StdEncoding.EncodeToString(data), password, uploadNonce, uploadSalt)
		if err != nil {
			return err
		}

		color.Green("Uploaded %s (file id %d)", name, id)
		return nil
	},
}

func init() {
	UploadCmd.Flags().StringVarP(&uploadName, "name", "n", "", "stored file name (defaults to the local name)")
	UploadCmd.Flags().StringVar(&uploadNonce, "nonce", "", "client AES-GCM nonce, base64 (pre-encrypted upload)")
	UploadCmd.Flags().StringVar(&uploadSalt, "salt", "", "client KDF salt, base64 (pre-encrypted upload)")
}
