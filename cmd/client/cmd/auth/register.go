package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	registerEmail        string
	registerSecondFactor bool
)

var RegisterCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Register a new account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Println()

		fmt.Print("Repeat password: ")
		confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Println()

		if string(password) != string(confirm) {
			return fmt.Errorf("passwords do not match")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		id, err := app.Register(ctx, args[0], registerEmail, string(password), registerSecondFactor)
		if err != nil {
			return err
		}

		color.Green("Account created (id %d). Log in with: filevault auth login %s", id, args[0])
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email (required)")
	RegisterCmd.Flags().BoolVar(&registerSecondFactor, "second-factor", false, "require a one-time code at login")
	_ = RegisterCmd.MarkFlagRequired("email")
}
