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

var LoginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and cache the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd.Context())
		if err != nil {
			return err
		}
		username := args[0]

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		result, err := app.Login(ctx, username, string(password))
		if err != nil {
			return err
		}

		token := result.Token
		if result.SecondFactorRequired {
			fmt.Println("A verification code has been sent to your email.")
			fmt.Print("Code: ")
			var code string
			if _, err := fmt.Scanln(&code); err != nil {
				return fmt.Errorf("read code: %w", err)
			}

			token, err = app.VerifyCode(ctx, username, code)
			if err != nil {
				return err
			}
		}

		if err := app.SaveToken(token); err != nil {
			return fmt.Errorf("save token: %w", err)
		}

		color.Green("Logged in as %s", username)
		return nil
	},
}
