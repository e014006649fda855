package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmitrijs2005/coinkeeper/internal/client/auth"
)

func newLoginCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with an access token",
		Long: `Store the access token issued by your account backend. The token
is read from --token or prompted for without echo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				fmt.Print("Access token: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(string(raw))
			}

			session, err := auth.NewSession(token)
			if err != nil {
				return err
			}
			if err := session.Save(); err != nil {
				return err
			}
			app.Session = session

			color.Green("Logged in as %s", session.UserID)
			// Connectivity check only; a down backend does not undo the login.
			if err := app.Remote.Ping(cmd.Context()); err != nil {
				color.Yellow("Storage backend unreachable: %v", err)
				return nil
			}
			fmt.Println("Run 'coinkeeper pull' to load your collection.")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "access token (prompted if omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := auth.Clear(); err != nil {
				return err
			}
			app.Session = nil
			color.Yellow("Logged out. Local records are kept.")
			return nil
		},
	}
	return cmd
}
