package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/danialarif/gigdesk/internal/cli/formatter"
	"github.com/danialarif/gigdesk/internal/session"
)

func newLoginCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a backend session token",
		Long: "Stores a JWT issued by the marketplace backend. The token is kept\n" +
			"in the local database and attached to every request until it expires\n" +
			"or you log out.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return errors.New("pass the token with --token when not running interactively")
				}
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Session token").
							Description("Paste the JWT from the web app").
							EchoMode(huh.EchoModePassword).
							Value(&token),
					),
				).WithTheme(gigdeskHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}
			token = strings.TrimSpace(token)

			sess, err := session.Parse(token)
			if err != nil {
				return fmt.Errorf("parsing token: %w", err)
			}
			if sess.Expired(time.Now()) {
				return errors.New("token is already expired; get a fresh one from the web app")
			}
			if err := app.Sessions.Save(context.Background(), sess); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s)\n", sess.Name, sess.Role)
			if !sess.ExpiresAt.IsZero() {
				fmt.Println(formatter.Dim("session expires " + formatter.HumanDate(sess.ExpiresAt)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Session JWT (prompted for when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Clear(context.Background()); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Sessions.Load(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", formatter.Bold(sess.Name), formatter.Dim(string(sess.Role)))
			fmt.Println(formatter.Dim("account " + sess.AccountID))
			switch {
			case sess.ExpiresAt.IsZero():
				fmt.Println(formatter.Dim("no expiry claim on token"))
			case sess.Expired(time.Now()):
				fmt.Println(formatter.StyleRed.Render("session expired; run: gigdesk login"))
			default:
				fmt.Println(formatter.Dim("expires " + formatter.HumanDate(sess.ExpiresAt)))
			}
			return nil
		},
	}
}
