package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
	"github.com/relaydesk/relayctl/pkg/store"
)

var (
	loginUsername string
	loginPassword string
	loginEmail    string
	loginCode     string
	loginSendCode bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session in the current context",
	Long: `Sign in with a username and password, or with an email and a one-time code.

Without --username/--password (or --email/--code) the credentials are
prompted for interactively. The session token is saved to the context
selected by --context, RELAYCTL_CONTEXT or the current context.`,
	Example: `  relayctl login --username admin --password secret
  relayctl login --email ops@example.com --send-code
  relayctl login --email ops@example.com --code 123456`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the session of the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := app.conn.ContextName
		if err := app.contexts.SetSession(name, "", ""); err != nil {
			return err
		}
		if err := app.contexts.Save(); err != nil {
			return fmt.Errorf("failed to save context config: %w", err)
		}
		return printMessage(cmd, map[string]any{"context": name}, "Logged out of context %q", name)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		session := store.NewSessionStore(app.client, nil, app.log)
		user, err := session.Restore(cmd.Context(), app.conn.Token)
		if err != nil {
			if errors.Is(err, store.ErrNoSession) {
				return errNotLoggedIn
			}
			return err
		}
		out := struct {
			*types.UserProfile
			Context   string     `json:"context"`
			Roles     []string   `json:"roles"`
			ExpiresAt *time.Time `json:"expires_at,omitempty"`
		}{UserProfile: user, Context: app.conn.ContextName, Roles: session.Roles()}
		if exp := session.ExpiresAt(); !exp.IsZero() {
			out.ExpiresAt = &exp
		}

		return printResult(cmd, out, func(w io.Writer) {
			tw := output.Table(w)
			fmt.Fprintf(tw, "User:\t%s (id %d)\n", user.Username, user.ID)
			if user.Email != "" {
				fmt.Fprintf(tw, "Email:\t%s\n", user.Email)
			}
			fmt.Fprintf(tw, "Role:\t%s\n", user.Role)
			fmt.Fprintf(tw, "Context:\t%s (%s)\n", app.conn.ContextName, app.client.BaseURL())
			if exp := session.ExpiresAt(); !exp.IsZero() {
				fmt.Fprintf(tw, "Expires:\t%s\n", exp.Local().Format(time.DateTime))
			}
			_ = tw.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email, for code login")
	loginCmd.Flags().StringVar(&loginCode, "code", "", "One-time code sent to --email")
	loginCmd.Flags().BoolVar(&loginSendCode, "send-code", false, "Email a one-time login code to --email and exit")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if loginSendCode {
		if loginEmail == "" {
			return errors.New("--send-code requires --email")
		}
		err := app.client.SendVerificationCode(ctx, types.VerificationCodeRequest{
			Email: loginEmail,
			Type:  types.CodeForLogin,
		})
		if err != nil {
			return err
		}
		return printMessage(cmd, map[string]any{"email": loginEmail},
			"Login code sent to %s; finish with: relayctl login --email %s --code <code>", loginEmail, loginEmail)
	}

	req := types.LoginRequest{LoginType: types.LoginPassword}
	switch {
	case loginEmail != "" && loginCode != "":
		req.LoginType = types.LoginSMSCode
		req.Email = loginEmail
		req.VerificationCode = loginCode
	case loginUsername != "" && loginPassword != "":
		req.Username = loginUsername
		req.Password = loginPassword
	default:
		if err := promptCredentials(); err != nil {
			return err
		}
		req.Username = loginUsername
		req.Password = loginPassword
	}

	session := store.NewSessionStore(app.client, nil, app.log)
	user, err := session.Login(ctx, req)
	if err != nil {
		return err
	}

	name := app.conn.ContextName
	if _, ok := app.contexts.Contexts[name]; !ok {
		return fmt.Errorf("context not found: %s - add it with: relayctl context add %s --server %s",
			name, name, app.client.BaseURL())
	}
	if err := app.contexts.SetSession(name, user.Username, session.Token()); err != nil {
		return err
	}
	if err := app.contexts.Save(); err != nil {
		return fmt.Errorf("failed to save context config: %w", err)
	}

	return printMessage(cmd, map[string]any{"context": name, "username": user.Username, "role": user.Role},
		"Logged in as %s (%s) on context %q", user.Username, user.Role, name)
}

// promptCredentials asks for whatever of username/password is missing.
func promptCredentials() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&loginUsername).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("username is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&loginPassword).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("login prompt: %w", err)
	}
	return nil
}
