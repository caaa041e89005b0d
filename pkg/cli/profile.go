package cli

import (
	"errors"
	"fmt"
	"io"
	"net/mail"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
)

var (
	registerReq   types.RegisterRequest
	profileReq    types.UpdateProfileRequest
	oldPassword   string
	newPassword   string
	sendEmailCode bool
)

func validateEmail(s string) error {
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("invalid email %q", s)
	}
	return nil
}

func printProfile(w io.Writer, p *types.UserProfile) {
	tw := output.Table(w)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	fmt.Fprintf(tw, "Username:\t%s\n", p.Username)
	fmt.Fprintf(tw, "Name:\t%s\n", output.Dash(p.Name))
	fmt.Fprintf(tw, "Email:\t%s\n", output.Dash(p.Email))
	fmt.Fprintf(tw, "Role:\t%s\n", p.Role)
	fmt.Fprintf(tw, "Status:\t%s\n", output.Title(p.Status.String()))
	_ = tw.Flush()
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a console account",
	Long: `Sign up with a username, email and password. The backend emails a
verification code first: run with --send-code, then again with --code.`,
	Example: `  relayctl register --email me@example.com --send-code
  relayctl register --username me --email me@example.com --password s3cret --code 123456`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEmail(registerReq.Email); err != nil {
			return err
		}
		if sendEmailCode {
			err := app.client.SendVerificationCode(cmd.Context(), types.VerificationCodeRequest{
				Email: registerReq.Email,
				Type:  types.CodeForRegister,
			})
			if err != nil {
				return err
			}
			return printMessage(cmd, map[string]any{"email": registerReq.Email}, "Verification code sent to %s", registerReq.Email)
		}
		if registerReq.Username == "" || registerReq.Password == "" || registerReq.VerificationCode == "" {
			return errors.New("--username, --password and --code are required")
		}
		p, err := app.client.Register(cmd.Context(), registerReq)
		if err != nil {
			return err
		}
		return printResult(cmd, p, func(w io.Writer) {
			fmt.Fprintf(w, "Registered %s; sign in with: relayctl login -u %s\n", p.Username, p.Username)
		})
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change your own profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		p, err := app.client.Profile(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(cmd, p, func(w io.Writer) { printProfile(w, p) })
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your name, username or email",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if profileReq == (types.UpdateProfileRequest{}) {
			return errors.New("nothing to update: give --name, --username or --email")
		}
		if profileReq.Email != "" {
			if err := validateEmail(profileReq.Email); err != nil {
				return err
			}
		}
		p, err := app.client.UpdateProfile(cmd.Context(), profileReq)
		if err != nil {
			return err
		}
		if ctx := app.contexts.Contexts[app.conn.ContextName]; ctx != nil && ctx.Token != "" &&
			p.Username != "" && p.Username != ctx.Username {
			ctx.Username = p.Username
			if err := app.contexts.Save(); err != nil {
				app.log.Warn("failed to save context config", "error", err)
			}
		}
		return printResult(cmd, p, func(w io.Writer) { printProfile(w, p) })
	},
}

var profileChangeEmailCmd = &cobra.Command{
	Use:   "change-email <email>",
	Short: "Change your email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		email := args[0]
		if err := validateEmail(email); err != nil {
			return err
		}
		if sendEmailCode {
			err := app.client.SendVerificationCode(cmd.Context(), types.VerificationCodeRequest{
				Email: email,
				Type:  types.CodeForChangeEmail,
			})
			if err != nil {
				return err
			}
			return printMessage(cmd, map[string]any{"email": email}, "Verification code sent to %s", email)
		}
		if err := app.client.ChangeEmail(cmd.Context(), types.ChangeEmailRequest{Email: email}); err != nil {
			return err
		}
		return printMessage(cmd, map[string]any{"email": email}, "Email changed to %s", email)
	},
}

var profileChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change your password",
	Long: `Change your password. Without --old and --new both are prompted for.
The current session stays valid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if oldPassword == "" || newPassword == "" {
			if err := promptPasswords(); err != nil {
				return err
			}
		}
		if oldPassword == newPassword {
			return errors.New("the new password must differ from the old one")
		}
		err := app.client.ChangePassword(cmd.Context(), types.ChangePasswordRequest{
			OldPassword: oldPassword,
			NewPassword: newPassword,
		})
		if err != nil {
			return err
		}
		return printMessage(cmd, nil, "Password changed")
	},
}

func promptPasswords() error {
	var confirm string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Current password").EchoMode(huh.EchoModePassword).Value(&oldPassword),
			huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&newPassword).
				Validate(func(s string) error {
					if len(s) < 6 {
						return errors.New("at least 6 characters")
					}
					return nil
				}),
			huh.NewInput().Title("Repeat new password").EchoMode(huh.EchoModePassword).Value(&confirm).
				Validate(func(s string) error {
					if s != newPassword {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("password prompt: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(registerCmd, profileCmd)
	profileCmd.AddCommand(profileUpdateCmd, profileChangeEmailCmd, profileChangePasswordCmd)

	f := registerCmd.Flags()
	f.StringVarP(&registerReq.Username, "username", "u", "", "Username")
	f.StringVar(&registerReq.Email, "email", "", "Email")
	f.StringVarP(&registerReq.Password, "password", "p", "", "Password")
	f.StringVar(&registerReq.VerificationCode, "code", "", "Verification code sent to --email")
	f.BoolVar(&sendEmailCode, "send-code", false, "Email a verification code and exit")

	f = profileUpdateCmd.Flags()
	f.StringVar(&profileReq.Name, "name", "", "Display name")
	f.StringVar(&profileReq.Username, "username", "", "Username")
	f.StringVar(&profileReq.Email, "email", "", "Email")

	profileChangeEmailCmd.Flags().BoolVar(&sendEmailCode, "send-code", false, "Email a verification code to the new address and exit")

	f = profileChangePasswordCmd.Flags()
	f.StringVar(&oldPassword, "old", "", "Current password")
	f.StringVar(&newPassword, "new", "", "New password")
}
