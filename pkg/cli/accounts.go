package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
	"github.com/relaydesk/relayctl/pkg/cli/internal/parse"
	"github.com/relaydesk/relayctl/pkg/store"
)

var platformTypes = []string{
	types.PlatformClaude,
	types.PlatformClaudeConsole,
	types.PlatformOpenAI,
	types.PlatformGemini,
}

func parseCurrentStatus(s string) (types.AccountCurrentStatus, error) {
	return parse.Enum(s,
		[]string{"normal", "api-error", "rate-limited"},
		[]types.AccountCurrentStatus{types.AccountNormal, types.AccountAPIError, types.AccountRateLimited})
}

const accountHeader = "ID\tNAME\tPLATFORM\tACTIVE\tHEALTH\tGROUP\tPRIORITY\tTODAY REQS\tTODAY COST"

func accountRow(a types.Account) string {
	group := "-"
	if a.Group != nil {
		group = a.Group.Name
	} else if a.GroupID != 0 {
		group = fmt.Sprint(a.GroupID)
	}
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s",
		a.ID, a.Name, a.PlatformType,
		output.Title(a.ActiveStatus.String()), output.Title(a.CurrentStatus.String()),
		group, a.Priority, output.Int(a.TodayUsageCount), output.Cost(a.TodayTotalCost))
}

var accountsCmd = &cobra.Command{
	Use:     "accounts",
	Aliases: []string{"account"},
	Short:   "Manage upstream provider accounts",
}

var (
	accountsPage   int
	accountsLimit  int
	accountsUserID int64
	accountsReset  bool
)

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		s := store.NewAccountStore(app.client, app.persister, app.log)
		if accountsReset {
			s.ResetParams()
		}
		flags := cmd.Flags()
		err := s.FetchList(cmd.Context(), func(p *types.AccountListParams) {
			if flags.Changed("user-id") || flags.Changed("limit") {
				p.Page = 1
			}
			if flags.Changed("page") {
				p.Page = accountsPage
			}
			if flags.Changed("limit") {
				p.Limit = accountsLimit
			}
			if flags.Changed("user-id") {
				p.UserID = accountsUserID
			}
		})
		if err != nil {
			return err
		}
		params := s.Params()
		page := types.Page[types.Account]{Items: s.Items(), Total: s.Total(), Page: params.Page, Limit: params.Limit}
		return printList(cmd, page, page.Items, accountHeader, accountRow,
			pageFooter(page.Total, page.Page, page.Limit))
	},
}

var accountsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := parse.ID(args[0])
		if err != nil {
			return err
		}
		a, err := app.client.GetAccount(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printResult(cmd, a, func(w io.Writer) {
			tw := output.Table(w)
			fmt.Fprintf(tw, "ID:\t%d\n", a.ID)
			fmt.Fprintf(tw, "Name:\t%s\n", a.Name)
			fmt.Fprintf(tw, "Platform:\t%s\n", a.PlatformType)
			fmt.Fprintf(tw, "Request URL:\t%s\n", output.Dash(a.RequestURL))
			fmt.Fprintf(tw, "Active:\t%s\n", output.Title(a.ActiveStatus.String()))
			fmt.Fprintf(tw, "Health:\t%s\n", output.Title(a.CurrentStatus.String()))
			fmt.Fprintf(tw, "Priority / weight:\t%d / %d\n", a.Priority, a.Weight)
			if a.EnableProxy {
				fmt.Fprintf(tw, "Proxy:\t%s\n", a.ProxyURI)
			}
			fmt.Fprintf(tw, "Today:\t%s requests, %s in / %s out tokens, %s\n",
				output.Int(a.TodayUsageCount), output.Int(a.TodayInputTokens),
				output.Int(a.TodayOutputTokens), output.Cost(a.TodayTotalCost))
			fmt.Fprintf(tw, "This week:\t%s requests, %s\n", output.Int(a.WeeklyCount), output.Cost(a.WeeklyCost))
			fmt.Fprintf(tw, "Last used:\t%s\n", output.Dash(a.LastUsedTime))
			if a.RateLimitEndTime != "" {
				fmt.Fprintf(tw, "Rate limited until:\t%s\n", a.RateLimitEndTime)
			}
			_ = tw.Flush()
		})
	},
}

var accountReq types.AccountRequest

var accountsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add an upstream account",
	Example: `  relayctl accounts create --name console-1 --platform claude_console \
    --request-url https://api.anthropic.com --secret-key sk-ant-... --group-id 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if accountReq.Name == "" {
			return errors.New("--name is required")
		}
		if _, err := parse.Enum(accountReq.PlatformType, platformTypes, platformTypes); err != nil {
			return fmt.Errorf("--platform: %w", err)
		}
		accountReq.EnableProxy = accountReq.ProxyURI != ""

		s := store.NewAccountStore(app.client, nil, app.log)
		a, err := s.CreateAccount(cmd.Context(), accountReq)
		if err != nil {
			return err
		}
		return printResult(cmd, a, func(w io.Writer) {
			fmt.Fprintf(w, "Created account %q (id %d)\n", a.Name, a.ID)
		})
	},
}

var accountResetUsage bool

// accountUpdate starts from the stored account; only flags that were given
// replace its values.
func accountUpdate(cmd *cobra.Command, a *types.Account) (types.AccountRequest, error) {
	active := a.ActiveStatus
	req := types.AccountRequest{
		Name:         a.Name,
		PlatformType: a.PlatformType,
		RequestURL:   a.RequestURL,
		GroupID:      a.GroupID,
		Priority:     a.Priority,
		Weight:       a.Weight,
		EnableProxy:  a.EnableProxy,
		ProxyURI:     a.ProxyURI,
		ModelMapping: a.ModelMapping,
		ActiveStatus: &active,
		IsMax:        a.IsMax,
	}
	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("name", func() { req.Name = accountReq.Name })
	set("platform", func() { req.PlatformType = accountReq.PlatformType })
	set("request-url", func() { req.RequestURL = accountReq.RequestURL })
	set("secret-key", func() { req.SecretKey = accountReq.SecretKey })
	set("access-token", func() { req.AccessToken = accountReq.AccessToken })
	set("refresh-token", func() { req.RefreshToken = accountReq.RefreshToken })
	set("expires-at", func() { req.ExpiresAt = accountReq.ExpiresAt })
	set("group-id", func() { req.GroupID = accountReq.GroupID })
	set("priority", func() { req.Priority = accountReq.Priority })
	set("weight", func() { req.Weight = accountReq.Weight })
	set("proxy", func() {
		req.ProxyURI = accountReq.ProxyURI
		req.EnableProxy = accountReq.ProxyURI != ""
	})
	set("model-mapping", func() { req.ModelMapping = accountReq.ModelMapping })
	set("max", func() { req.IsMax = accountReq.IsMax })
	if accountResetUsage {
		var zero int64
		req.TodayUsageCount = &zero
	}
	if _, err := parse.Enum(req.PlatformType, platformTypes, platformTypes); err != nil {
		return req, fmt.Errorf("--platform: %w", err)
	}
	return req, nil
}

var accountsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change an upstream account",
	Example: `  relayctl accounts update 4 --priority 10 --proxy socks5://127.0.0.1:1080
  relayctl accounts update 4 --reset-usage`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := parse.ID(args[0])
		if err != nil {
			return err
		}
		current, err := app.client.GetAccount(cmd.Context(), id)
		if err != nil {
			return err
		}
		req, err := accountUpdate(cmd, current)
		if err != nil {
			return err
		}
		a, err := app.client.UpdateAccount(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		return printResult(cmd, a, func(w io.Writer) {
			fmt.Fprintf(w, "Updated account %q (id %d)\n", a.Name, a.ID)
		})
	},
}

var accountsDeleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete one or more accounts",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		ids, err := parse.IDs(args)
		if err != nil {
			return err
		}
		s := store.NewAccountStore(app.client, nil, app.log)
		if err := s.DeleteAccounts(cmd.Context(), ids...); err != nil {
			return err
		}
		return printMessage(cmd, map[string]any{"ids": ids}, "Deleted %s", countNoun(len(ids), "account"))
	},
}

func accountActiveCmd(use, short string, status types.AccountActiveStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			ids, err := parse.IDs(args)
			if err != nil {
				return err
			}
			s := store.NewAccountStore(app.client, nil, app.log)
			if err := s.UpdateActiveStatuses(cmd.Context(), status, ids...); err != nil {
				return err
			}
			return printMessage(cmd, map[string]any{"ids": ids, "active_status": status},
				"Set %s to %s", countNoun(len(ids), "account"), status)
		},
	}
}

var accountsSetStatusCmd = &cobra.Command{
	Use:   "set-status <normal|api-error|rate-limited> <id>...",
	Short: "Override the health status of accounts",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		status, err := parseCurrentStatus(args[0])
		if err != nil {
			return err
		}
		ids, err := parse.IDs(args[1:])
		if err != nil {
			return err
		}
		s := store.NewAccountStore(app.client, nil, app.log)
		if err := s.UpdateCurrentStatuses(cmd.Context(), status, ids...); err != nil {
			return err
		}
		return printMessage(cmd, map[string]any{"ids": ids, "current_status": status},
			"Set %s to %s", countNoun(len(ids), "account"), status)
	},
}

var accountsTestCmd = &cobra.Command{
	Use:   "test <id>",
	Short: "Send a probe request through an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := parse.ID(args[0])
		if err != nil {
			return err
		}
		res, err := app.client.TestAccount(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := printResult(cmd, res, func(w io.Writer) {
			verdict := "OK"
			if !res.Success {
				verdict = "FAILED"
			}
			fmt.Fprintf(w, "%s: %s (HTTP %d)\n", verdict, res.Message, res.StatusCode)
		}); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("account %d failed its probe", id)
		}
		return nil
	},
}

var accountsOAuthURLCmd = &cobra.Command{
	Use:   "oauth-url",
	Short: "Start an OAuth authorization for a Claude account",
	Long: `Print an authorization URL. Open it, approve access, then pass the
code (or the whole callback URL) together with the printed verifier and
state to 'relayctl accounts exchange-code'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		res, err := app.client.GenerateOAuthURL(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(cmd, res, func(w io.Writer) {
			fmt.Fprintf(w, "Open this URL to authorize:\n\n  %s\n\n", res.AuthURL)
			fmt.Fprintln(w, "Then run:")
			fmt.Fprintf(w, "  relayctl accounts exchange-code --code <code> --verifier %s --state %s\n",
				res.CodeVerifier, res.State)
		})
	},
}

var (
	exchangeReq        types.ExchangeCodeRequest
	exchangeCreateName string
	exchangeGroupID    int64
)

var accountsExchangeCodeCmd = &cobra.Command{
	Use:   "exchange-code",
	Short: "Finish an OAuth authorization and optionally create the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		res, err := app.client.ExchangeOAuthCode(cmd.Context(), exchangeReq)
		if err != nil {
			return err
		}
		if exchangeCreateName == "" {
			return printResult(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Authorized %s\n", output.Dash(res.UserInfo.Email))
				fmt.Fprintln(w, "Pass --create <name> to store these tokens as an account.")
			})
		}

		s := store.NewAccountStore(app.client, nil, app.log)
		a, err := s.CreateAccount(cmd.Context(), types.AccountRequest{
			Name:         exchangeCreateName,
			PlatformType: types.PlatformClaude,
			GroupID:      exchangeGroupID,
			AccessToken:  res.AccessToken,
			RefreshToken: res.RefreshToken,
			ExpiresAt:    res.ExpiresAt,
			ProxyURI:     exchangeReq.ProxyURI,
			EnableProxy:  exchangeReq.ProxyURI != "",
		})
		if err != nil {
			return err
		}
		return printResult(cmd, a, func(w io.Writer) {
			fmt.Fprintf(w, "Created account %q (id %d)\n", a.Name, a.ID)
		})
	},
}

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsListCmd, accountsGetCmd, accountsCreateCmd, accountsUpdateCmd, accountsDeleteCmd,
		accountActiveCmd("activate", "Switch accounts on", types.AccountActive),
		accountActiveCmd("deactivate", "Switch accounts off", types.AccountDisabled),
		accountsSetStatusCmd, accountsTestCmd, accountsOAuthURLCmd, accountsExchangeCodeCmd)

	accountsListCmd.Flags().IntVar(&accountsPage, "page", 1, "Page number")
	accountsListCmd.Flags().IntVar(&accountsLimit, "limit", 20, "Page size")
	accountsListCmd.Flags().Int64Var(&accountsUserID, "user-id", 0, "Only accounts of this user (admin)")
	accountsListCmd.Flags().BoolVar(&accountsReset, "reset", false, "Forget remembered page and filters")

	addAccountFlags(accountsCreateCmd)
	addAccountFlags(accountsUpdateCmd)
	accountsUpdateCmd.Flags().BoolVar(&accountResetUsage, "reset-usage", false, "Zero today's usage counter")

	f := accountsExchangeCodeCmd.Flags()
	f.StringVar(&exchangeReq.AuthorizationCode, "code", "", "Authorization code")
	f.StringVar(&exchangeReq.CallbackURL, "callback-url", "", "Full callback URL (instead of --code)")
	f.StringVar(&exchangeReq.CodeVerifier, "verifier", "", "Code verifier printed by oauth-url")
	f.StringVar(&exchangeReq.State, "state", "", "State printed by oauth-url")
	f.StringVar(&exchangeReq.ProxyURI, "proxy", "", "Proxy URI for the token exchange")
	f.StringVar(&exchangeCreateName, "create", "", "Create a Claude account with this name from the tokens")
	f.Int64Var(&exchangeGroupID, "group-id", 0, "Group of the created account")
}

func addAccountFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&accountReq.Name, "name", "", "Account name")
	f.StringVar(&accountReq.PlatformType, "platform", types.PlatformClaudeConsole, "Platform: claude, claude_console, openai, gemini")
	f.StringVar(&accountReq.RequestURL, "request-url", "", "Upstream base URL")
	f.StringVar(&accountReq.SecretKey, "secret-key", "", "Upstream API key")
	f.StringVar(&accountReq.AccessToken, "access-token", "", "OAuth access token")
	f.StringVar(&accountReq.RefreshToken, "refresh-token", "", "OAuth refresh token")
	f.Int64Var(&accountReq.ExpiresAt, "expires-at", 0, "OAuth token expiry (unix seconds)")
	f.Int64Var(&accountReq.GroupID, "group-id", 0, "Group the account serves")
	f.IntVar(&accountReq.Priority, "priority", 0, "Priority (lower is tried first)")
	f.IntVar(&accountReq.Weight, "weight", 0, "Load-balancing weight")
	f.StringVar(&accountReq.ProxyURI, "proxy", "", "Proxy URI for upstream requests")
	f.StringVar(&accountReq.ModelMapping, "model-mapping", "", "Model mapping JSON")
	f.BoolVar(&accountReq.IsMax, "max", false, "Account is on a Max plan")
}
