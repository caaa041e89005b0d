package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
	"github.com/relaydesk/relayctl/pkg/cli/internal/parse"
	"github.com/relaydesk/relayctl/pkg/store"
)

const keyHeader = "ID\tNAME\tKEY\tSTATUS\tGROUP\tDAILY LIMIT\tTODAY REQS\tTODAY COST\tEXPIRES"

// maskKey keeps the prefix and the last four characters of a key.
func maskKey(k string) string {
	if len(k) <= 12 {
		return strings.Repeat("*", len(k))
	}
	return k[:7] + "..." + k[len(k)-4:]
}

func keyRow(k types.APIKey) string {
	group := "-"
	if k.Group != nil {
		group = k.Group.Name
	}
	limit := "-"
	if k.DailyLimit > 0 {
		limit = output.Cost(k.DailyLimit)
	}
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s",
		k.ID, k.Name, maskKey(k.Key), output.Title(k.Status.String()), group, limit,
		output.Int(k.TodayUsageCount), output.Cost(k.TodayTotalCost), output.Dash(k.ExpiresAt))
}

var keysCmd = &cobra.Command{
	Use:     "keys",
	Aliases: []string{"key", "api-keys"},
	Short:   "Manage relay API keys",
}

var (
	keysPage    int
	keysLimit   int
	keysGroupID int64
	keysReset   bool
	keysEnabled bool
)

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		s := store.NewAPIKeyStore(app.client, app.persister, app.log)
		if keysReset {
			s.ResetParams()
		}
		flags := cmd.Flags()
		err := s.FetchList(cmd.Context(), func(p *types.APIKeyListParams) {
			if flags.Changed("group-id") || flags.Changed("limit") {
				p.Page = 1
			}
			if flags.Changed("page") {
				p.Page = keysPage
			}
			if flags.Changed("limit") {
				p.Limit = keysLimit
			}
			if flags.Changed("group-id") {
				p.GroupID = keysGroupID
			}
		})
		if err != nil {
			return err
		}
		items := s.Items()
		if keysEnabled {
			items = s.EnabledKeys()
		}
		params := s.Params()
		page := types.Page[types.APIKey]{Items: items, Total: s.Total(), Page: params.Page, Limit: params.Limit}
		return printList(cmd, page, page.Items, keyHeader, keyRow,
			pageFooter(page.Total, page.Page, page.Limit))
	},
}

var keysGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := parse.ID(args[0])
		if err != nil {
			return err
		}
		k, err := app.client.GetAPIKey(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printResult(cmd, k, func(w io.Writer) {
			tw := output.Table(w)
			fmt.Fprintf(tw, "ID:\t%d\n", k.ID)
			fmt.Fprintf(tw, "Name:\t%s\n", k.Name)
			fmt.Fprintf(tw, "Key:\t%s\n", k.Key)
			fmt.Fprintf(tw, "Status:\t%s\n", output.Title(k.Status.String()))
			fmt.Fprintf(tw, "Group:\t%d\n", k.GroupID)
			fmt.Fprintf(tw, "Models:\t%s\n", output.Dash(k.ModelRestriction))
			fmt.Fprintf(tw, "Daily limit:\t%s\n", output.Cost(k.DailyLimit))
			fmt.Fprintf(tw, "Expires:\t%s\n", output.Dash(k.ExpiresAt))
			fmt.Fprintf(tw, "Last used:\t%s\n", output.Dash(k.LastUsedTime))
			_ = tw.Flush()
		})
	},
}

var keyCreate types.CreateAPIKeyRequest

var keysCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Issue an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		keyCreate.Name = args[0]
		created, err := app.client.CreateAPIKey(cmd.Context(), keyCreate)
		if err != nil {
			return err
		}
		return printResult(cmd, created, func(w io.Writer) {
			fmt.Fprintf(w, "Created API key %q:\n\n  %s\n\n", keyCreate.Name, created.Key)
			fmt.Fprintln(w, "Store it now; it is shown in full only on creation and by 'keys get'.")
		})
	},
}

var (
	keyUpdateName   string
	keyUpdateExpire string
	keyUpdateModels string
	keyUpdateLimit  float64
	keyUpdateGroup  int64
)

var keysUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := parse.ID(args[0])
		if err != nil {
			return err
		}
		var req types.UpdateAPIKeyRequest
		flags := cmd.Flags()
		changed := false
		if flags.Changed("name") {
			req.Name, changed = &keyUpdateName, true
		}
		if flags.Changed("expires-at") {
			req.ExpiresAt, changed = &keyUpdateExpire, true
		}
		if flags.Changed("models") {
			req.ModelRestriction, changed = &keyUpdateModels, true
		}
		if flags.Changed("daily-limit") {
			req.DailyLimit, changed = &keyUpdateLimit, true
		}
		if flags.Changed("group-id") {
			req.GroupID, changed = &keyUpdateGroup, true
		}
		if !changed {
			return errors.New("nothing to update: pass --name, --expires-at, --models, --daily-limit or --group-id")
		}
		k, err := app.client.UpdateAPIKey(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		return printResult(cmd, k, func(w io.Writer) {
			fmt.Fprintf(w, "Updated API key %d\n", k.ID)
		})
	},
}

func keyStatusCmd(use string, status types.APIKeyStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: output.Title(use) + " an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			id, err := parse.ID(args[0])
			if err != nil {
				return err
			}
			s := store.NewAPIKeyStore(app.client, nil, app.log)
			if err := s.UpdateKeyStatus(cmd.Context(), id, status); err != nil {
				return err
			}
			return printMessage(cmd, map[string]any{"id": id, "status": status}, "Set API key %d to %s", id, status)
		},
	}
}

var keysDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an API key",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := parse.ID(args[0])
		if err != nil {
			return err
		}
		s := store.NewAPIKeyStore(app.client, nil, app.log)
		if err := s.DeleteKey(cmd.Context(), id); err != nil {
			return err
		}
		return printMessage(cmd, map[string]any{"id": id}, "Deleted API key %d", id)
	},
}

var keyStatsParams types.APIKeyStatsParams

var keysStatsCmd = &cobra.Command{
	Use:   "stats <key>",
	Short: "Show usage of a key by its secret value (no login needed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyStatsParams.APIKey = args[0]
		st, err := app.client.APIKeyStats(cmd.Context(), keyStatsParams)
		if err != nil {
			return err
		}
		return printResult(cmd, st, func(w io.Writer) {
			sum := st.Stats.Summary
			tw := output.Table(w)
			fmt.Fprintf(tw, "Key:\t%s (id %d, %s)\n", st.APIKeyInfo.Name, st.APIKeyInfo.ID, st.APIKeyInfo.Status)
			fmt.Fprintf(tw, "Requests:\t%s (%s streamed)\n", output.Int(sum.TotalRequests), output.Percent(sum.StreamPercent))
			fmt.Fprintf(tw, "Tokens:\t%s in / %s out / %s cache read / %s cache write\n",
				output.Int(sum.TotalInputTokens), output.Int(sum.TotalOutputTokens),
				output.Int(sum.TotalCacheReadTokens), output.Int(sum.TotalCacheCreationTokens))
			fmt.Fprintf(tw, "Cost:\t%s\n", output.Cost(sum.TotalCost))
			_ = tw.Flush()
			if len(st.Logs.List) > 0 {
				fmt.Fprintln(w)
				printLogTable(w, st.Logs.List)
				fmt.Fprintln(w, pageFooter(st.Logs.Total, st.Logs.Page, st.Logs.Limit))
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysListCmd, keysGetCmd, keysCreateCmd, keysUpdateCmd, keysDeleteCmd, keysStatsCmd,
		keyStatusCmd("enable", types.APIKeyEnabled),
		keyStatusCmd("disable", types.APIKeyDisabled))

	keysListCmd.Flags().IntVar(&keysPage, "page", 1, "Page number")
	keysListCmd.Flags().IntVar(&keysLimit, "limit", 20, "Page size")
	keysListCmd.Flags().Int64Var(&keysGroupID, "group-id", 0, "Only keys of this group")
	keysListCmd.Flags().BoolVar(&keysReset, "reset", false, "Forget remembered page and filters")
	keysListCmd.Flags().BoolVar(&keysEnabled, "enabled", false, "Only enabled keys")

	f := keysCreateCmd.Flags()
	f.StringVar(&keyCreate.Key, "key", "", "Key value (generated when empty)")
	f.Int64Var(&keyCreate.GroupID, "group-id", 0, "Group the key routes to")
	f.StringVar(&keyCreate.ExpiresAt, "expires-at", "", "Expiry time, e.g. 2025-12-31 23:59:59")
	f.StringVar(&keyCreate.ModelRestriction, "models", "", "Comma-separated models the key may use")
	f.Float64Var(&keyCreate.DailyLimit, "daily-limit", 0, "Daily cost limit in dollars")

	f = keysUpdateCmd.Flags()
	f.StringVar(&keyUpdateName, "name", "", "New name")
	f.StringVar(&keyUpdateExpire, "expires-at", "", "New expiry time")
	f.StringVar(&keyUpdateModels, "models", "", "New model restriction")
	f.Float64Var(&keyUpdateLimit, "daily-limit", 0, "New daily cost limit")
	f.Int64Var(&keyUpdateGroup, "group-id", 0, "New group")

	keysStatsCmd.Flags().IntVar(&keyStatsParams.Page, "page", 1, "Log page")
	keysStatsCmd.Flags().IntVar(&keyStatsParams.Limit, "limit", 10, "Logs per page")
}
