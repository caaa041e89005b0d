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

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrator commands (users, usage logs, system logs)",
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show system-wide user and task counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		d, err := app.client.AdminDashboard(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(cmd, d, func(w io.Writer) {
			tw := output.Table(w)
			fmt.Fprintf(tw, "Users:\t%s\n", output.Int(d.UserCount))
			fmt.Fprintf(tw, "Tasks:\t%s (%s completed, %s pending)\n",
				output.Int(d.TaskCount), output.Int(d.CompletedTaskCount), output.Int(d.PendingTaskCount))
			_ = tw.Flush()
		})
	},
}

var adminUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Inspect and prune every user's usage logs",
}

var (
	usageUserID int64
	usageMonths int
)

const adminLogHeader = "ID\tUSER\t" + logHeader

func adminLogRow(l types.Log) string {
	user := "-"
	if l.User != nil {
		user = l.User.Username
	} else if l.UserID != 0 {
		user = fmt.Sprint(l.UserID)
	}
	return l.ID + "\t" + user + "\t" + logRow(l)
}

var adminUsageListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List usage logs of all users",
	Example: `  relayctl admin usage list --user-id 3 --since 24h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		filter := types.LogFilter{Page: logFlags.page, Limit: logFlags.limit, UserID: usageUserID}
		if err := patchLogFilter(cmd, &filter); err != nil {
			return err
		}
		page, err := app.client.AdminLogs(cmd.Context(), filter)
		if err != nil {
			return err
		}
		return printList(cmd, page, page.Items, adminLogHeader, adminLogRow,
			pageFooter(page.Total, page.Page, page.Limit))
	},
}

var adminUsageStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize usage logs of all users, or of one with --user-id",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		st, err := app.client.AdminLogStats(cmd.Context(), usageUserID)
		if err != nil {
			return err
		}
		return printLogStats(cmd, st)
	},
}

var adminUsageGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show any user's usage log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		l, err := app.client.AdminGetLog(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printLogDetail(cmd, l)
	},
}

var adminUsageDeleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete usage logs",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		for _, id := range args {
			if err := app.client.DeleteLog(cmd.Context(), id); err != nil {
				return fmt.Errorf("log %s: %w", id, err)
			}
		}
		return printMessage(cmd, map[string]any{"ids": args}, "Deleted %s", countNoun(len(args), "log"))
	},
}

var adminUsageCleanupCmd = &cobra.Command{
	Use:     "cleanup",
	Short:   "Delete usage logs older than --months",
	Example: `  relayctl admin usage cleanup --months 6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		n, err := app.client.CleanupLogs(cmd.Context(), usageMonths)
		if err != nil {
			return err
		}
		return printMessage(cmd, map[string]any{"deleted_count": n, "months": usageMonths},
			"Deleted %s older than %d months", countNoun(int(n), "log"), usageMonths)
	},
}

var adminLogsParams types.PageParams

const systemLogHeader = "TIME\tMETHOD\tPATH\tSTATUS\tUSER\tIP\tDURATION\tREQUEST ID"

var adminLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List requests handled by the backend API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		page, err := app.client.SystemLogs(cmd.Context(), adminLogsParams)
		if err != nil {
			return err
		}
		return printList(cmd, page, page.Items, systemLogHeader, func(l types.SystemLog) string {
			user := "-"
			if l.User != nil {
				user = l.User.Username
			}
			return fmt.Sprintf("%s\t%s\t%s\t%d\t%s\t%s\t%dms\t%s",
				l.CreatedAt, l.Method, l.Path, l.StatusCode, user, output.Dash(l.IP), l.Duration, output.Dash(l.RequestID))
		}, pageFooter(page.Total, page.Page, page.Limit))
	},
}

var adminUsersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Manage console users",
}

var (
	usersPage  int
	usersLimit int
	usersReset bool
)

const userHeader = "ID\tUSERNAME\tEMAIL\tROLE\tSTATUS\tCREATED"

func userRow(u types.User) string {
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s",
		u.ID, u.Username, output.Dash(u.Email), u.Role, output.Title(u.Status.String()), output.Dash(u.CreatedAt))
}

var adminUsersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		s := store.NewUserStore(app.client, app.persister, app.log)
		if usersReset {
			s.ResetParams()
		}
		flags := cmd.Flags()
		err := s.FetchList(cmd.Context(), func(p *types.PageParams) {
			if flags.Changed("limit") {
				p.Page = 1
				p.Limit = usersLimit
			}
			if flags.Changed("page") {
				p.Page = usersPage
			}
		})
		if err != nil {
			return err
		}
		params := s.Params()
		page := types.Page[types.User]{Items: s.Items(), Total: s.Total(), Page: params.Page, Limit: params.Limit}
		return printList(cmd, page, page.Items, userHeader, userRow,
			pageFooter(page.Total, page.Page, page.Limit))
	},
}

var userCreate types.CreateUserRequest

var adminUsersCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Add a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		userCreate.Username = args[0]
		if userCreate.Password == "" {
			return errors.New("--password is required")
		}
		s := store.NewUserStore(app.client, nil, app.log)
		u, err := s.CreateUser(cmd.Context(), userCreate)
		if err != nil {
			return err
		}
		return printResult(cmd, u, func(w io.Writer) {
			fmt.Fprintf(w, "Created user %q (id %d, role %s)\n", u.Username, u.ID, u.Role)
		})
	},
}

func userStatusCmd(use string, status types.UserStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: output.Title(use) + " a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			id, err := parse.ID(args[0])
			if err != nil {
				return err
			}
			s := store.NewUserStore(app.client, nil, app.log)
			if err := s.UpdateUserStatus(cmd.Context(), id, status); err != nil {
				return err
			}
			return printMessage(cmd, map[string]any{"id": id, "status": status}, "Set user %d to %s", id, status)
		},
	}
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminDashboardCmd, adminLogsCmd, adminUsageCmd, adminUsersCmd)
	adminUsageCmd.AddCommand(adminUsageListCmd, adminUsageStatsCmd, adminUsageGetCmd,
		adminUsageDeleteCmd, adminUsageCleanupCmd)
	addLogFilterFlags(adminUsageListCmd, true)
	adminUsageListCmd.Flags().Int64Var(&usageUserID, "user-id", 0, "Only logs of this user")
	adminUsageStatsCmd.Flags().Int64Var(&usageUserID, "user-id", 0, "Only logs of this user")
	adminUsageCleanupCmd.Flags().IntVar(&usageMonths, "months", 0, "Keep this many months of logs")
	_ = adminUsageCleanupCmd.MarkFlagRequired("months")
	adminUsersCmd.AddCommand(adminUsersListCmd, adminUsersCreateCmd,
		userStatusCmd("enable", types.UserEnabled),
		userStatusCmd("disable", types.UserDisabled))

	adminLogsCmd.Flags().IntVar(&adminLogsParams.Page, "page", 1, "Page number")
	adminLogsCmd.Flags().IntVar(&adminLogsParams.Limit, "limit", 20, "Page size")

	adminUsersListCmd.Flags().IntVar(&usersPage, "page", 1, "Page number")
	adminUsersListCmd.Flags().IntVar(&usersLimit, "limit", 20, "Page size")
	adminUsersListCmd.Flags().BoolVar(&usersReset, "reset", false, "Forget remembered page")

	f := adminUsersCreateCmd.Flags()
	f.StringVar(&userCreate.Email, "email", "", "Email")
	f.StringVar(&userCreate.Password, "password", "", "Initial password")
	f.StringVar(&userCreate.Role, "role", types.RoleUser, "Role: user or admin")
}
