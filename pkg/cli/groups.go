package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
	"github.com/relaydesk/relayctl/pkg/cli/internal/parse"
	"github.com/relaydesk/relayctl/pkg/store"
)

var (
	groupsPage   int
	groupsSize   int
	groupsName   string
	groupsStatus string
	groupsReset  bool

	groupRemark     string
	groupDisabled   bool
	groupOptionsAll bool
)

func parseGroupStatus(s string) (types.GroupStatus, error) {
	return parse.Enum(s,
		[]string{"enabled", "disabled"},
		[]types.GroupStatus{types.GroupEnabled, types.GroupDisabled})
}

func groupRow(g types.Group) string {
	return fmt.Sprintf("%d\t%s\t%s\t%d\t%d\t%s\t%s",
		g.ID, g.Name, output.Title(g.Status.String()), g.APIKeyCount, g.AccountCount,
		output.Dash(g.Remark), output.Dash(g.CreatedAt))
}

const groupHeader = "ID\tNAME\tSTATUS\tKEYS\tACCOUNTS\tREMARK\tCREATED"

var groupsCmd = &cobra.Command{
	Use:     "groups",
	Aliases: []string{"group"},
	Short:   "Manage routing groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	Long: `List groups a page at a time.

Search flags are remembered per context: a later 'relayctl groups list'
shows the same page and filters until --reset is given.`,
	Example: `  relayctl groups list --name prod --status enabled
  relayctl groups list --page 2
  relayctl groups list --reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		var status *types.GroupStatus
		if cmd.Flags().Changed("status") && groupsStatus != "all" {
			st, err := parseGroupStatus(groupsStatus)
			if err != nil {
				return err
			}
			status = &st
		}

		s := store.NewGroupStore(app.client, app.persister, app.log)
		if groupsReset {
			s.ResetParams()
		}
		flags := cmd.Flags()
		err := s.FetchList(cmd.Context(), func(p *types.GroupListParams) {
			if flags.Changed("name") || flags.Changed("status") || flags.Changed("size") {
				p.Page = 1
			}
			if flags.Changed("page") {
				p.Page = groupsPage
			}
			if flags.Changed("size") {
				p.Size = groupsSize
			}
			if flags.Changed("name") {
				p.Name = groupsName
			}
			if flags.Changed("status") {
				p.Status = status
			}
		})
		if err != nil {
			return err
		}

		params := s.Params()
		page := types.Page[types.Group]{Items: s.Items(), Total: s.Total(), Page: params.Page, Limit: params.Size}
		return printList(cmd, page, page.Items, groupHeader, groupRow,
			pageFooter(page.Total, page.Page, page.Limit))
	},
}

var groupsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := parse.ID(args[0])
		if err != nil {
			return err
		}
		g, err := app.client.GetGroup(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printResult(cmd, g, func(w io.Writer) {
			tw := output.Table(w)
			fmt.Fprintf(tw, "ID:\t%d\n", g.ID)
			fmt.Fprintf(tw, "Name:\t%s\n", g.Name)
			fmt.Fprintf(tw, "Status:\t%s\n", output.Title(g.Status.String()))
			fmt.Fprintf(tw, "Remark:\t%s\n", output.Dash(g.Remark))
			fmt.Fprintf(tw, "API keys:\t%d\n", g.APIKeyCount)
			fmt.Fprintf(tw, "Accounts:\t%d\n", g.AccountCount)
			fmt.Fprintf(tw, "Created:\t%s\n", output.Dash(g.CreatedAt))
			fmt.Fprintf(tw, "Updated:\t%s\n", output.Dash(g.UpdatedAt))
			_ = tw.Flush()
		})
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a group",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		req := types.CreateGroupRequest{Remark: groupRemark}
		if len(args) > 0 {
			req.Name = args[0]
		} else {
			// Use huh interactive forms if the name is missing
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Group name").
						Value(&req.Name).
						Validate(func(s string) error {
							if strings.TrimSpace(s) == "" {
								return errors.New("name is required")
							}
							return nil
						}),
					huh.NewInput().
						Title("Remark").
						Value(&req.Remark),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}
		}
		if groupDisabled {
			st := types.GroupDisabled
			req.Status = &st
		}

		s := store.NewGroupStore(app.client, nil, app.log)
		g, err := s.CreateGroup(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printResult(cmd, g, func(w io.Writer) {
			fmt.Fprintf(w, "Created group %q (id %d)\n", g.Name, g.ID)
		})
	},
}

var (
	groupUpdateName   string
	groupUpdateStatus string
)

var groupsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a group's name, remark or status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := parse.ID(args[0])
		if err != nil {
			return err
		}
		var req types.UpdateGroupRequest
		flags := cmd.Flags()
		if flags.Changed("name") {
			req.Name = &groupUpdateName
		}
		if flags.Changed("remark") {
			req.Remark = &groupRemark
		}
		if flags.Changed("status") {
			st, err := parseGroupStatus(groupUpdateStatus)
			if err != nil {
				return err
			}
			req.Status = &st
		}
		if req.Name == nil && req.Remark == nil && req.Status == nil {
			return errors.New("nothing to update: pass --name, --remark or --status")
		}

		s := store.NewGroupStore(app.client, nil, app.log)
		g, err := s.UpdateGroup(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		return printResult(cmd, g, func(w io.Writer) {
			fmt.Fprintf(w, "Updated group %d\n", g.ID)
		})
	},
}

var groupsDeleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete one or more groups",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		ids, err := parse.IDs(args)
		if err != nil {
			return err
		}
		s := store.NewGroupStore(app.client, nil, app.log)
		if err := s.DeleteGroups(cmd.Context(), ids...); err != nil {
			return err
		}
		return printMessage(cmd, map[string]any{"ids": ids}, "Deleted %s", countNoun(len(ids), "group"))
	},
}

func groupStatusCmd(use string, status types.GroupStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: output.Title(use) + " one or more groups",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			ids, err := parse.IDs(args)
			if err != nil {
				return err
			}
			s := store.NewGroupStore(app.client, nil, app.log)
			if err := s.UpdateGroupStatuses(cmd.Context(), status, ids...); err != nil {
				return err
			}
			return printMessage(cmd, map[string]any{"ids": ids, "status": status},
				"Set %s to %s", countNoun(len(ids), "group"), status)
		},
	}
}

var groupsOptionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List enabled group names and ids for use in other commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		s := store.NewGroupStore(app.client, app.persister, app.log)
		var err error
		if groupOptionsAll {
			err = s.LoadAll(cmd.Context())
		} else {
			err = s.FetchList(cmd.Context(), nil)
		}
		if err != nil {
			return err
		}
		opts := s.GroupOptions()
		return printList(cmd, opts, opts, "ID\tNAME",
			func(o types.GroupOption) string { return fmt.Sprintf("%d\t%s", o.Value, o.Label) }, "")
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	groupsCmd.AddCommand(groupsListCmd, groupsGetCmd, groupsCreateCmd, groupsUpdateCmd,
		groupsDeleteCmd, groupsOptionsCmd,
		groupStatusCmd("enable", types.GroupEnabled),
		groupStatusCmd("disable", types.GroupDisabled))

	groupsListCmd.Flags().IntVar(&groupsPage, "page", 1, "Page number")
	groupsListCmd.Flags().IntVar(&groupsSize, "size", 20, "Page size")
	groupsListCmd.Flags().StringVar(&groupsName, "name", "", "Filter by name")
	groupsListCmd.Flags().StringVar(&groupsStatus, "status", "", "Filter by status: enabled, disabled or all")
	groupsListCmd.Flags().BoolVar(&groupsReset, "reset", false, "Forget remembered page and filters")

	groupsCreateCmd.Flags().StringVar(&groupRemark, "remark", "", "Remark")
	groupsCreateCmd.Flags().BoolVar(&groupDisabled, "disabled", false, "Create the group disabled")

	groupsUpdateCmd.Flags().StringVar(&groupUpdateName, "name", "", "New name")
	groupsUpdateCmd.Flags().StringVar(&groupRemark, "remark", "", "New remark")
	groupsUpdateCmd.Flags().StringVar(&groupUpdateStatus, "status", "", "New status: enabled or disabled")

	groupsOptionsCmd.Flags().BoolVar(&groupOptionsAll, "all", false, "All groups instead of the current page")
}

// countNoun renders "1 group" / "3 groups".
func countNoun(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
