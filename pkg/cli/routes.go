package cli

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
	"github.com/relaydesk/relayctl/pkg/route"
)

// routeOutput is the JSON form of a resolved route.
type routeOutput struct {
	Path       string        `json:"path"`
	Name       string        `json:"name,omitempty"`
	Title      string        `json:"title,omitempty"`
	Component  string        `json:"component,omitempty"`
	View       route.ViewID  `json:"view"`
	Command    string        `json:"command,omitempty"`
	Hidden     bool          `json:"hidden,omitempty"`
	Unresolved bool          `json:"unresolved,omitempty"`
	Children   []routeOutput `json:"children,omitempty"`
}

func toRouteOutput(routes []route.Route, parent string) []routeOutput {
	out := make([]routeOutput, 0, len(routes))
	for _, rt := range routes {
		full := rt.Path
		if !strings.HasPrefix(full, "/") && parent != "" {
			full = path.Join(parent, full)
		}
		ro := routeOutput{
			Path:       full,
			Name:       rt.Name,
			Title:      rt.Meta.Title,
			Component:  rt.Component,
			View:       rt.View.ID,
			Hidden:     rt.Meta.Hidden,
			Unresolved: rt.Unresolved,
			Children:   toRouteOutput(rt.Children, full),
		}
		if len(rt.View.Command) > 0 {
			ro.Command = "relayctl " + strings.Join(rt.View.Command, " ")
		}
		out = append(out, ro)
	}
	return out
}

func printRouteTree(tw io.Writer, routes []routeOutput, depth int) {
	for _, r := range routes {
		title := r.Title
		if r.Unresolved {
			title += " (unresolved: " + r.Component + ")"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\n",
			strings.Repeat("  ", depth), r.Path, r.View, output.Dash(title), output.Dash(r.Command))
		printRouteTree(tw, r.Children, depth+1)
	}
}

// resolveMenu fetches the menu of the signed-in user and resolves it.
func resolveMenu(cmd *cobra.Command) ([]route.Route, error) {
	items, err := app.client.MenuList(cmd.Context())
	if err != nil {
		return nil, err
	}
	return route.Default(app.log).Resolve(items), nil
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Show the console pages available to you",
	Long: `Fetch the menu of the signed-in user, resolve every entry to a page, and
print the tree. Entries the console does not know are marked unresolved and
open the not-found page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		routes, err := resolveMenu(cmd)
		if err != nil {
			return err
		}
		out := toRouteOutput(routes, "")
		return printResult(cmd, out, func(w io.Writer) {
			tw := output.Table(w)
			fmt.Fprintln(tw, "PATH\tVIEW\tTITLE\tCOMMAND")
			printRouteTree(tw, out, 0)
			_ = tw.Flush()
		})
	},
}

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Run the command behind a console page",
	Example: `  relayctl open /group/list
  relayctl open /logs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		routes, err := resolveMenu(cmd)
		if err != nil {
			return err
		}
		flat := route.Flatten(routes)
		rt, ok := route.Match(flat, args[0])
		if !ok {
			return fmt.Errorf("no page at %s", args[0])
		}
		if rt.Unresolved {
			return fmt.Errorf("page %s (%s) is not supported by this version of relayctl", args[0], rt.Component)
		}
		rt = landingPage(flat, rt)
		if len(rt.View.Command) == 0 {
			return fmt.Errorf("%s has no page to open", args[0])
		}

		target, rest, err := cmd.Root().Find(rt.View.Command)
		if err != nil {
			return err
		}
		if target.RunE == nil {
			return errors.New("page command is not runnable: " + strings.Join(rt.View.Command, " "))
		}
		if err := target.ParseFlags(rest); err != nil {
			return err
		}
		target.SetContext(cmd.Context())
		target.SetOut(cmd.OutOrStdout())
		app.log.Debug("opening page", "path", args[0], "view", rt.View.ID, "command", rt.View.Command)
		return target.RunE(target, target.Flags().Args())
	},
}

// landingPage follows a layout's redirect, or falls back to its first page.
func landingPage(flat map[string]route.Route, rt route.Route) route.Route {
	if !rt.View.ID.IsLayout() {
		return rt
	}
	if rt.Redirect != "" {
		if target, ok := route.Match(flat, rt.Redirect); ok && !target.View.ID.IsLayout() && !target.Unresolved {
			return target
		}
	}
	for _, child := range rt.Children {
		if child.Unresolved {
			continue
		}
		if page := landingPage(flat, child); len(page.View.Command) > 0 {
			return page
		}
	}
	return rt
}

func init() {
	rootCmd.AddCommand(routesCmd, openCmd)
}
