package cli

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
	"github.com/relaydesk/relayctl/pkg/cliconfig"
)

// contextForJSON is a sanitized version of Context for JSON output.
// It masks the session token to prevent accidental exposure.
type contextForJSON struct {
	Name        string `json:"name"`
	Server      string `json:"server"`
	Description string `json:"description,omitempty"`
	Username    string `json:"username,omitempty"`
	HasToken    bool   `json:"hasToken"`
	Current     bool   `json:"current"`
}

func sanitizeContext(name string, ctx *cliconfig.Context, current string) contextForJSON {
	return contextForJSON{
		Name:        name,
		Server:      ctx.Server,
		Description: ctx.Description,
		Username:    ctx.Username,
		HasToken:    ctx.Token != "",
		Current:     name == current,
	}
}

func sortedContextNames(cfg *cliconfig.ContextConfig) []string {
	names := make([]string, 0, len(cfg.Contexts))
	for n := range cfg.Contexts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage contexts (backend server + session pairs)",
	RunE:  runContextShow,
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current context",
	RunE:  runContextShow,
}

// runContextShow displays the effective context.
func runContextShow(cmd *cobra.Command, _ []string) error {
	cfg := app.contexts
	name := cliconfig.ResolveContext(contextFlag, cfg)
	envOverride := contextFlag == "" && cliconfig.GetContextFromEnv() != ""

	ctx := cfg.Contexts[name]
	if ctx == nil {
		if envOverride {
			return fmt.Errorf("context %q (from %s) not found", name, cliconfig.EnvContext)
		}
		return fmt.Errorf("context %q not found - add it with: relayctl context add %s --server <url>", name, name)
	}

	return printResult(cmd, sanitizeContext(name, ctx, cfg.CurrentContext), func(w io.Writer) {
		fmt.Fprintf(w, "Current context: %s", name)
		if envOverride {
			fmt.Fprintf(w, "  (from %s)", cliconfig.EnvContext)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Server:      %s\n", ctx.Server)
		if ctx.Username != "" {
			fmt.Fprintf(w, "  Signed in:   %s\n", ctx.Username)
		} else {
			fmt.Fprintln(w, "  Signed in:   no")
		}
		if ctx.Description != "" {
			fmt.Fprintf(w, "  Description: %s\n", ctx.Description)
		}
	})
}

var contextListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.contexts
		names := sortedContextNames(cfg)
		items := make([]contextForJSON, len(names))
		for i, n := range names {
			items[i] = sanitizeContext(n, cfg.Contexts[n], cfg.CurrentContext)
		}
		return printList(cmd, items, items, "CURRENT\tNAME\tSERVER\tUSER\tDESCRIPTION", func(c contextForJSON) string {
			marker := ""
			if c.Current {
				marker = "*"
			}
			return fmt.Sprintf("%s\t%s\t%s\t%s\t%s", marker, c.Name, c.Server, output.Dash(c.Username), c.Description)
		}, "")
	},
}

var contextUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch to a different context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg := app.contexts

		if err := cfg.SetCurrentContext(name); err != nil {
			// List available contexts in error message
			return fmt.Errorf("%w\n\nAvailable contexts: %s", err, strings.Join(sortedContextNames(cfg), ", "))
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save context config: %w", err)
		}
		return printMessage(cmd, map[string]any{"context": name}, "Switched to context %q (%s)", name, cfg.Contexts[name].Server)
	},
}

var (
	contextAddServer      string
	contextAddDescription string
	contextAddUseCurrent  bool
)

var contextAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		// Validate name
		if len(name) > 64 {
			return errors.New("context name cannot exceed 64 characters")
		}
		if strings.ContainsAny(name, " \t\n/\\") {
			return errors.New("context name cannot contain whitespace or path separators")
		}
		if contextAddServer == "" {
			return errors.New("--server is required")
		}
		u, err := url.Parse(contextAddServer)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid server URL %q: must be http(s)://host[:port]", contextAddServer)
		}

		cfg := app.contexts
		err = cfg.AddContext(name, &cliconfig.Context{
			Server:      strings.TrimRight(contextAddServer, "/"),
			Description: contextAddDescription,
		})
		if err != nil {
			return err
		}
		if contextAddUseCurrent {
			cfg.CurrentContext = name
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save context config: %w", err)
		}
		msg := fmt.Sprintf("Added context %q", name)
		if contextAddUseCurrent {
			msg += " and switched to it"
		}
		return printMessage(cmd, map[string]any{"context": name}, "%s", msg)
	},
}

var contextRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a context",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.contexts
		if err := cfg.RemoveContext(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save context config: %w", err)
		}
		return printMessage(cmd, map[string]any{"context": args[0]}, "Removed context %q", args[0])
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.AddCommand(contextShowCmd, contextListCmd, contextUseCmd, contextAddCmd, contextRemoveCmd)

	contextAddCmd.Flags().StringVar(&contextAddServer, "server", "", "Backend URL, e.g. https://relay.example.com")
	contextAddCmd.Flags().StringVar(&contextAddDescription, "description", "", "Description")
	contextAddCmd.Flags().BoolVar(&contextAddUseCurrent, "use", false, "Switch to the new context")
}
