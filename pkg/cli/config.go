package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
	"github.com/relaydesk/relayctl/pkg/cliconfig"
)

// configValue is one effective setting and where it came from.
type configValue struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func effectiveConfig() []configValue {
	cfg, conn := app.cfg, app.conn
	source := func(key string) string {
		if s := cfg.Sources[key]; s != "" {
			return s
		}
		return cliconfig.SourceDefault
	}

	serverSource := source("server")
	switch {
	case serverFlag != "":
		serverSource = cliconfig.SourceFlag
	case serverSource == cliconfig.SourceEnv:
	case conn.Server != cfg.Server:
		serverSource = cliconfig.SourceContext + " " + conn.ContextName
	}
	tokenSource := "none"
	if cliconfig.GetTokenFromEnv() != "" {
		tokenSource = cliconfig.SourceEnv
	} else if conn.Token != "" {
		tokenSource = cliconfig.SourceContext + " " + conn.ContextName
	}
	token := "(none)"
	if conn.Token != "" {
		token = "(set)"
	}

	return []configValue{
		{"server", conn.Server, serverSource},
		{"context", conn.ContextName, contextSource()},
		{"token", token, tokenSource},
		{"timeout", strconv.Itoa(cfg.Timeout) + "s", source("timeout")},
		{"rateLimit", strconv.FormatFloat(cfg.RateLimit, 'g', -1, 64), source("rateLimit")},
		{"breakerFailures", strconv.Itoa(cfg.BreakerFailures), source("breakerFailures")},
		{"logLevel", cfg.LogLevel, source("logLevel")},
		{"logFormat", cfg.LogFormat, source("logFormat")},
		{"logFile", cfg.LogFile, source("logFile")},
		{"json", strconv.FormatBool(cfg.JSON), source("json")},
	}
}

func contextSource() string {
	switch {
	case contextFlag != "":
		return cliconfig.SourceFlag
	case cliconfig.GetContextFromEnv() != "":
		return cliconfig.SourceEnv
	}
	return "contexts.json"
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration and where each value comes from",
	RunE: func(cmd *cobra.Command, args []string) error {
		values := effectiveConfig()
		return printResult(cmd, values, func(w io.Writer) {
			tw := output.Table(w)
			fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
			for _, v := range values {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Key, output.Dash(v.Value), v.Source)
			}
			_ = tw.Flush()

			fmt.Fprintln(w)
			if p, err := cliconfig.FindLocalConfig(); err == nil && p != "" {
				fmt.Fprintf(w, "Local config:  %s\n", p)
			}
			if p, err := cliconfig.FindGlobalConfig(); err == nil && p != "" {
				fmt.Fprintf(w, "Global config: %s\n", p)
			}
			if p, err := cliconfig.GetContextConfigPath(); err == nil {
				fmt.Fprintf(w, "Contexts:      %s\n", p)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
