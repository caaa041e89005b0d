package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/cliconfig"
	"github.com/relaydesk/relayctl/pkg/client"
	"github.com/relaydesk/relayctl/pkg/logging"
	"github.com/relaydesk/relayctl/pkg/store/persist"
)

var (
	// Persistent flags available to all subcommands
	serverFlag    string
	contextFlag   string
	jsonOutput    bool
	jsonPathFlag  string
	logLevelFlag  string
	logFormatFlag string
	statsFlag     bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// errNotLoggedIn is returned by commands that need a session when there is none.
var errNotLoggedIn = errors.New("not logged in - sign in with: relayctl login")

// app is what setup resolved for the running command.
var app struct {
	cfg       *cliconfig.CLIConfig
	contexts  *cliconfig.ContextConfig
	conn      *cliconfig.ClientConfig
	log       *slog.Logger
	client    *client.Client
	metrics   *prometheus.Registry
	persister persist.Persister
	logFile   *os.File
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "relayctl",
	Short: "relayctl administers a relay gateway backend",
	Long: `relayctl is the operator console of a relay gateway: it manages routing
groups, upstream provider accounts, API keys and users, and reports usage
logs and cost statistics.

Configuration can be provided via flags, environment variables (RELAYCTL_*),
a local .relayctlrc.yaml or the global config at
$XDG_CONFIG_HOME/relayctl/config.yaml. Named servers and their sessions are
kept as contexts; see 'relayctl context'.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Main()
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

// Main runs the command line and returns the process exit code.
func Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, FormatConnectionError(err))
		return 1
	}
	return 0
}

// Execute runs the command line and exits. This is called by main.main().
func Execute() {
	os.Exit(Main())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&serverFlag, "server", "", "Backend URL (default from context or config: "+cliconfig.DefaultServer+")")
	pf.StringVar(&contextFlag, "context", "", "Context to use instead of the current one")
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVar(&jsonPathFlag, "jsonpath", "", "Print only the values selected by a JSONPath expression")
	pf.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormatFlag, "log-format", "", "Log format: text or json")
	pf.BoolVar(&statsFlag, "stats", false, "Print backend request counts to stderr when done")
}

// setup resolves configuration, logging and the API client.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	contexts, err := cliconfig.LoadContextConfig()
	if err != nil {
		return err
	}
	conn := cliconfig.ResolveClientConfig(cfg, contexts, serverFlag, contextFlag)
	log.Debug("resolved client config", "server", conn.Server, "context", conn.ContextName,
		"timeout", conn.Timeout, "has_token", conn.Token != "")

	app.cfg = cfg
	app.contexts = contexts
	app.conn = conn
	app.log = log
	app.metrics = prometheus.NewRegistry()
	app.client = client.New(conn.Server, clientOptions(conn, log)...)
	app.persister = persist.NewFilePersister(filepath.Join(persist.DefaultStateDir(), conn.ContextName))
	return nil
}

func clientOptions(conn *cliconfig.ClientConfig, log *slog.Logger) []client.Option {
	opts := []client.Option{
		client.WithTimeout(conn.Timeout),
		client.WithToken(conn.Token),
		client.WithLogger(log),
		client.WithMetrics(app.metrics),
	}
	if conn.RateLimit > 0 {
		opts = append(opts, client.WithRateLimit(conn.RateLimit, 1))
	}
	if conn.BreakerFailures > 0 {
		opts = append(opts, client.WithCircuitBreaker(client.BreakerSettings{
			ConsecutiveFailures: uint32(conn.BreakerFailures),
		}))
	}
	return opts
}

// applyFlags layers explicitly given flags over cfg.
func applyFlags(cmd *cobra.Command, cfg *cliconfig.CLIConfig) {
	flags := &cliconfig.CLIConfig{SetFields: map[string]bool{}}
	if cmd.Flags().Changed("server") {
		flags.Server = serverFlag
	}
	if cmd.Flags().Changed("log-level") {
		flags.LogLevel = logLevelFlag
	}
	if cmd.Flags().Changed("log-format") {
		flags.LogFormat = logFormatFlag
	}
	if cmd.Flags().Changed("json") {
		flags.JSON = jsonOutput
		flags.SetFields["json"] = true
	}
	cliconfig.MergeConfig(cfg, flags, cliconfig.SourceFlag)
	jsonOutput = cfg.JSON
}

func newLogger(cfg *cliconfig.CLIConfig) (*slog.Logger, error) {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.LogLevel)
	lc.Format = logging.ParseFormat(cfg.LogFormat)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		app.logFile = f
		lc.File = f
	}
	return logging.New(lc), nil
}

func teardown(cmd *cobra.Command, _ []string) {
	if statsFlag && app.metrics != nil {
		printRequestStats(cmd.ErrOrStderr(), app.metrics)
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

// requireSession fails early when no token is configured.
func requireSession() error {
	if app.client.Token() == "" {
		return errNotLoggedIn
	}
	return nil
}
