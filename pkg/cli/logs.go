package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
	"github.com/relaydesk/relayctl/pkg/cli/internal/parse"
	"github.com/relaydesk/relayctl/pkg/store"
)

// backendTime is the layout the backend uses for log time filters.
const backendTime = "2006-01-02 15:04:05"

const logHeader = "TIME\tMODEL\tINPUT\tOUTPUT\tCACHE R/W\tCOST\tSTREAM\tDURATION"

func logRow(l types.Log) string {
	stream := "no"
	if l.IsStream {
		stream = "yes"
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s/%s\t%s\t%s\t%dms",
		l.CreatedAt, l.ModelName, output.Int(l.InputTokens), output.Int(l.OutputTokens),
		output.Int(l.CacheReadInputTokens), output.Int(l.CacheCreationInputTokens),
		output.Cost(l.TotalCost), stream, l.Duration)
}

func printLogTable(w io.Writer, logs []types.Log) {
	tw := output.Table(w)
	fmt.Fprintln(tw, logHeader)
	for _, l := range logs {
		fmt.Fprintln(tw, logRow(l))
	}
	_ = tw.Flush()
}

// logFlags are shared by 'logs my', 'logs stats' and 'admin usage list'.
var logFlags struct {
	page      int
	limit     int
	accountID int64
	apiKeyID  int64
	model     string
	stream    string
	since     string
	until     string
	minCost   float64
	maxCost   float64
	reset     bool
}

func addLogFilterFlags(cmd *cobra.Command, paged bool) {
	f := cmd.Flags()
	if paged {
		f.IntVar(&logFlags.page, "page", 1, "Page number")
		f.IntVar(&logFlags.limit, "limit", 20, "Page size")
		f.BoolVar(&logFlags.reset, "reset", false, "Forget remembered page and filters")
	}
	f.Int64Var(&logFlags.accountID, "account-id", 0, "Only requests served by this account")
	f.Int64Var(&logFlags.apiKeyID, "api-key-id", 0, "Only requests made with this key")
	f.StringVar(&logFlags.model, "model", "", "Only this model")
	f.StringVar(&logFlags.stream, "stream", "", "Only streamed (yes) or non-streamed (no) requests")
	f.StringVar(&logFlags.since, "since", "", `Start time ("2006-01-02 15:04:05", a date, or a duration like 24h)`)
	f.StringVar(&logFlags.until, "until", "", "End time, same forms as --since")
	f.Float64Var(&logFlags.minCost, "min-cost", 0, "Minimum cost in dollars")
	f.Float64Var(&logFlags.maxCost, "max-cost", 0, "Maximum cost in dollars")
}

// parseLogTime accepts the backend layout, a bare date, or a duration
// counted back from now.
func parseLogTime(s string, now time.Time) (string, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d).Format(backendTime), nil
	}
	if t, err := time.ParseInLocation(backendTime, s, time.Local); err == nil {
		return t.Format(backendTime), nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t.Format(backendTime), nil
	}
	return "", fmt.Errorf("invalid time %q", s)
}

// patchLogFilter applies the flags the user gave to f.
func patchLogFilter(cmd *cobra.Command, f *types.LogFilter) error {
	flags := cmd.Flags()
	changedFilter := false
	for _, name := range []string{"account-id", "api-key-id", "model", "stream", "since", "until", "min-cost", "max-cost", "limit"} {
		if flags.Changed(name) {
			changedFilter = true
		}
	}
	if changedFilter {
		f.Page = 1
	}
	if flags.Changed("page") {
		f.Page = logFlags.page
	}
	if flags.Changed("limit") {
		f.Limit = logFlags.limit
	}
	if flags.Changed("account-id") {
		f.AccountID = logFlags.accountID
	}
	if flags.Changed("api-key-id") {
		f.APIKeyID = logFlags.apiKeyID
	}
	if flags.Changed("model") {
		f.ModelName = logFlags.model
	}
	if flags.Changed("stream") {
		if logFlags.stream == "" || logFlags.stream == "all" {
			f.IsStream = nil
		} else {
			b, err := parse.Bool(logFlags.stream)
			if err != nil {
				return fmt.Errorf("--stream: %w", err)
			}
			f.IsStream = &b
		}
	}
	now := time.Now()
	for _, tf := range []struct {
		flag string
		val  string
		dst  *string
	}{
		{"since", logFlags.since, &f.StartTime},
		{"until", logFlags.until, &f.EndTime},
	} {
		if !flags.Changed(tf.flag) {
			continue
		}
		if tf.val == "" {
			*tf.dst = ""
			continue
		}
		ts, err := parseLogTime(tf.val, now)
		if err != nil {
			return fmt.Errorf("--%s: %w", tf.flag, err)
		}
		*tf.dst = ts
	}
	if flags.Changed("min-cost") {
		v := logFlags.minCost
		f.MinCost = &v
	}
	if flags.Changed("max-cost") {
		v := logFlags.maxCost
		f.MaxCost = &v
	}
	return nil
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect your usage logs",
}

var logsMyCmd = &cobra.Command{
	Use:   "my",
	Short: "List your usage logs",
	Example: `  relayctl logs my --since 24h --model claude-3-5-sonnet-20241022
  relayctl logs my --stream yes --min-cost 0.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		s := store.NewLogStore(app.client, app.persister, app.log)
		if logFlags.reset {
			s.ResetParams()
		}
		filter := s.Params()
		if err := patchLogFilter(cmd, &filter); err != nil {
			return err
		}
		err := s.FetchList(cmd.Context(), func(f *types.LogFilter) { *f = filter })
		if err != nil {
			return err
		}
		params := s.Params()
		page := types.Page[types.Log]{Items: s.Items(), Total: s.Total(), Page: params.Page, Limit: params.Limit}
		return printList(cmd, page, page.Items, logHeader, logRow,
			pageFooter(page.Total, page.Page, page.Limit))
	},
}

var logsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize your usage logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		var filter types.LogFilter
		if err := patchLogFilter(cmd, &filter); err != nil {
			return err
		}
		st, err := app.client.MyLogStats(cmd.Context(), filter)
		if err != nil {
			return err
		}
		return printLogStats(cmd, st)
	},
}

func printLogStats(cmd *cobra.Command, st *types.LogStats) error {
	return printResult(cmd, st, func(w io.Writer) {
		tw := output.Table(w)
		fmt.Fprintf(tw, "Requests:\t%s\n", output.Int(st.TotalRequests))
		fmt.Fprintf(tw, "Streamed:\t%s (%s)\n", output.Int(st.StreamRequests), output.Percent(st.StreamPercent))
		fmt.Fprintf(tw, "Tokens:\t%s\n", output.Int(st.TotalTokens))
		fmt.Fprintf(tw, "Cost:\t%s\n", output.Cost(st.TotalCost))
		fmt.Fprintf(tw, "Avg duration:\t%.0fms\n", st.AvgDuration)
		_ = tw.Flush()
	})
}

var logsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one usage log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		l, err := app.client.GetLog(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printLogDetail(cmd, l)
	},
}

func printLogDetail(cmd *cobra.Command, l *types.Log) error {
	return printResult(cmd, l, func(w io.Writer) {
		tw := output.Table(w)
		fmt.Fprintf(tw, "ID:\t%s\n", l.ID)
		if l.User != nil {
			fmt.Fprintf(tw, "User:\t%s (id %d)\n", l.User.Username, l.User.ID)
		}
		fmt.Fprintf(tw, "Time:\t%s\n", l.CreatedAt)
		fmt.Fprintf(tw, "Model:\t%s\n", l.ModelName)
		fmt.Fprintf(tw, "Account / key:\t%d / %d\n", l.AccountID, l.APIKeyID)
		fmt.Fprintf(tw, "Tokens:\t%s in / %s out / %s cache read / %s cache write\n",
			output.Int(l.InputTokens), output.Int(l.OutputTokens),
			output.Int(l.CacheReadInputTokens), output.Int(l.CacheCreationInputTokens))
		fmt.Fprintf(tw, "Cost:\t%s (in %s, out %s, cache write %s, cache read %s)\n",
			output.Cost(l.TotalCost), output.Cost(l.InputCost), output.Cost(l.OutputCost),
			output.Cost(l.CacheWriteCost), output.Cost(l.CacheReadCost))
		fmt.Fprintf(tw, "Stream:\t%t\n", l.IsStream)
		fmt.Fprintf(tw, "Duration:\t%dms\n", l.Duration)
		_ = tw.Flush()
	})
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsMyCmd, logsStatsCmd, logsGetCmd)
	addLogFilterFlags(logsMyCmd, true)
	addLogFilterFlags(logsStatsCmd, false)
}
