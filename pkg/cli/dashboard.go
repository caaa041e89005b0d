package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/chart"
	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
	"github.com/relaydesk/relayctl/pkg/cli/internal/parse"
)

var (
	dashboardChart string
	dashboardTheme string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show usage and cost statistics",
	Long: `Show the dashboard summary: totals, today against yesterday, and the
model, account and API key leaderboards.

With --chart the chart configuration for one dashboard panel is printed as
JSON instead, ready to hand to ECharts.`,
	Example: `  relayctl dashboard
  relayctl dashboard --chart trend --theme dark`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		var theme chart.Theme
		if dashboardChart != "" {
			var err error
			theme, err = parse.Enum(dashboardTheme, []string{"light", "dark"}, []chart.Theme{chart.LightTheme, chart.DarkTheme})
			if err != nil {
				return fmt.Errorf("--theme: %w", err)
			}
		}

		st, err := app.client.DashboardStats(cmd.Context())
		if err != nil {
			return err
		}

		if dashboardChart != "" {
			opt, err := dashboardChartOption(st, dashboardChart, theme)
			if err != nil {
				return err
			}
			if jsonPathFlag != "" {
				return output.JSONPath(cmd.OutOrStdout(), opt, jsonPathFlag)
			}
			return output.JSON(cmd.OutOrStdout(), opt)
		}
		return printResult(cmd, st, func(w io.Writer) { printDashboard(w, st) })
	},
}

func dashboardChartOption(st *types.DashboardStats, kind string, theme chart.Theme) (chart.Option, error) {
	switch kind {
	case "trend":
		return chart.TrendChart(st.TrendData, theme), nil
	case "pie":
		return chart.ModelPieChart(st.ModelStats, theme), nil
	case "mini-line":
		return chart.MiniChart(chart.KindLine, st.TrendData)
	case "mini-bar":
		return chart.MiniChart(chart.KindBar, st.TrendData)
	}
	return chart.Option{}, fmt.Errorf("unknown chart %q (want trend, pie, mini-line or mini-bar)", kind)
}

// growth renders the change from prev to cur as a signed percentage.
func growth(cur, prev float64) string {
	if prev == 0 {
		if cur == 0 {
			return "0.0%"
		}
		return "new"
	}
	g := (cur - prev) / prev * 100
	if g > 0 {
		return "+" + output.Percent(g)
	}
	return output.Percent(g)
}

func printDashboard(w io.Writer, st *types.DashboardStats) {
	tw := output.Table(w)
	fmt.Fprintf(tw, "Total cost:\t%s\n", output.Cost(st.TotalCost))
	fmt.Fprintf(tw, "Total tokens:\t%s\n", output.Int(st.TotalTokens))
	fmt.Fprintf(tw, "Users:\t%s\n", output.Int(st.UserCount))
	fmt.Fprintf(tw, "API keys:\t%s\n", output.Int(st.APIKeyCount))
	today, yday := st.TodayStats, st.YesterdayStats
	fmt.Fprintf(tw, "Today:\t%s requests, %s tokens, %s (%s vs yesterday)\n",
		output.Int(today.Requests), output.Int(today.Tokens), output.Cost(today.Cost),
		growth(today.Cost, yday.Cost))
	_ = tw.Flush()

	if len(st.ModelStats) > 0 {
		fmt.Fprintln(w, "\nModels:")
		tw = output.Table(w)
		fmt.Fprintln(tw, "MODEL\tREQUESTS\tTOKENS\tCOST")
		for _, m := range st.ModelStats {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ModelName, output.Int(m.Requests), output.Int(m.Tokens), output.Cost(m.Cost))
		}
		_ = tw.Flush()
	}
	if len(st.AccountRanking) > 0 {
		fmt.Fprintln(w, "\nTop accounts:")
		tw = output.Table(w)
		fmt.Fprintln(tw, "ACCOUNT\tPLATFORM\tREQUESTS\tCOST\tGROWTH")
		for _, a := range st.AccountRanking {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.AccountName, a.PlatformType,
				output.Int(a.Requests), output.Cost(a.Cost), output.Percent(a.GrowthRate))
		}
		_ = tw.Flush()
	}
	if len(st.APIKeyRanking) > 0 {
		fmt.Fprintln(w, "\nTop API keys:")
		tw = output.Table(w)
		fmt.Fprintln(tw, "KEY\tREQUESTS\tCOST\tGROWTH")
		for _, k := range st.APIKeyRanking {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.APIKeyName,
				output.Int(k.Requests), output.Cost(k.Cost), output.Percent(k.GrowthRate))
		}
		_ = tw.Flush()
	}
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashboardChart, "chart", "", "Print a chart option instead: trend, pie, mini-line, mini-bar")
	dashboardCmd.Flags().StringVar(&dashboardTheme, "theme", "light", "Chart theme: light or dark")
}
