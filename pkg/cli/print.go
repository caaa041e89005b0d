package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/relaydesk/relayctl/pkg/cli/internal/output"
)

// printResult outputs a single operation result.
//
// Contract: when --json or --jsonpath is active, ONLY the encoding of data
// is written to stdout. Human-readable prose (progress messages, hints) must
// go to stderr or be omitted entirely. textFn is called only in text mode.
func printResult(cmd *cobra.Command, data any, textFn func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	switch {
	case jsonPathFlag != "":
		return output.JSONPath(w, data, jsonPathFlag)
	case jsonOutput:
		return output.JSON(w, data)
	}
	textFn(w)
	return nil
}

// printList outputs a collection as a table. header and row describe the
// columns; footer, if non-empty, is printed below the table.
func printList[T any](cmd *cobra.Command, data any, items []T, header string, row func(T) string, footer string) error {
	return printResult(cmd, data, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintln(w, "No results")
			return
		}
		tw := output.Table(w)
		fmt.Fprintln(tw, header)
		for _, item := range items {
			fmt.Fprintln(tw, row(item))
		}
		_ = tw.Flush()
		if footer != "" {
			fmt.Fprintln(w, footer)
		}
	})
}

// printMessage prints a confirmation in text mode, or {"ok":true,...} in JSON mode.
func printMessage(cmd *cobra.Command, data map[string]any, format string, args ...any) error {
	if data == nil {
		data = map[string]any{}
	}
	data["ok"] = true
	return printResult(cmd, data, func(w io.Writer) {
		fmt.Fprintf(w, format+"\n", args...)
	})
}

func pageFooter(total, page, limit int) string {
	if limit <= 0 {
		return fmt.Sprintf("Total: %s", output.Int(int64(total)))
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return fmt.Sprintf("Total: %s (page %d of %d)", output.Int(int64(total)), page, pages)
}

// printRequestStats summarizes the client request counters.
func printRequestStats(w io.Writer, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		output.Warn(w, "failed to gather request stats: %v", err)
		return
	}
	type row struct {
		op, outcome string
		n           float64
	}
	var rows []row
	for _, mf := range families {
		if mf.GetName() != "relayctl_client_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			r := row{n: m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "op":
					r.op = lp.GetValue()
				case "outcome":
					r.outcome = lp.GetValue()
				}
			}
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "No backend requests")
		return
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].op != rows[j].op {
			return rows[i].op < rows[j].op
		}
		return rows[i].outcome < rows[j].outcome
	})
	tw := output.Table(w)
	fmt.Fprintln(tw, "OPERATION\tOUTCOME\tREQUESTS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.op, r.outcome, output.Int(int64(r.n)))
	}
	_ = tw.Flush()
}
