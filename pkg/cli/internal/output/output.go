// Package output provides common output formatting utilities.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// JSON writes indented JSON to w.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSONPath writes the values of v selected by path, one per line. Strings
// are written bare; everything else as compact JSON.
func JSONPath(w io.Writer, v any, path string) error {
	expr, err := jp.ParseString(path)
	if err != nil {
		return fmt.Errorf("invalid jsonpath %q: %w", path, err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	doc, err := oj.Parse(data)
	if err != nil {
		return err
	}
	for _, res := range expr.Get(doc) {
		if s, ok := res.(string); ok {
			fmt.Fprintln(w, s)
			continue
		}
		fmt.Fprintln(w, oj.JSON(res))
	}
	return nil
}

// Table creates an aligned table writer.
// Remember to call Flush() when done writing.
func Table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Warn prints a warning message to w, normally stderr.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Warning: "+format+"\n", args...)
}

var (
	printer = message.NewPrinter(language.English)
	title   = cases.Title(language.English)
)

// Int formats n with thousands separators.
func Int(n int64) string {
	return printer.Sprintf("%d", n)
}

// Cost formats a dollar amount with thousands separators and four decimals.
func Cost(v float64) string {
	return printer.Sprintf("$%.4f", v)
}

// Percent formats v, already in percent, with one decimal.
func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

// Title turns a status word into a label ("rate-limited" → "Rate Limited").
func Title(s string) string {
	return title.String(strings.ReplaceAll(s, "-", " "))
}

// Dash substitutes "-" for an empty string.
func Dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
