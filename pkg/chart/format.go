package chart

import (
	"math"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// shortDate renders a date as MM-DD. Dates in an unknown layout pass through.
func shortDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("01-02")
		}
	}
	return s
}

// round2 rounds to two decimals, the precision costs are shown with.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
