package chart

import (
	"fmt"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

// Kind selects the mini chart style.
type Kind string

// Mini chart kinds.
const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
)

// MiniPoints is how many trailing days a mini chart shows.
const MiniPoints = 7

const miniColor = "#fff"

// MiniChart builds the small sparkline shown on a dashboard card from the
// last MiniPoints days of trend. A line chart plots cost; a bar chart plots
// tokens with the two most recent bars highlighted.
func MiniChart(kind Kind, trend []types.TrendPoint) (Option, error) {
	if len(trend) > MiniPoints {
		trend = trend[len(trend)-MiniPoints:]
	}

	dates := make([]string, len(trend))
	for i, p := range trend {
		dates[i] = shortDate(p.Date)
	}

	opt := Option{
		Grid:    &Grid{Left: "0", Right: "0", Top: "0", Bottom: "0"},
		Tooltip: &Tooltip{Trigger: "axis"},
		XAxis:   []Axis{{Type: "category", Show: boolPtr(false), Data: dates}},
		YAxis:   []Axis{{Type: "value", Show: boolPtr(false)}},
	}

	switch kind {
	case KindLine:
		data := make([]DataPoint, len(trend))
		for i, p := range trend {
			data[i] = DataPoint{Value: round2(p.Cost)}
		}
		opt.Series = []Series{{
			Name:       "Cost",
			Type:       "line",
			Smooth:     true,
			ShowSymbol: boolPtr(false),
			LineStyle:  &LineStyle{Color: miniColor, Width: 2},
			ItemStyle:  &ItemStyle{Color: miniColor},
			AreaStyle:  &AreaStyle{Color: miniColor, Opacity: 0.2},
			Data:       data,
		}}
	case KindBar:
		data := make([]DataPoint, len(trend))
		for i, p := range trend {
			opacity := 0.6
			if i >= len(trend)-2 {
				opacity = 1
			}
			data[i] = DataPoint{
				Value:     float64(p.Tokens),
				ItemStyle: &ItemStyle{Color: miniColor, Opacity: floatPtr(opacity)},
			}
		}
		opt.Series = []Series{{
			Name:     "Tokens",
			Type:     "bar",
			BarWidth: "60%",
			Data:     data,
		}}
	default:
		return Option{}, fmt.Errorf("unknown mini chart kind %q", kind)
	}
	return opt, nil
}
