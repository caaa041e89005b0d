package chart

import (
	"github.com/relaydesk/relayctl/pkg/api/types"
)

// TrendChart plots daily cost (line, left axis) against request count
// (bars, right axis).
func TrendChart(trend []types.TrendPoint, theme Theme) Option {
	dates := make([]string, len(trend))
	cost := make([]DataPoint, len(trend))
	requests := make([]DataPoint, len(trend))
	for i, p := range trend {
		dates[i] = shortDate(p.Date)
		cost[i] = DataPoint{Value: round2(p.Cost)}
		requests[i] = DataPoint{Value: float64(p.Requests)}
	}

	axisLabel := func(formatter string) *AxisLabel {
		return &AxisLabel{Formatter: formatter, Color: theme.SubText}
	}
	split := &SplitLine{Show: true, LineStyle: &LineStyle{Color: theme.SplitLine}}

	return Option{
		Color:   Palette()[:2],
		Tooltip: &Tooltip{Trigger: "axis"},
		Legend: &Legend{
			Data:      []string{"Cost", "Requests"},
			Top:       "0",
			TextStyle: &TextStyle{Color: theme.Text},
		},
		Grid: &Grid{Left: "3%", Right: "4%", Top: "40", Bottom: "3%", ContainLabel: true},
		XAxis: []Axis{{
			Type:      "category",
			Data:      dates,
			AxisLabel: axisLabel(""),
		}},
		YAxis: []Axis{
			{
				Type:      "value",
				Name:      "Cost",
				Position:  "left",
				AxisLabel: axisLabel("${value}"),
				SplitLine: split,
			},
			{
				Type:      "value",
				Name:      "Requests",
				Position:  "right",
				AxisLabel: axisLabel("{value}"),
				SplitLine: &SplitLine{Show: false},
			},
		},
		Series: []Series{
			{
				Name:   "Cost",
				Type:   "line",
				Smooth: true,
				Data:   cost,
			},
			{
				Name:       "Requests",
				Type:       "bar",
				YAxisIndex: 1,
				BarWidth:   "40%",
				Data:       requests,
			},
		},
	}
}
