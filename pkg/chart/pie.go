package chart

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

const (
	modelPrefix    = "claude-"
	legendMaxRunes = 15
	legendKeep     = 12
)

// ModelPieChart builds a doughnut of cost per model. The centre label shows
// the share of the first model.
func ModelPieChart(stats []types.ModelUsage, theme Theme) Option {
	var total float64
	for _, s := range stats {
		total += s.Cost
	}

	names := make([]string, len(stats))
	data := make([]DataPoint, len(stats))
	for i, s := range stats {
		full := strings.TrimPrefix(s.ModelName, modelPrefix)
		names[i] = legendName(full)
		data[i] = DataPoint{Name: names[i], Value: round2(s.Cost)}
		if names[i] != full {
			data[i].FullName = full
		}
	}

	center := &Title{
		Text:      "0.0%",
		Left:      "34%",
		Top:       "center",
		TextStyle: &TextStyle{Color: theme.Text, FontSize: 20, FontWeight: "bold"},
	}
	if len(stats) > 0 {
		if total > 0 {
			center.Text = fmt.Sprintf("%.1f%%", stats[0].Cost/total*100)
		}
		center.Subtext = names[0]
	}

	return Option{
		Color:   Palette(),
		Title:   center,
		Tooltip: &Tooltip{Trigger: "item", Formatter: "{b}: ${c} ({d}%)"},
		Legend: &Legend{
			Data:      names,
			Orient:    "vertical",
			Left:      "70%",
			Top:       "center",
			TextStyle: &TextStyle{Color: theme.Text},
		},
		Series: []Series{{
			Name:   "Cost",
			Type:   "pie",
			Radius: []string{"50%", "70%"},
			Center: []string{"40%", "50%"},
			Label:  &SeriesText{Show: false},
			Data:   data,
		}},
	}
}

// legendName shortens long model names so the legend keeps its width.
func legendName(name string) string {
	if utf8.RuneCountInString(name) <= legendMaxRunes {
		return name
	}
	return string([]rune(name)[:legendKeep]) + "..."
}
