// Package chart turns dashboard statistics into chart options.
//
// The builders are pure: the same input always yields the same Option, and
// empty input yields an Option with empty (never nil) category and series
// data. Options marshal to the JSON layout ECharts expects.
package chart

import "encoding/json"

// Option is a chart configuration.
type Option struct {
	Color           []string `json:"color,omitempty"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	Title           *Title   `json:"title,omitempty"`
	Tooltip         *Tooltip `json:"tooltip,omitempty"`
	Legend          *Legend  `json:"legend,omitempty"`
	Grid            *Grid    `json:"grid,omitempty"`
	XAxis           []Axis   `json:"xAxis,omitempty"`
	YAxis           []Axis   `json:"yAxis,omitempty"`
	Series          []Series `json:"series"`
}

// Title is also used as the centre label of a doughnut chart.
type Title struct {
	Text      string     `json:"text"`
	Subtext   string     `json:"subtext,omitempty"`
	Left      string     `json:"left,omitempty"`
	Top       string     `json:"top,omitempty"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

type Tooltip struct {
	Trigger   string `json:"trigger"`
	Formatter string `json:"formatter,omitempty"`
}

type Legend struct {
	Data      []string   `json:"data"`
	Orient    string     `json:"orient,omitempty"`
	Left      string     `json:"left,omitempty"`
	Top       string     `json:"top,omitempty"`
	Bottom    string     `json:"bottom,omitempty"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

type Grid struct {
	Left         string `json:"left"`
	Right        string `json:"right"`
	Top          string `json:"top"`
	Bottom       string `json:"bottom"`
	ContainLabel bool   `json:"containLabel,omitempty"`
}

// Axis is an x or y axis. Category axes carry Data.
type Axis struct {
	Type      string     `json:"type"`
	Name      string     `json:"name,omitempty"`
	Show      *bool      `json:"show,omitempty"`
	Position  string     `json:"position,omitempty"`
	Data      []string   `json:"data,omitempty"`
	AxisLabel *AxisLabel `json:"axisLabel,omitempty"`
	SplitLine *SplitLine `json:"splitLine,omitempty"`
}

// MarshalJSON writes data for category axes even when it is empty; value
// axes never carry it.
func (a Axis) MarshalJSON() ([]byte, error) {
	type plain Axis
	if a.Type != "category" {
		return json.Marshal(plain(a))
	}
	data := a.Data
	if data == nil {
		data = []string{}
	}
	return json.Marshal(struct {
		plain
		Data []string `json:"data"`
	}{plain(a), data})
}

type AxisLabel struct {
	Formatter string `json:"formatter,omitempty"`
	Color     string `json:"color,omitempty"`
}

type SplitLine struct {
	Show      bool       `json:"show"`
	LineStyle *LineStyle `json:"lineStyle,omitempty"`
}

type TextStyle struct {
	Color      string `json:"color,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
}

type LineStyle struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type ItemStyle struct {
	Color   string   `json:"color,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

type AreaStyle struct {
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// Series is one data series.
type Series struct {
	Name       string      `json:"name,omitempty"`
	Type       string      `json:"type"`
	YAxisIndex int         `json:"yAxisIndex,omitempty"`
	Smooth     bool        `json:"smooth,omitempty"`
	ShowSymbol *bool       `json:"showSymbol,omitempty"`
	Radius     []string    `json:"radius,omitempty"`
	Center     []string    `json:"center,omitempty"`
	BarWidth   string      `json:"barWidth,omitempty"`
	LineStyle  *LineStyle  `json:"lineStyle,omitempty"`
	ItemStyle  *ItemStyle  `json:"itemStyle,omitempty"`
	AreaStyle  *AreaStyle  `json:"areaStyle,omitempty"`
	Label      *SeriesText `json:"label,omitempty"`
	Data       []DataPoint `json:"data"`
}

type SeriesText struct {
	Show bool `json:"show"`
}

// DataPoint is one value of a series. Pie slices carry a Name.
type DataPoint struct {
	Name      string     `json:"name,omitempty"`
	FullName  string     `json:"fullName,omitempty"`
	Value     float64    `json:"value"`
	ItemStyle *ItemStyle `json:"itemStyle,omitempty"`
}

// Theme holds the colours that differ between light and dark consoles.
type Theme struct {
	Text      string
	SubText   string
	AxisLine  string
	SplitLine string
}

// Built-in themes.
var (
	LightTheme = Theme{Text: "#303133", SubText: "#909399", AxisLine: "#dcdfe6", SplitLine: "#ebeef5"}
	DarkTheme  = Theme{Text: "#e5eaf3", SubText: "#a3a6ad", AxisLine: "#4c4d4f", SplitLine: "#363637"}
)

var palette = []string{
	"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de",
	"#3ba272", "#fc8452", "#9a60b4", "#ea7ccc",
}

// Palette returns the series colours in order.
func Palette() []string {
	out := make([]string, len(palette))
	copy(out, palette)
	return out
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }
