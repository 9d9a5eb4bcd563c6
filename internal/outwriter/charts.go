package outwriter

import (
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Static chart geometry in pixels.
const (
	staticBarWidth   = 24
	staticBarSpacing = 8
	staticMinWidth   = 640
	staticHeight     = 480
	staticPadding    = 160
)

var errNothingToChart = errors.New("nothing to chart: " + contract.NoDataMessage)

// histogramBars turns histogram counts into a bar series for the chart renderers.
func histogramBars(hist *schema.Histogram) schema.BarSeries {
	values := make([]float64, len(hist.Counts))
	for i, c := range hist.Counts {
		values[i] = float64(c)
	}
	return schema.BarSeries{
		Title:      "Distribution of " + hist.Column,
		SeriesName: "count",
		Labels:     slices.Clone(hist.Labels),
		Values:     values,
	}
}

// newEChartsBar builds an interactive bar chart with per-bar colors and fixed axis bounds.
func newEChartsBar(bars schema.BarSeries) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: bars.Title, Subtitle: bars.SeriesName}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	if bars.YMin != nil || bars.YMax != nil {
		yAxis := opts.YAxis{}
		if bars.YMin != nil {
			yAxis.Min = *bars.YMin
		}
		if bars.YMax != nil {
			yAxis.Max = *bars.YMax
		}
		bar.SetGlobalOptions(charts.WithYAxisOpts(yAxis))
	}

	data := make([]opts.BarData, bars.Len())
	for i, v := range bars.Values {
		data[i] = opts.BarData{Name: bars.Labels[i], Value: v}
		if i < len(bars.Colors) {
			data[i].ItemStyle = &opts.ItemStyle{Color: bars.Colors[i]}
		}
	}
	bar.SetXAxis(bars.Labels).AddSeries(bars.SeriesName, data)
	return bar
}

// writeHTMLPage renders every series as a chart on one self-contained page.
func writeHTMLPage(w io.Writer, series []schema.BarSeries) error {
	page := components.NewPage()
	for _, s := range series {
		page.AddCharts(newEChartsBar(s))
	}
	return page.Render(w)
}

// writeStaticChart renders one bar series as SVG or PNG.
func writeStaticChart(w io.Writer, mode schema.OutputMode, bars schema.BarSeries) error {
	if bars.Len() == 0 {
		return errNothingToChart
	}

	values := make([]chart.Value, bars.Len())
	for i, label := range bars.Labels {
		v := chart.Value{Label: label, Value: bars.Values[i]}
		if i < len(bars.Colors) {
			c := drawing.ColorFromHex(strings.TrimPrefix(bars.Colors[i], "#"))
			v.Style = chart.Style{FillColor: c, StrokeColor: c}
		}
		values[i] = v
	}

	lo, hi := valueRange(bars)
	graph := chart.BarChart{
		Title:      bars.Title,
		Width:      max(staticMinWidth, staticPadding+bars.Len()*(staticBarWidth+staticBarSpacing)),
		Height:     staticHeight,
		BarWidth:   staticBarWidth,
		BarSpacing: staticBarSpacing,
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Bars:       values,
	}

	provider := chart.SVG
	if mode == schema.PNGOut {
		provider = chart.PNG
	}
	return graph.Render(provider, w)
}

// valueRange picks the y axis bounds: the explicit bounds if set, else [min(0, lo), hi].
func valueRange(bars schema.BarSeries) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range bars.Values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if bars.YMin != nil {
		lo = *bars.YMin
	}
	if bars.YMax != nil {
		hi = *bars.YMax
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
