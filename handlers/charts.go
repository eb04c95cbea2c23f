package handlers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"p9e.in/quarry/models"
)

// Chart artifact keys, stable across the dashboard template and the tests.
const (
	ChartQuarryLevel  = "quarry_level"
	ChartQuarryChange = "quarry_change"
	ChartRainfall     = "rainfall"
	ChartPowerCut     = "power_cut"
)

const (
	chartWidth  = 640
	chartHeight = 360
)

// BuildCharts derives the four trend charts from the fetched reports and
// returns them keyed by name as base64 PNG data URIs. Series keep the
// fetched (most recent first) order, one point per report, with missing
// values already collapsed to zero upstream. An empty report set yields an
// empty map: no chart is rendered at all.
func BuildCharts(reports []models.Report) (map[string]template.URL, error) {
	charts := make(map[string]template.URL)
	if len(reports) == 0 {
		return charts, nil
	}

	labels := make([]string, len(reports))
	levels := make([]float64, len(reports))
	changes := make([]float64, len(reports))
	rainfall := make([]float64, len(reports))
	powerCut := make([]float64, len(reports))
	for i, r := range reports {
		labels[i] = r.DateLabel()
		levels[i] = r.Level.Today
		changes[i] = r.Level.Change
		rainfall[i] = r.Rainfall.AmountMM
		powerCut[i] = r.PowerCut.TotalHours
	}

	defs := []struct {
		key    string
		render func() ([]byte, error)
	}{
		{ChartQuarryLevel, func() ([]byte, error) {
			return renderLine("Quarry Level Trend", labels, levels, chart.ColorBlue)
		}},
		{ChartQuarryChange, func() ([]byte, error) {
			return renderBar("Quarry Level Change (m)", labels, changes, chart.ColorOrange)
		}},
		{ChartRainfall, func() ([]byte, error) {
			return renderLine("Rainfall (mm)", labels, rainfall, chart.ColorCyan)
		}},
		{ChartPowerCut, func() ([]byte, error) {
			return renderBar("Power Cut Hours", labels, powerCut, chart.ColorRed)
		}},
	}

	for _, s := range defs {
		png, err := s.render()
		if err != nil {
			return nil, fmt.Errorf("render %s chart: %w", s.key, err)
		}
		charts[s.key] = dataURI(png)
	}
	return charts, nil
}

func renderLine(title string, labels []string, values []float64, color drawing.Color) ([]byte, error) {
	yMin, yMax := paddedRange(values)

	xs := make([]float64, len(values))
	ticks := make([]chart.Tick, len(values))
	for i := range values {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: labels[i]}
	}
	if len(values) == 1 {
		// The renderer refuses a one-point line series, so the first day's
		// chart repeats its single value as a flat segment under one label.
		xs = []float64{0, 1}
		values = []float64{values[0], values[0]}
		ticks = append(ticks, chart.Tick{Value: 1, Label: ""})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(xs)-1) + 0.5},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: values,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					DotColor:    color,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderBar(title string, labels []string, values []float64, color drawing.Color) ([]byte, error) {
	bars := make([]chart.Value, len(values))
	for i := range values {
		bars[i] = chart.Value{
			Value: values[i],
			Label: labels[i],
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
	}

	yMin, yMax := paddedRange(values)
	if yMin > 0 {
		yMin = 0
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// paddedRange returns a y-axis range that is never zero-width, which the
// renderer rejects when every value in a series is identical.
func paddedRange(values []float64) (float64, float64) {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		min -= 1
		max += 1
	}
	pad := (max - min) * 0.05
	return min - pad, max + pad
}

func dataURI(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
