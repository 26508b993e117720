package steps

import (
	"bytes"
	"fmt"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/runsync/runsync/internal/errs"
	"github.com/runsync/runsync/internal/garmin"
)

// RenderChart renders the records as an SVG area chart at path, overwriting
// any existing file. Records must already be sorted ascending by date.
func RenderChart(path string, records []garmin.DailySteps, stats Stats) error {
	dates := make([]time.Time, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		dates[i] = r.Date
		values[i] = float64(r.TotalSteps)
	}

	// go-chart needs a nonzero x-range. A single day is drawn as a flat
	// segment spanning that day.
	if len(records) == 1 {
		only := records[0]
		dates = []time.Time{only.Date, only.Date.Add(24 * time.Hour)}
		values = []float64{float64(only.TotalSteps), float64(only.TotalSteps)}
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Daily Step Count - Last %d Days (avg %.0f / max %d / min %d)", stats.Days, stats.Mean, stats.Max, stats.Min),
		Width:  1200,
		Height: 600,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 02"),
		},
		YAxis: chart.YAxis{
			Name:           "Step Count",
			ValueFormatter: stepCountFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Daily Steps",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("006400"),
					StrokeWidth: 2.0,
					FillColor:   drawing.ColorFromHex("90EE90").WithAlpha(128),
				},
				XValues: dates,
				YValues: values,
			},
		},
	}

	// Render to memory first so a failed render never truncates an
	// existing chart at path.
	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return errs.Wrapf(err, "rendering chart")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errs.Wrapf(err, "writing chart file")
	}
	return nil
}

// stepCountFormatter prints step counts with thousands separators.
func stepCountFormatter(v interface{}) string {
	value, ok := v.(float64)
	if !ok {
		return ""
	}

	n := int(value)
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d,%03d", n/1000, n%1000)
}
