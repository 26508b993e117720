// Package steps implements the step visualization pipeline: fetch daily step
// counts for a trailing window and render them as an area chart.
package steps

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/runsync/runsync/internal/errs"
	"github.com/runsync/runsync/internal/garmin"
)

// Stats summarises the retrieved step records.
type Stats struct {
	Mean float64
	Max  int
	Min  int
	Days int
}

// RenderFunc writes a chart of the (chronologically sorted) records to path.
type RenderFunc func(path string, records []garmin.DailySteps, stats Stats) error

// Pipeline wires the Garmin client to the chart renderer.
type Pipeline struct {
	garmin garmin.Connect
	render RenderFunc
	log    zerolog.Logger
	now    func() time.Time
}

// New constructs a Pipeline with the default SVG renderer.
func New(gc garmin.Connect, log zerolog.Logger) *Pipeline {
	return &Pipeline{garmin: gc, render: RenderChart, log: log, now: time.Now}
}

// WithRenderer replaces the chart renderer. Used by tests.
func (p *Pipeline) WithRenderer(render RenderFunc) *Pipeline {
	p.render = render
	return p
}

// Run authenticates, fetches step counts for the trailing windowDays calendar
// days ending today, computes mean/max/min and renders the chart to
// outputPath. Days the service has no data for are omitted with a warning
// rather than zero-filled, so they do not skew the statistics. An empty
// window is an error and nothing is written.
func (p *Pipeline) Run(ctx context.Context, windowDays int, outputPath string) (Stats, error) {
	if err := p.garmin.Authenticate(ctx); err != nil {
		return Stats{}, err
	}

	until := midnight(p.now())
	from := until.AddDate(0, 0, -(windowDays - 1))
	p.log.Info().
		Str("from", from.Format("2006-01-02")).
		Str("until", until.Format("2006-01-02")).
		Msg("fetching daily step counts")

	records, err := p.garmin.DailyStepCounts(ctx, from, until)
	if err != nil {
		return Stats{}, err
	}

	records = clampWindow(records, from, until)
	if missing := windowDays - len(records); missing > 0 {
		p.log.Warn().Int("days", missing).Msg("window has days without step data; omitting them")
	}

	if len(records) == 0 {
		return Stats{}, errs.Wrapf(errs.ErrInsufficientData,
			"no step records in the last %d days", windowDays)
	}

	// The remote ordering is not trusted.
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	stats := computeStats(records)
	p.log.Info().
		Float64("mean", stats.Mean).
		Int("max", stats.Max).
		Int("min", stats.Min).
		Int("days", stats.Days).
		Msg("step statistics")

	if err := p.render(outputPath, records, stats); err != nil {
		return Stats{}, err
	}
	p.log.Info().Str("path", outputPath).Msg("chart written")

	return stats, nil
}

// clampWindow drops records dated outside [from, until]. Record dates come
// from the remote service as UTC midnights while the window is computed in
// the local zone, so days are compared as calendar dates, not instants.
func clampWindow(records []garmin.DailySteps, from, until time.Time) []garmin.DailySteps {
	fromDay := from.Format("2006-01-02")
	untilDay := until.Format("2006-01-02")

	kept := make([]garmin.DailySteps, 0, len(records))
	for _, r := range records {
		day := r.Date.Format("2006-01-02")
		if day < fromDay || day > untilDay {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func computeStats(records []garmin.DailySteps) Stats {
	stats := Stats{
		Max:  records[0].TotalSteps,
		Min:  records[0].TotalSteps,
		Days: len(records),
	}

	sum := 0
	for _, r := range records {
		sum += r.TotalSteps
		if r.TotalSteps > stats.Max {
			stats.Max = r.TotalSteps
		}
		if r.TotalSteps < stats.Min {
			stats.Min = r.TotalSteps
		}
	}
	stats.Mean = float64(sum) / float64(len(records))

	return stats
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
