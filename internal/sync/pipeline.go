// Package sync implements the activity sync pipeline: fetch running
// activities from Garmin Connect and upsert them into the runs table.
package sync

import (
	"context"
	"math"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/runsync/runsync/internal/db"
	"github.com/runsync/runsync/internal/garmin"
)

// Summary reports the outcome of one sync run.
type Summary struct {
	Fetched int // running activities returned by Garmin Connect
	Synced  int // rows written
	Failed  int // rows that failed to persist
}

// Pipeline wires the Garmin client to the run store.
type Pipeline struct {
	garmin garmin.Connect
	store  db.RunStore
	log    zerolog.Logger
}

// New constructs a Pipeline.
func New(gc garmin.Connect, store db.RunStore, log zerolog.Logger) *Pipeline {
	return &Pipeline{garmin: gc, store: store, log: log}
}

// Run authenticates, fetches up to limit recent activities, and upserts every
// running activity. Authentication and list-fetch failures abort the run. A
// failure on an individual row is logged and counted; the remaining rows are
// still written.
func (p *Pipeline) Run(ctx context.Context, limit int) (Summary, error) {
	if err := p.garmin.Authenticate(ctx); err != nil {
		return Summary{}, err
	}

	activities, err := p.garmin.Activities(ctx, limit)
	if err != nil {
		return Summary{}, err
	}
	p.log.Info().Int("total", len(activities)).Msg("fetched activities")

	var summary Summary
	for _, activity := range activities {
		if !activity.IsRunning() {
			continue
		}
		summary.Fetched++

		run := toRun(activity)
		if err := p.store.UpsertRun(ctx, run); err != nil {
			summary.Failed++
			p.log.Warn().Err(err).
				Str("activity_id", run.ActivityID).
				Msg("failed to persist run")
			continue
		}
		summary.Synced++
	}

	p.log.Info().
		Int("running", summary.Fetched).
		Int("synced", summary.Synced).
		Int("failed", summary.Failed).
		Msg("sync finished")

	return summary, nil
}

// toRun transforms a Garmin activity into the persistence row shape.
func toRun(a garmin.Activity) db.Run {
	run := db.Run{
		ActivityID:      strconv.Itoa(a.ID),
		StartTime:       a.StartTime,
		DistanceMeters:  a.DistanceMeters,
		DurationSeconds: int(a.DurationSeconds),
		Calories:        a.Calories,
	}

	if end := a.EndTime(); !end.IsZero() {
		run.EndTime = &end
	}
	if pace, ok := averagePace(a.DistanceMeters, a.DurationSeconds); ok {
		run.AvgPaceSecondsPerKM = &pace
	}
	if a.AverageHeartRate > 0 {
		hr := a.AverageHeartRate
		run.AvgHeartRate = &hr
	}
	if a.MaxHeartRate > 0 {
		hr := a.MaxHeartRate
		run.MaxHeartRate = &hr
	}

	return run
}

// averagePace returns pace in seconds per kilometre, rounded to two decimals.
// ok is false when distance or duration is missing.
func averagePace(distanceMeters, durationSeconds float64) (float64, bool) {
	if distanceMeters <= 0 || durationSeconds <= 0 {
		return 0, false
	}
	pace := durationSeconds / (distanceMeters / 1000)
	return math.Round(pace*100) / 100, true
}
