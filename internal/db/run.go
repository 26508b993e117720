package db

import (
	"context"
	"time"
)

// Run is one persisted running activity, keyed by the Garmin activity ID.
type Run struct {
	ActivityID          string
	StartTime           time.Time
	EndTime             *time.Time
	DistanceMeters      float64
	DurationSeconds     int
	AvgPaceSecondsPerKM *float64
	Calories            int
	AvgHeartRate        *int
	MaxHeartRate        *int
}

// RunStore provides persistence for run rows. The sync pipeline depends on
// this interface so tests can substitute an in-memory store.
type RunStore interface {
	// UpsertRun inserts the row, or overwrites the existing row with the
	// same activity ID. Repeated application with identical input is
	// idempotent.
	UpsertRun(ctx context.Context, run Run) error

	// GetRun returns the row for activityID, or nil when absent.
	GetRun(ctx context.Context, activityID string) (*Run, error)

	// CountRuns returns the number of persisted runs.
	CountRuns(ctx context.Context) (int, error)
}
