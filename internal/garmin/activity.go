package garmin

import (
	"context"
	"time"
)

// Activity represents a Garmin Connect activity summary.
type Activity struct {
	ID               int
	Name             string
	Type             string
	StartTime        time.Time
	DurationSeconds  float64
	DistanceMeters   float64
	Calories         int
	AverageHeartRate int
	MaxHeartRate     int
}

// EndTime derives the activity end from start plus duration. The zero time
// is returned when no duration was recorded.
func (a Activity) EndTime() time.Time {
	if a.DurationSeconds <= 0 {
		return time.Time{}
	}
	return a.StartTime.Add(time.Duration(a.DurationSeconds * float64(time.Second)))
}

// IsRunning reports whether the activity is a running activity.
func (a Activity) IsRunning() bool {
	return a.Type == "running"
}

// DailySteps is one calendar day's total step count.
type DailySteps struct {
	Date       time.Time
	TotalSteps int
}

// Connect is the capability surface the pipelines need from Garmin Connect.
// Tests substitute a stub; production code uses *Client.
type Connect interface {
	// Authenticate logs in with the configured credentials. It must be
	// called before any fetch.
	Authenticate(ctx context.Context) error

	// Activities returns up to limit recent activities of all types,
	// newest first.
	Activities(ctx context.Context, limit int) ([]Activity, error)

	// DailyStepCounts returns per-day step totals for the inclusive date
	// range [from, until]. Days the service has no data for are absent.
	DailyStepCounts(ctx context.Context, from, until time.Time) ([]DailySteps, error)
}
