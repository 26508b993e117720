package garmin

import (
	"context"
	"time"

	garminconnect "github.com/abrander/garmin-connect"

	"github.com/runsync/runsync/internal/errs"
)

// Client adapts the Garmin Connect API client to the Connect interface.
type Client struct {
	client *garminconnect.Client
}

// NewClient creates a Garmin Connect client for the given credentials. The
// session is persisted to sessionPath so repeated runs skip the full login.
func NewClient(email, password, sessionPath string) *Client {
	client := garminconnect.NewClient(garminconnect.Credentials(email, password))
	client.SessionFile = sessionPath
	return &Client{client: client}
}

// Authenticate logs into Garmin Connect. A single failure is surfaced to the
// caller; there is no retry.
func (c *Client) Authenticate(_ context.Context) error {
	if err := c.client.Authenticate(); err != nil {
		return errs.Wrapf(errs.ErrAuthentication, "garmin connect login: %v", err)
	}
	return nil
}

// Activities retrieves up to limit recent activities for the current user.
func (c *Client) Activities(_ context.Context, limit int) ([]Activity, error) {
	garminActivities, err := c.client.Activities("", 0, limit) // empty string = current user
	if err != nil {
		return nil, errs.Wrapf(errs.ErrFetch, "listing activities: %v", err)
	}

	activities := make([]Activity, 0, len(garminActivities))
	for _, ga := range garminActivities {
		activities = append(activities, Activity{
			ID:               int(ga.ID),
			Name:             ga.ActivityName,
			Type:             ga.ActivityType.TypeKey,
			StartTime:        time.Time(ga.StartLocal),
			DurationSeconds:  ga.Duration,
			DistanceMeters:   ga.Distance,
			Calories:         int(ga.Calories),
			AverageHeartRate: int(ga.AverageHeartRate),
			MaxHeartRate:     int(ga.MaxHeartRate),
		})
	}

	return activities, nil
}

// DailyStepCounts retrieves per-day step totals for [from, until].
func (c *Client) DailyStepCounts(_ context.Context, from, until time.Time) ([]DailySteps, error) {
	days, err := c.client.DailyStepCount(from, until)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrFetch, "fetching daily steps: %v", err)
	}

	steps := make([]DailySteps, 0, len(days))
	for _, day := range days {
		steps = append(steps, DailySteps{
			Date:       day.CalendarDate.Time(),
			TotalSteps: day.TotalSteps,
		})
	}

	return steps, nil
}
