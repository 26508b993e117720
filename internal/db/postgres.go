// Package db persists synced runs to PostgreSQL.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against url and verifies the connection.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Store implements RunStore on PostgreSQL.
type Store struct {
	q Querier
}

// NewStore constructs a Store over q.
func NewStore(q Querier) *Store {
	return &Store{q: q}
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id BIGSERIAL PRIMARY KEY,
	activity_id TEXT NOT NULL UNIQUE,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ,
	distance_meters DOUBLE PRECISION NOT NULL DEFAULT 0,
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	avg_pace_seconds_per_km DOUBLE PRECISION,
	calories INTEGER NOT NULL DEFAULT 0,
	avg_heart_rate INTEGER,
	max_heart_rate INTEGER,
	sync_timestamp TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// InitSchema creates the runs table if it does not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const upsertRun = `
INSERT INTO runs (activity_id, start_time, end_time, distance_meters,
	duration_seconds, avg_pace_seconds_per_km, calories,
	avg_heart_rate, max_heart_rate, sync_timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
ON CONFLICT (activity_id) DO UPDATE SET
	start_time = excluded.start_time,
	end_time = excluded.end_time,
	distance_meters = excluded.distance_meters,
	duration_seconds = excluded.duration_seconds,
	avg_pace_seconds_per_km = excluded.avg_pace_seconds_per_km,
	calories = excluded.calories,
	avg_heart_rate = excluded.avg_heart_rate,
	max_heart_rate = excluded.max_heart_rate,
	sync_timestamp = excluded.sync_timestamp`

// UpsertRun writes the row, overwriting any existing row with the same
// activity ID. Atomicity per row comes from Postgres.
func (s *Store) UpsertRun(ctx context.Context, run Run) error {
	_, err := s.q.Exec(ctx, upsertRun,
		run.ActivityID,
		run.StartTime,
		run.EndTime,
		run.DistanceMeters,
		run.DurationSeconds,
		run.AvgPaceSecondsPerKM,
		run.Calories,
		run.AvgHeartRate,
		run.MaxHeartRate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert run %s: %w", run.ActivityID, err)
	}
	return nil
}

const selectRun = `
SELECT activity_id, start_time, end_time, distance_meters, duration_seconds,
	avg_pace_seconds_per_km, calories, avg_heart_rate, max_heart_rate
FROM runs WHERE activity_id = $1`

// GetRun fetches the row for activityID, or nil when it does not exist.
func (s *Store) GetRun(ctx context.Context, activityID string) (*Run, error) {
	var run Run
	err := s.q.QueryRow(ctx, selectRun, activityID).Scan(
		&run.ActivityID,
		&run.StartTime,
		&run.EndTime,
		&run.DistanceMeters,
		&run.DurationSeconds,
		&run.AvgPaceSecondsPerKM,
		&run.Calories,
		&run.AvgHeartRate,
		&run.MaxHeartRate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", activityID, err)
	}
	return &run, nil
}

// CountRuns returns the number of rows in the runs table.
func (s *Store) CountRuns(ctx context.Context) (int, error) {
	var count int
	if err := s.q.QueryRow(ctx, "SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}
