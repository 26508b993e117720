package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/runsync/runsync/internal/db"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *db.Store) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, db.NewStore(mock)
}

func testRun() db.Run {
	start := time.Date(2026, 8, 20, 7, 30, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)
	pace := 300.0
	avgHR := 152
	maxHR := 176

	return db.Run{
		ActivityID:          "123456789",
		StartTime:           start,
		EndTime:             &end,
		DistanceMeters:      5000,
		DurationSeconds:     1500,
		AvgPaceSecondsPerKM: &pace,
		Calories:            410,
		AvgHeartRate:        &avgHR,
		MaxHeartRate:        &maxHR,
	}
}

func TestInitSchema(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS runs").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, store.InitSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRunInsert(t *testing.T) {
	mock, store := newMockStore(t)
	run := testRun()

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(
			run.ActivityID,
			run.StartTime,
			run.EndTime,
			run.DistanceMeters,
			run.DurationSeconds,
			run.AvgPaceSecondsPerKM,
			run.Calories,
			run.AvgHeartRate,
			run.MaxHeartRate,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.UpsertRun(context.Background(), run))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRunNullableFields(t *testing.T) {
	mock, store := newMockStore(t)

	// A run without distance has no derivable pace and may lack HR data.
	run := db.Run{
		ActivityID: "987",
		StartTime:  time.Date(2026, 8, 21, 6, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(
			run.ActivityID,
			run.StartTime,
			(*time.Time)(nil),
			0.0,
			0,
			(*float64)(nil),
			0,
			(*int)(nil),
			(*int)(nil),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.UpsertRun(context.Background(), run))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRunFound(t *testing.T) {
	mock, store := newMockStore(t)
	run := testRun()

	rows := pgxmock.NewRows([]string{
		"activity_id", "start_time", "end_time", "distance_meters",
		"duration_seconds", "avg_pace_seconds_per_km", "calories",
		"avg_heart_rate", "max_heart_rate",
	}).AddRow(
		run.ActivityID, run.StartTime, run.EndTime, run.DistanceMeters,
		run.DurationSeconds, run.AvgPaceSecondsPerKM, run.Calories,
		run.AvgHeartRate, run.MaxHeartRate,
	)

	mock.ExpectQuery("FROM runs WHERE activity_id").
		WithArgs(run.ActivityID).
		WillReturnRows(rows)

	got, err := store.GetRun(context.Background(), run.ActivityID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, run.ActivityID, got.ActivityID)
	require.Equal(t, run.DistanceMeters, got.DistanceMeters)
	require.Equal(t, *run.AvgPaceSecondsPerKM, *got.AvgPaceSecondsPerKM)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRunNotFound(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("FROM runs WHERE activity_id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	got, err := store.GetRun(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountRuns(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := store.CountRuns(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
