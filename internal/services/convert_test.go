package services

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/garmin"
	"github.com/dmitrijs2005/garmin2obsidian/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleepRecord_Full(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	bed := time.Date(2024, 4, 30, 23, 10, 0, 0, time.UTC)
	wake := time.Date(2024, 5, 1, 6, 30, 0, 0, time.UTC)

	dto := &garmin.SleepDTO{
		SleepTimeSeconds:         ptr(int64(7*3600 + 20*60)),
		DeepSleepSeconds:         ptr(int64(3600 + 10*60)),
		LightSleepSeconds:        ptr(int64(4*3600 + 30*60)),
		RemSleepSeconds:          ptr(int64(3600 + 40*60)),
		SleepStartTimestampLocal: ptr(bed.UnixMilli()),
		SleepEndTimestampLocal:   ptr(wake.UnixMilli()),
		SleepScores:              &garmin.SleepScores{Overall: &garmin.ScoreDTO{Value: ptr(82), QualifierKey: "GOOD"}},
	}

	got, err := sleepRecord(date, dto)
	require.NoError(t, err)

	want := models.SleepRecord{
		Date:      date,
		Available: true,
		Score:     ptr(82),
		Qualifier: "GOOD",
		Total:     ptr(7*time.Hour + 20*time.Minute),
		Deep:      ptr(time.Hour + 10*time.Minute),
		Light:     ptr(4*time.Hour + 30*time.Minute),
		REM:       ptr(time.Hour + 40*time.Minute),
		BedTime:   &bed,
		WakeTime:  &wake,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sleepRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestSleepRecord_MissingOptionalFields(t *testing.T) {
	got, err := sleepRecord(time.Time{}, &garmin.SleepDTO{SleepTimeSeconds: ptr(int64(3600))})
	require.NoError(t, err)

	assert.True(t, got.Available)
	assert.Nil(t, got.Score)
	assert.Nil(t, got.REM)
	assert.Nil(t, got.BedTime)
}

func TestSleepRecord_NullDTOMeansNoData(t *testing.T) {
	got, err := sleepRecord(time.Time{}, &garmin.SleepDTO{CalendarDate: "2024-05-01"})
	require.NoError(t, err)
	assert.False(t, got.Available)
}

func TestWorkoutRecord(t *testing.T) {
	got, err := workoutRecord(garmin.ActivityDTO{
		ActivityName:   "Morning Run",
		ActivityType:   &garmin.ActivityTypeDTO{TypeKey: "Running"},
		StartTimeLocal: "2024-05-01 07:05:00",
		Duration:       ptr(1680.4),
		Distance:       ptr(5200.0),
		AverageHR:      ptr(151.0),
		AverageSpeed:   ptr(3.1),
	})
	require.NoError(t, err)

	assert.Equal(t, "Run", got.Type)
	assert.Equal(t, "running", got.TypeKey)
	assert.Equal(t, "Morning Run", got.Name)
	require.NotNil(t, got.Start)
	assert.Equal(t, "07:05", got.Start.Format("15:04"))
	assert.Equal(t, 28*time.Minute, *got.Duration)
	assert.Equal(t, 5200.0, *got.Distance)
	assert.Nil(t, got.Calories)
}

func TestWorkoutRecord_MissingType(t *testing.T) {
	got, err := workoutRecord(garmin.ActivityDTO{StartTimeLocal: "garbage"})
	require.NoError(t, err)

	assert.Equal(t, "Activity", got.Type)
	assert.Nil(t, got.Start)
	assert.Nil(t, got.Duration)
}

func TestStartTime(t *testing.T) {
	got := startTime("2024-05-01T07:05:00.0", "")
	require.NotNil(t, got)
	assert.Equal(t, "07:05", got.Format("15:04"))

	got = startTime("", "2024-05-01 05:05:00")
	require.NotNil(t, got)
	assert.True(t, got.Equal(time.Date(2024, 5, 1, 5, 5, 0, 0, time.UTC)))

	assert.Nil(t, startTime("", ""))
}
