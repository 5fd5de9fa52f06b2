package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/garmin"
	"github.com/dmitrijs2005/garmin2obsidian/internal/models"
)

// Layouts seen in activity start times. Fractional seconds are accepted by
// time.Parse without being spelled out.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func sleepRecord(date time.Time, dto *garmin.SleepDTO) (models.SleepRecord, error) {
	rec := models.SleepRecord{Date: date}
	if dto == nil || dto.SleepTimeSeconds == nil {
		return rec, nil
	}
	rec.Available = true

	var err error
	if rec.Total, err = seconds(dto.SleepTimeSeconds); err != nil {
		return rec, fmt.Errorf("sleepTimeSeconds: %w", err)
	}
	if rec.Deep, err = seconds(dto.DeepSleepSeconds); err != nil {
		return rec, fmt.Errorf("deepSleepSeconds: %w", err)
	}
	if rec.Light, err = seconds(dto.LightSleepSeconds); err != nil {
		return rec, fmt.Errorf("lightSleepSeconds: %w", err)
	}
	if rec.REM, err = seconds(dto.RemSleepSeconds); err != nil {
		return rec, fmt.Errorf("remSleepSeconds: %w", err)
	}

	rec.BedTime = localMillis(dto.SleepStartTimestampLocal)
	rec.WakeTime = localMillis(dto.SleepEndTimestampLocal)

	if dto.SleepScores != nil && dto.SleepScores.Overall != nil {
		rec.Score = dto.SleepScores.Overall.Value
		rec.Qualifier = dto.SleepScores.Overall.QualifierKey
	}
	return rec, nil
}

func workoutRecord(dto garmin.ActivityDTO) (models.WorkoutRecord, error) {
	var typeKey string
	if dto.ActivityType != nil {
		typeKey = strings.ToLower(dto.ActivityType.TypeKey)
	}

	rec := models.WorkoutRecord{
		Type:     models.ActivityLabel(typeKey),
		TypeKey:  typeKey,
		Name:     dto.ActivityName,
		Start:    startTime(dto.StartTimeLocal, dto.StartTimeGMT),
		AvgHR:    dto.AverageHR,
		Calories: dto.Calories,
		AvgSpeed: dto.AverageSpeed,
		Sets:     dto.ActiveSets,
	}

	if dto.Duration != nil {
		if *dto.Duration < 0 {
			return rec, fmt.Errorf("negative duration %v", *dto.Duration)
		}
		d := time.Duration(*dto.Duration * float64(time.Second)).Round(time.Second)
		rec.Duration = &d
	}
	if dto.Distance != nil {
		if *dto.Distance < 0 {
			return rec, fmt.Errorf("negative distance %v", *dto.Distance)
		}
		rec.Distance = dto.Distance
	}
	return rec, nil
}

func seconds(v *int64) (*time.Duration, error) {
	if v == nil {
		return nil, nil
	}
	if *v < 0 {
		return nil, fmt.Errorf("negative value %d", *v)
	}
	d := time.Duration(*v) * time.Second
	return &d, nil
}

// localMillis turns Garmin's "local" epoch milliseconds, which encode the
// wall clock of the device's time zone as if it were UTC, into a UTC time
// whose clock reading is that wall clock.
func localMillis(v *int64) *time.Time {
	if v == nil || *v <= 0 {
		return nil
	}
	t := time.UnixMilli(*v).UTC()
	return &t
}

// startTime prefers the local start time; the GMT one is converted to the
// process time zone. Unparseable values count as absent.
func startTime(local, gmt string) *time.Time {
	if t, ok := parseStart(local, time.UTC); ok {
		return &t
	}
	if t, ok := parseStart(gmt, time.UTC); ok {
		t = t.In(time.Local)
		return &t
	}
	return nil
}

func parseStart(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
