package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"github.com/dmitrijs2005/garmin2obsidian/internal/garmin"
	"github.com/dmitrijs2005/garmin2obsidian/internal/logging"
	"github.com/dmitrijs2005/garmin2obsidian/internal/models"
	"github.com/sanity-io/litter"
)

// FetchService loads one day of sleep and workouts.
//
// FetchDay queries sleep first, then activities. A day without sleep yields
// SleepRecord{Available: false}; a day without activities yields an empty,
// non-nil Workouts slice. Transport failures and malformed payloads are
// wrapped with common.ErrDataFetch.
type FetchService interface {
	FetchDay(ctx context.Context, s *garmin.Session, date time.Time) (*models.DayRecords, error)
}

type fetchService struct {
	client garmin.Client
	logger logging.Logger
}

// NewFetchService constructs a FetchService bound to the given API client.
func NewFetchService(client garmin.Client, logger logging.Logger) FetchService {
	return &fetchService{client: client, logger: logger}
}

func (f *fetchService) FetchDay(ctx context.Context, s *garmin.Session, date time.Time) (*models.DayRecords, error) {
	day := date.Format("2006-01-02")

	f.logger.Info(ctx, "fetching sleep", "date", day)
	sleepDTO, err := f.client.DailySleep(ctx, s, date)
	if err != nil {
		return nil, fmt.Errorf("%w: sleep for %s: %w", common.ErrDataFetch, day, err)
	}
	sleep, err := sleepRecord(date, sleepDTO)
	if err != nil {
		return nil, fmt.Errorf("%w: sleep for %s: %w", common.ErrDataFetch, day, err)
	}

	f.logger.Info(ctx, "fetching activities", "date", day)
	activities, err := f.client.ActivitiesForDate(ctx, s, date)
	if err != nil {
		return nil, fmt.Errorf("%w: activities for %s: %w", common.ErrDataFetch, day, err)
	}

	workouts := make([]models.WorkoutRecord, 0, len(activities))
	for i, a := range activities {
		w, err := workoutRecord(a)
		if err != nil {
			return nil, fmt.Errorf("%w: activity %d (%d) for %s: %w", common.ErrDataFetch, i, a.ActivityID, day, err)
		}
		workouts = append(workouts, w)
	}

	records := &models.DayRecords{Date: date, Sleep: sleep, Workouts: workouts}

	f.logger.Info(ctx, "fetched day", "date", day, "sleep_available", sleep.Available, "workouts", len(workouts))
	f.logger.Debug(ctx, "fetched records", "records", litter.Sdump(records))
	return records, nil
}
