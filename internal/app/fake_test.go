package app

import (
	"context"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/garmin"
)

// fakeGarmin implements garmin.Client and records the calls made to it.
type fakeGarmin struct {
	loginErr      error
	sleep         *garmin.SleepDTO
	sleepErr      error
	activities    []garmin.ActivityDTO
	activitiesErr error

	calls []string
}

func (f *fakeGarmin) Login(ctx context.Context, email string, password []byte) (*garmin.Session, error) {
	f.calls = append(f.calls, "login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return garmin.NewSession("token", "runner-42", time.Now().Add(time.Hour)), nil
}

func (f *fakeGarmin) DailySleep(ctx context.Context, s *garmin.Session, date time.Time) (*garmin.SleepDTO, error) {
	f.calls = append(f.calls, "sleep")
	return f.sleep, f.sleepErr
}

func (f *fakeGarmin) ActivitiesForDate(ctx context.Context, s *garmin.Session, date time.Time) ([]garmin.ActivityDTO, error) {
	f.calls = append(f.calls, "activities")
	return f.activities, f.activitiesErr
}

func (f *fakeGarmin) Close() error {
	f.calls = append(f.calls, "close")
	return nil
}

func ptr[T any](v T) *T { return &v }

func localMillis(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}
