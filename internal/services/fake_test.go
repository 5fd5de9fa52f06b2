package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/garmin"
)

// fakeClient implements garmin.Client for unit tests.
type fakeClient struct {
	LoginRet *garmin.Session
	LoginErr error

	SleepRet *garmin.SleepDTO
	SleepErr error

	ActivitiesRet []garmin.ActivityDTO
	ActivitiesErr error

	CloseErr error

	// call log, in order
	Calls []string

	LastLoginEmail    string
	LastLoginPassword []byte
	LastDate          time.Time
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (*garmin.Session, error) {
	f.Calls = append(f.Calls, "login")
	f.LastLoginEmail = email
	f.LastLoginPassword = append([]byte(nil), password...)
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) DailySleep(ctx context.Context, s *garmin.Session, date time.Time) (*garmin.SleepDTO, error) {
	f.Calls = append(f.Calls, "sleep")
	f.LastDate = date
	return f.SleepRet, f.SleepErr
}

func (f *fakeClient) ActivitiesForDate(ctx context.Context, s *garmin.Session, date time.Time) ([]garmin.ActivityDTO, error) {
	f.Calls = append(f.Calls, "activities")
	f.LastDate = date
	return f.ActivitiesRet, f.ActivitiesErr
}

func (f *fakeClient) Close() error {
	f.Calls = append(f.Calls, "close")
	return f.CloseErr
}

func ptr[T any](v T) *T { return &v }

func validSession() *garmin.Session {
	return garmin.NewSession("token", "runner-42", time.Now().Add(time.Hour))
}
