package garmin

import (
	"context"
	"time"
)

type Client interface {
	Login(ctx context.Context, email string, password []byte) (*Session, error)
	DailySleep(ctx context.Context, s *Session, date time.Time) (*SleepDTO, error)
	ActivitiesForDate(ctx context.Context, s *Session, date time.Time) ([]ActivityDTO, error)
	Close() error
}
