// Package services contains the application services behind the sync
// pipeline: authentication and day-data fetching over a garmin.Client.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"github.com/dmitrijs2005/garmin2obsidian/internal/garmin"
	"github.com/dmitrijs2005/garmin2obsidian/internal/logging"
)

// AuthService establishes the Garmin session for a run.
//
// Contract:
//   - Authenticate: log in and return a usable session, or an error wrapping
//     common.ErrAuthentication. Never both, never a session that cannot
//     authorize requests. No retry.
//   - Close: release underlying client resources.
type AuthService interface {
	Authenticate(ctx context.Context, email string, password []byte) (*garmin.Session, error)
	Close(ctx context.Context) error
}

type authService struct {
	client garmin.Client
	logger logging.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client garmin.Client, logger logging.Logger) AuthService {
	return &authService{client: client, logger: logger, now: time.Now}
}

func (a *authService) Authenticate(ctx context.Context, email string, password []byte) (*garmin.Session, error) {
	a.logger.Info(ctx, "logging in to Garmin Connect", "email", email)

	s, err := a.client.Login(ctx, email, password)
	if err != nil {
		reason := "login failed"
		switch {
		case errors.Is(err, garmin.ErrUnauthorized):
			reason = "credentials rejected"
		case errors.Is(err, garmin.ErrUnavailable):
			reason = "login service unavailable"
		case errors.Is(err, garmin.ErrMFARequired):
			reason = "account requires multi-factor authentication, which is not supported"
		}
		return nil, fmt.Errorf("%w: %s: %w", common.ErrAuthentication, reason, err)
	}

	if !s.Valid(a.now()) {
		return nil, fmt.Errorf("%w: login returned an unusable session", common.ErrAuthentication)
	}

	a.logger.Info(ctx, "logged in", "display_name", s.DisplayName(), "expires_at", s.ExpiresAt())
	return s, nil
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
