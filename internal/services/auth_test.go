package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"github.com/dmitrijs2005/garmin2obsidian/internal/garmin"
	"github.com/dmitrijs2005/garmin2obsidian/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate_Success(t *testing.T) {
	fc := &fakeClient{LoginRet: validSession()}
	svc := NewAuthService(fc, logging.Discard())

	s, err := svc.Authenticate(context.Background(), "runner@example.com", []byte("pw"))

	require.NoError(t, err)
	assert.Equal(t, "runner-42", s.DisplayName())
	assert.Equal(t, "runner@example.com", fc.LastLoginEmail)
	assert.Equal(t, []byte("pw"), fc.LastLoginPassword)
}

func TestAuthenticate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		loginErr error
		session  *garmin.Session
		wantText string
	}{
		{name: "bad credentials", loginErr: garmin.ErrUnauthorized, wantText: "credentials rejected"},
		{name: "service down", loginErr: garmin.ErrUnavailable, wantText: "login service unavailable"},
		{name: "mfa", loginErr: garmin.ErrMFARequired, wantText: "multi-factor"},
		{name: "other", loginErr: errors.New("boom"), wantText: "login failed"},
		{name: "nil session", wantText: "unusable session"},
		{
			name:     "expired session",
			session:  garmin.NewSession("token", "runner", time.Now().Add(-time.Minute)),
			wantText: "unusable session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{LoginRet: tt.session, LoginErr: tt.loginErr}
			svc := NewAuthService(fc, logging.Discard())

			s, err := svc.Authenticate(context.Background(), "runner@example.com", []byte("pw"))

			require.ErrorIs(t, err, common.ErrAuthentication)
			if tt.loginErr != nil {
				require.ErrorIs(t, err, tt.loginErr)
			}
			assert.Contains(t, err.Error(), tt.wantText)
			assert.Nil(t, s)
		})
	}
}

func TestAuthService_Close(t *testing.T) {
	fc := &fakeClient{CloseErr: errors.New("close failed")}
	svc := NewAuthService(fc, logging.Discard())

	require.EqualError(t, svc.Close(context.Background()), "close failed")
	assert.Equal(t, []string{"close"}, fc.Calls)
}
