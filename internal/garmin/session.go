package garmin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is an authenticated handle to Garmin Connect. It is only ever
// created fully populated by Login and is discarded at process exit.
type Session struct {
	accessToken string
	tokenType   string
	expiresAt   time.Time
	displayName string
}

// newSession builds a Session from an OAuth2 token response. The expiry is
// taken from the token's exp claim when it is a JWT, and from expires_in
// otherwise. The signature is not checked: the token is only ever sent back
// to the issuer.
func newSession(tok tokenResponse, displayName string, now time.Time) (*Session, error) {
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrMalformedResponse)
	}
	if displayName == "" {
		return nil, fmt.Errorf("%w: empty display name", ErrMalformedResponse)
	}

	expiresAt, err := tokenExpiry(tok.AccessToken)
	if err != nil {
		if tok.ExpiresIn <= 0 {
			return nil, fmt.Errorf("%w: token carries no expiry", ErrMalformedResponse)
		}
		expiresAt = now.Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	if !expiresAt.After(now) {
		return nil, fmt.Errorf("%w: token already expired", ErrUnauthorized)
	}

	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &Session{
		accessToken: tok.AccessToken,
		tokenType:   tokenType,
		expiresAt:   expiresAt,
		displayName: displayName,
	}, nil
}

// NewSession wraps an already obtained bearer token. Client implementations
// other than HTTPClient, and tests, use it; HTTPClient.Login builds sessions
// itself.
func NewSession(accessToken, displayName string, expiresAt time.Time) *Session {
	return &Session{
		accessToken: accessToken,
		tokenType:   "Bearer",
		expiresAt:   expiresAt,
		displayName: displayName,
	}
}

func tokenExpiry(token string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// DisplayName is the account's public name, used in wellness endpoint paths.
func (s *Session) DisplayName() string {
	return s.displayName
}

// ExpiresAt is when the bearer token stops being accepted.
func (s *Session) ExpiresAt() time.Time {
	return s.expiresAt
}

// Valid reports whether the session can still authorize requests at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.accessToken != "" && now.Before(s.expiresAt)
}

// String never reveals the token.
func (s *Session) String() string {
	return fmt.Sprintf("Session{displayName: %q, expiresAt: %s}", s.displayName, s.expiresAt.Format(time.RFC3339))
}

func (s *Session) authorize(req *http.Request) {
	scheme := s.tokenType
	if scheme == "" || strings.EqualFold(scheme, "bearer") {
		scheme = "Bearer"
	}
	req.Header.Set("Authorization", scheme+" "+s.accessToken)
}
