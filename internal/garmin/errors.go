package garmin

import "errors"

var (
	ErrUnavailable       = errors.New("garmin connect unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
	ErrMFARequired       = errors.New("multi-factor authentication required")
)
