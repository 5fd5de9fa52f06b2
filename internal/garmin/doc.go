// Package garmin is the transport layer for Garmin Connect.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services layer:
// Login, DailySleep, ActivitiesForDate and Close. HTTPClient implements it
// over net/http:
//
//  1. Login walks the SSO widget flow (embed page for cookies, sign-in page
//     for the CSRF token, credential POST for a service ticket), exchanges
//     the ticket for an OAuth2 bearer token and loads the social profile.
//     It returns a fully populated *Session or an error, never both.
//  2. DailySleep and ActivitiesForDate query the Connect API with the
//     session's bearer token and decode the raw payloads (SleepDTO,
//     ActivityDTO). Reshaping into domain records happens in services.
//
// # Error Handling
//
// Failures map onto sentinel errors, matched with errors.Is:
// ErrUnauthorized (rejected credentials or token), ErrUnavailable (network
// failure, timeout, 5xx, 429), ErrMalformedResponse (undecodable payload or
// unexpected SSO page) and ErrMFARequired. A day without data is not an
// error: DailySleep returns (nil, nil) and ActivitiesForDate an empty slice.
package garmin
