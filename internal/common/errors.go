// Package common defines sentinel errors shared by every stage of the
// garmin2obsidian pipeline. Each stage wraps its failures with exactly one of
// these so callers can classify a run failure with errors.Is.
package common

import "errors"

var (
	// ErrConfiguration reports a missing or invalid setting (env var, config
	// file, flag) or an inaccessible vault directory.
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication reports rejected credentials or a login flow that
	// could not be completed.
	ErrAuthentication = errors.New("authentication error")

	// ErrDataFetch reports a failed or malformed sleep/activity query.
	ErrDataFetch = errors.New("data fetch error")

	// ErrStorage reports a failure writing the daily note.
	ErrStorage = errors.New("storage error")
)
