package app

import (
	"errors"

	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
)

// Process exit codes.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitConfiguration  = 2
	ExitAuthentication = 3
	ExitDataFetch      = 4
	ExitStorage        = 5
)

// ExitCode maps an error returned by config loading or Run to the process
// exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, common.ErrConfiguration):
		return ExitConfiguration
	case errors.Is(err, common.ErrAuthentication):
		return ExitAuthentication
	case errors.Is(err, common.ErrDataFetch):
		return ExitDataFetch
	case errors.Is(err, common.ErrStorage):
		return ExitStorage
	default:
		return ExitFailure
	}
}
