// Package calcerr holds the failure kinds shared by the calculators.
package calcerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for missing, non-numeric or inconsistent inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedMode is returned when no calculator exists for a beatmap's game mode.
	ErrUnsupportedMode = errors.New("unsupported game mode")

	// ErrUnsupportedScoreVersion is returned for score versions other than 1 and 2.
	ErrUnsupportedScoreVersion = errors.New("unsupported score version")
)

// Invalid wraps ErrInvalidInput with a formatted reason.
func Invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, a...))
}
