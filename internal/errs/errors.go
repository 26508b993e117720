// Package errs defines the sentinel errors shared across the pipelines.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration covers missing or invalid credentials and database settings.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrAuthentication is returned when Garmin Connect rejects the credentials
	// or cannot be reached during login.
	ErrAuthentication = errors.New("authentication failed")

	// ErrFetch covers network or API failures while retrieving remote data.
	ErrFetch = errors.New("fetch failed")

	// ErrInsufficientData is returned when the step window yields no records.
	ErrInsufficientData = errors.New("insufficient data")
)

// Wrapf wraps err with formatted context, preserving the error chain.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
