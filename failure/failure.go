// Package failure holds the error kinds shared by the conversion packages.
// Callers test for a kind with errors.Is.
package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks a malformed or inconsistent whitelist, spacer or layout setting.
	// It is always fatal and is raised before any read is processed.
	ErrConfig = errors.New("configuration error")

	// ErrPairMismatch marks R1 and R2 streams that fell out of lockstep.
	ErrPairMismatch = errors.New("read pair mismatch")

	// ErrMalformedRead marks a single R1 record too short for the layout.
	// The pipeline counts it as a rejection and carries on.
	ErrMalformedRead = errors.New("malformed read")
)

// Config returns an error wrapping ErrConfig.
func Config(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// PairMismatch returns an error wrapping ErrPairMismatch.
func PairMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPairMismatch, fmt.Sprintf(format, args...))
}

// MalformedRead returns an error wrapping ErrMalformedRead.
func MalformedRead(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRead, fmt.Sprintf(format, args...))
}
