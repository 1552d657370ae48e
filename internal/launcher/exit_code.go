// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess is reported when the application ran and exited cleanly.
	ExitSuccess ExitCode = 0
	// ExitFailure is reported for every bootstrap precondition failure.
	ExitFailure ExitCode = 1
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is a process exit status. Valid codes are 0-255.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an *InvalidExitCodeError when c is outside 0-255.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether c is zero.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String returns the decimal form of c.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// ExitCodeOf returns the status the launcher itself should exit with after
// Run returned err. Application failures carry the child's status; every
// other failure maps to ExitFailure.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var appErr *ApplicationFailedError
	if errors.As(err, &appErr) && !appErr.ExitCode.IsSuccess() && appErr.ExitCode.Validate() == nil {
		return appErr.ExitCode
	}
	return ExitFailure
}
