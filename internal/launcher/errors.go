// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"errors"
	"fmt"

	"sms-launcher/internal/interpreter"
)

var (
	// ErrInterpreterNotFound is returned when no candidate answered the probe.
	ErrInterpreterNotFound = interpreter.ErrInterpreterNotFound
	// ErrVersionTooLow is returned when the selected interpreter is older than the floor.
	ErrVersionTooLow = errors.New("Python version too low") //nolint:staticcheck // proper noun
	// ErrEntryPointMissing is returned when the entry point is absent or not a regular file.
	ErrEntryPointMissing = errors.New("application entry point not found")
	// ErrModuleMissing is returned when a required module cannot be imported.
	ErrModuleMissing = interpreter.ErrModuleMissing
	// ErrDataDir is returned when the data directory cannot be provisioned.
	ErrDataDir = errors.New("cannot provision data directory")
	// ErrApplicationFailed is returned when the application exits non-zero.
	ErrApplicationFailed = errors.New("application exited with an error")
)

type (
	// VersionTooLowError reports the floor and the version actually found.
	// It wraps ErrVersionTooLow.
	VersionTooLowError struct {
		Interpreter string
		Required    interpreter.Version
		Actual      interpreter.Version
	}

	// EntryPointMissingError names the path that was checked.
	// It wraps ErrEntryPointMissing.
	EntryPointMissingError struct {
		Path string
		// Err is the stat error, or nil when the path exists but is not a regular file.
		Err error
	}

	// DataDirError wraps the filesystem error behind a failed provisioning.
	DataDirError struct {
		Path string
		Err  error
	}

	// ApplicationFailedError carries the application's exit status.
	// It wraps ErrApplicationFailed.
	ApplicationFailedError struct {
		ExitCode ExitCode
	}
)

// Error implements the error interface.
func (e *VersionTooLowError) Error() string {
	return fmt.Sprintf("Python %s or higher is required, found %s (%s)",
		e.Required.MajorMinor(), e.Actual.String(), e.Interpreter)
}

// Unwrap returns ErrVersionTooLow.
func (e *VersionTooLowError) Unwrap() error { return ErrVersionTooLow }

// Error implements the error interface.
func (e *EntryPointMissingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("application file is not a regular file: %s", e.Path)
	}
	return fmt.Sprintf("application file not found: %s", e.Path)
}

// Unwrap returns both the sentinel and the underlying stat error.
func (e *EntryPointMissingError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEntryPointMissing}
	}
	return []error{ErrEntryPointMissing, e.Err}
}

// Error implements the error interface.
func (e *DataDirError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrDataDir, e.Path, e.Err)
}

// Unwrap returns both ErrDataDir and the filesystem error.
func (e *DataDirError) Unwrap() []error { return []error{ErrDataDir, e.Err} }

// Error implements the error interface.
func (e *ApplicationFailedError) Error() string {
	return fmt.Sprintf("application exited with error code %d", e.ExitCode)
}

// Unwrap returns ErrApplicationFailed.
func (e *ApplicationFailedError) Unwrap() error { return ErrApplicationFailed }
