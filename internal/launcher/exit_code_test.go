// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode_Validate(t *testing.T) {
	t.Parallel()

	for _, c := range []ExitCode{0, 1, 127, 255} {
		if err := c.Validate(); err != nil {
			t.Errorf("ExitCode(%d).Validate() = %v", c, err)
		}
	}
	for _, c := range []ExitCode{-1, 256} {
		err := c.Validate()
		if !errors.Is(err, ErrInvalidExitCode) {
			t.Errorf("ExitCode(%d).Validate() = %v, want ErrInvalidExitCode", c, err)
		}
	}
}

func TestExitCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{name: "nil", err: nil, want: 0},
		{name: "precondition", err: &EntryPointMissingError{Path: "src/app.py"}, want: 1},
		{name: "application status", err: &ApplicationFailedError{ExitCode: 42}, want: 42},
		{name: "wrapped application status", err: fmt.Errorf("launch: %w", &ApplicationFailedError{ExitCode: 2}), want: 2},
		{name: "bogus application status", err: &ApplicationFailedError{ExitCode: 300}, want: 1},
		{name: "plain error", err: errors.New("boom"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeOf(tt.err); got != tt.want {
				t.Errorf("ExitCodeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}
