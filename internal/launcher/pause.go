// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// PausePrompt is shown before the launcher exits on failure.
const PausePrompt = "Press Enter to exit..."

const (
	// HoldAlways waits for Enter after every failure.
	HoldAlways HoldMode = "always"
	// HoldAuto waits only when stdin is a terminal.
	HoldAuto HoldMode = "auto"
	// HoldNever never waits.
	HoldNever HoldMode = "never"
)

// ErrInvalidHoldMode is the sentinel error wrapped by InvalidHoldModeError.
var ErrInvalidHoldMode = errors.New("invalid hold mode")

type (
	// HoldMode controls the hold-open prompt shown on failure, which keeps
	// a console window opened by double-click from closing before the
	// diagnostic can be read.
	HoldMode string

	// InvalidHoldModeError is returned when a HoldMode value is not recognized.
	InvalidHoldModeError struct {
		Value HoldMode
	}

	// Pauser shows the hold-open prompt.
	Pauser struct {
		Mode HoldMode
		In   io.Reader
		Out  io.Writer
		// IsTerminal reports whether In is interactive; nil checks os.Stdin.
		IsTerminal func() bool
	}
)

// Error implements the error interface.
func (e *InvalidHoldModeError) Error() string {
	return fmt.Sprintf("invalid hold mode %q (expected always, auto or never)", e.Value)
}

// Unwrap returns ErrInvalidHoldMode.
func (e *InvalidHoldModeError) Unwrap() error { return ErrInvalidHoldMode }

// Validate returns an *InvalidHoldModeError for unknown modes. The empty
// mode is accepted and behaves like HoldAlways.
func (m HoldMode) Validate() error {
	switch m {
	case "", HoldAlways, HoldAuto, HoldNever:
		return nil
	default:
		return &InvalidHoldModeError{Value: m}
	}
}

// String returns the mode name.
func (m HoldMode) String() string { return string(m) }

// Wait prints the prompt and blocks until a line (or EOF) arrives on In.
// It reports whether the prompt was shown.
func (p Pauser) Wait() bool {
	if !p.shouldWait() {
		return false
	}
	fmt.Fprintln(p.Out)
	fmt.Fprint(p.Out, PausePrompt)
	if p.In != nil {
		// EOF or a read error ends the wait just like Enter.
		_, _ = bufio.NewReader(p.In).ReadString('\n')
	}
	fmt.Fprintln(p.Out)
	return true
}

func (p Pauser) shouldWait() bool {
	switch p.Mode {
	case HoldNever:
		return false
	case HoldAuto:
		if p.IsTerminal != nil {
			return p.IsTerminal()
		}
		return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
	default:
		return true
	}
}
