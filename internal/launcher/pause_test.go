// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPauser_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mode     HoldMode
		terminal bool
		want     bool
	}{
		{name: "default", mode: "", want: true},
		{name: "always", mode: HoldAlways, want: true},
		{name: "never", mode: HoldNever, want: false},
		{name: "auto on terminal", mode: HoldAuto, terminal: true, want: true},
		{name: "auto on pipe", mode: HoldAuto, terminal: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			p := Pauser{
				Mode:       tt.mode,
				In:         strings.NewReader("\n"),
				Out:        &out,
				IsTerminal: func() bool { return tt.terminal },
			}
			if got := p.Wait(); got != tt.want {
				t.Errorf("Wait() = %v, want %v", got, tt.want)
			}
			if shown := strings.Contains(out.String(), PausePrompt); shown != tt.want {
				t.Errorf("prompt shown = %v, want %v (output %q)", shown, tt.want, out.String())
			}
		})
	}
}

func TestPauser_WaitReturnsOnEOF(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if !(Pauser{In: strings.NewReader(""), Out: &out}).Wait() {
		t.Fatal("Wait() = false, want true")
	}
}

func TestHoldMode_Validate(t *testing.T) {
	t.Parallel()

	for _, m := range []HoldMode{"", HoldAlways, HoldAuto, HoldNever} {
		if err := m.Validate(); err != nil {
			t.Errorf("HoldMode(%q).Validate() = %v", m, err)
		}
	}
	err := HoldMode("sometimes").Validate()
	if !errors.Is(err, ErrInvalidHoldMode) {
		t.Errorf("Validate() = %v, want ErrInvalidHoldMode", err)
	}
}
