// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"errors"
	"slices"
	"testing"

	"sms-launcher/pkg/platform"
)

func TestDefaultCandidates(t *testing.T) {
	t.Parallel()

	if got := DefaultCandidates(platform.Windows); !slices.Equal(got, []string{"py", "python3", "python"}) {
		t.Errorf("DefaultCandidates(windows) = %v", got)
	}
	for _, goos := range []string{platform.Linux, platform.Darwin} {
		if got := DefaultCandidates(goos); !slices.Equal(got, []string{"python3", "python"}) {
			t.Errorf("DefaultCandidates(%s) = %v", goos, got)
		}
	}
}

func TestParseCandidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spec     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{name: "bare name", spec: "python3", wantName: "python3"},
		{name: "launcher with version flag", spec: "py -3", wantName: "py", wantArgs: []string{"-3"}},
		{name: "surrounding space", spec: "  python  ", wantName: "python"},
		{name: "quoted path", spec: `"/opt/my python/bin/python3" -X utf8`, wantName: "/opt/my python/bin/python3", wantArgs: []string{"-X", "utf8"}},
		{name: "empty", spec: "", wantErr: true},
		{name: "whitespace only", spec: "   ", wantErr: true},
		{name: "unterminated quote", spec: `"python3`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := ParseCandidate(tt.spec)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCandidate) {
					t.Fatalf("ParseCandidate(%q) error = %v, want ErrInvalidCandidate", tt.spec, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCandidate(%q) error = %v", tt.spec, err)
			}
			if c.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", c.Name, tt.wantName)
			}
			if len(c.Args) != 0 || len(tt.wantArgs) != 0 {
				if !slices.Equal(c.Args, tt.wantArgs) {
					t.Errorf("Args = %q, want %q", c.Args, tt.wantArgs)
				}
			}
		})
	}
}

func TestParseCandidates_ReportsIndex(t *testing.T) {
	t.Parallel()

	_, err := ParseCandidates([]string{"python3", ""})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "candidate 1: invalid interpreter candidate: empty" {
		t.Errorf("error = %q", got)
	}

	cs, err := ParseCandidates([]string{"py -3", "python"})
	if err != nil {
		t.Fatalf("ParseCandidates() error = %v", err)
	}
	if cs[0].String() != "py -3" || cs[1].String() != "python" {
		t.Errorf("candidates = %v", cs)
	}
}
