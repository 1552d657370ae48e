// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{in: "Python 3.9.1", want: Version{Major: 3, Minor: 9, Patch: 1}},
		{in: "Python 3.9.1\n", want: Version{Major: 3, Minor: 9, Patch: 1}},
		{in: "Python 2.7.18\r\n", want: Version{Major: 2, Minor: 7, Patch: 18}},
		{in: "Python 3.13.0rc1", want: Version{Major: 3, Minor: 13, Pre: "rc1"}},
		{in: "Python 3.12.0+", want: Version{Major: 3, Minor: 12}},
		{in: "3.7", want: Version{Major: 3, Minor: 7}},
		{in: "3.10.4", want: Version{Major: 3, Minor: 10, Patch: 4}},
		{in: "", wantErr: true},
		{in: "Python", wantErr: true},
		{in: "unknown option --version", wantErr: true},
		{in: "3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidVersion) {
					t.Fatalf("ParseVersion(%q) error = %v, want ErrInvalidVersion", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"3.10", "3.9", 1},
		{"3.9", "3.10", -1},
		{"3.7", "3.7.0", 0},
		{"3.7.1", "3.7", 1},
		{"3.13.0rc1", "3.13.0", -1},
		{"2.7.18", "3.0", -1},
	}

	for _, tt := range tests {
		got := MustParseVersion(tt.a).Compare(MustParseVersion(tt.b))
		if got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVersion_AtLeast(t *testing.T) {
	t.Parallel()

	floor := MustParseVersion("3.7")
	tests := []struct {
		actual string
		want   bool
	}{
		{"3.6", false},
		{"3.6.15", false},
		{"2.7.18", false},
		{"3.7", true},
		{"3.7.0rc1", true},
		{"3.9", true},
		{"3.10.0", true},
		{"4.0", true},
	}

	for _, tt := range tests {
		if got := MustParseVersion(tt.actual).AtLeast(floor); got != tt.want {
			t.Errorf("%s.AtLeast(3.7) = %v, want %v", tt.actual, got, tt.want)
		}
	}
}

func TestVersion_String(t *testing.T) {
	t.Parallel()

	v := MustParseVersion("Python 3.13.0rc1")
	if v.String() != "3.13.0rc1" {
		t.Errorf("String() = %q", v.String())
	}
	if v.MajorMinor() != "3.13" {
		t.Errorf("MajorMinor() = %q", v.MajorMinor())
	}
}
