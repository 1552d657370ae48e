// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"sms-launcher/pkg/platform"
)

// ErrInvalidCandidate is returned when a candidate string cannot be parsed.
var ErrInvalidCandidate = errors.New("invalid interpreter candidate")

// Candidate is one interpreter command to try, e.g. "py" with Args ["-3"].
type Candidate struct {
	// Name is the command looked up on PATH (or an absolute path).
	Name string
	// Args are passed before anything else on every invocation.
	Args []string
}

// String returns the candidate as it would be typed in a shell.
func (c Candidate) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// DefaultCandidates returns the probe order for goos: the platform-preferred
// short name first, then the versioned name, then the bare name. The py
// launcher only ships on Windows, so elsewhere the order starts at python3.
func DefaultCandidates(goos string) []string {
	if platform.IsWindows(goos) {
		return []string{"py", "python3", "python"}
	}
	return []string{"python3", "python"}
}

// ParseCandidate splits spec with POSIX shell word rules, so quoted paths
// with spaces survive: `"/opt/my python/bin/python3" -X utf8`.
// The environment is not consulted: "$VAR" expands to nothing.
func ParseCandidate(spec string) (Candidate, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Candidate{}, fmt.Errorf("%w: empty", ErrInvalidCandidate)
	}

	fields, err := shell.Fields(spec, func(string) string { return "" })
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: %q: %w", ErrInvalidCandidate, spec, err)
	}
	if len(fields) == 0 || fields[0] == "" {
		return Candidate{}, fmt.Errorf("%w: %q", ErrInvalidCandidate, spec)
	}

	return Candidate{Name: fields[0], Args: fields[1:]}, nil
}

// ParseCandidates parses specs in order, failing on the first invalid one.
func ParseCandidates(specs []string) ([]Candidate, error) {
	out := make([]Candidate, 0, len(specs))
	for i, spec := range specs {
		c, err := ParseCandidate(spec)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
