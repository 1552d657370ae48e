// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is returned when a version string cannot be parsed.
var ErrInvalidVersion = errors.New("invalid version")

// versionPattern matches "3.9", "3.9.1", "Python 3.13.0rc1" and "3.12.0+".
var versionPattern = regexp.MustCompile(`(?:^|\s|Python\s+)(\d+)\.(\d+)(?:\.(\d+))?((?:a|b|rc)\d+)?\+?(?:\s|$)`)

// Version is a Python release number.
type Version struct {
	Major int
	Minor int
	Patch int
	// Pre is a pre-release tag such as "rc1"; empty for final releases.
	Pre string
}

// ParseVersion extracts a version from probe output ("Python 3.9.1") or a
// bare "3.7".
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	var v Version
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}
	v.Pre = m[4]
	return v, nil
}

// MustParseVersion is ParseVersion for constants; it panics on bad input.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns "major.minor.patch" plus any pre-release tag.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d%s", v.Major, v.Minor, v.Patch, v.Pre)
}

// MajorMinor returns "major.minor", the form shown to users.
func (v Version) MajorMinor() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// semver renders v in the "vMAJOR.MINOR.PATCH[-PRE]" form x/mod/semver expects.
func (v Version) semver() string {
	s := fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}

// Compare returns -1, 0 or +1 in version order. Pre-releases sort before
// their final release.
func (v Version) Compare(w Version) int {
	return semver.Compare(v.semver(), w.semver())
}

// AtLeast reports whether v satisfies the minimum min. Pre-release tags on v
// are ignored: 3.7.0rc1 satisfies a 3.7 floor.
func (v Version) AtLeast(minimum Version) bool {
	release := v
	release.Pre = ""
	return release.Compare(minimum) >= 0
}
