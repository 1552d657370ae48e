// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"strings"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// Current returns the host OS name (runtime.GOOS).
func Current() string {
	return runtime.GOOS
}

// IsWindows reports whether goos names Windows.
func IsWindows(goos string) bool {
	return goos == Windows
}

// TrimExecutableSuffix strips a trailing ".exe" (any case) from name.
func TrimExecutableSuffix(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name[:len(name)-len(".exe")]
	}
	return name
}
