// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeInterpreter describes a shell script standing in for a Python
// interpreter. Only POSIX hosts can run it; callers should use
// SkipOnWindows first.
type FakeInterpreter struct {
	// Version is printed as "Python <Version>" for --version.
	// Empty makes the version probe fail with status 1.
	Version string
	// VersionOnStderr prints the banner on stderr like Python 2 does.
	VersionOnStderr bool
	// MissingModules makes `-c "import <name>"` fail for these names.
	MissingModules []string
	// ExitCode is returned when the fake runs the application.
	ExitCode int
	// Output is printed on stdout when the fake runs the application.
	Output string
	// LogFile, when set, receives one line per application run holding
	// the working directory followed by the arguments.
	LogFile string
}

// SkipOnWindows skips tests that install fake interpreters.
func SkipOnWindows(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreters are POSIX shell scripts")
	}
}

// Install writes the fake as an executable named name inside dir and
// returns its path.
func (f FakeInterpreter) Install(t testing.TB, dir, name string) string {
	t.Helper()
	MustMkdirAll(t, dir, 0o755)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(f.script()), 0o755); err != nil { //nolint:gosec // test executable
		t.Fatalf("failed to write fake interpreter %s: %v", path, err)
	}
	return path
}

func (f FakeInterpreter) script() string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")

	b.WriteString("if [ \"$1\" = \"--version\" ]; then\n")
	switch {
	case f.Version == "":
		b.WriteString("  echo 'unknown option --version' >&2\n  exit 1\n")
	case f.VersionOnStderr:
		fmt.Fprintf(&b, "  echo 'Python %s' >&2\n  exit 0\n", f.Version)
	default:
		fmt.Fprintf(&b, "  echo 'Python %s'\n  exit 0\n", f.Version)
	}
	b.WriteString("fi\n")

	b.WriteString("if [ \"$1\" = \"-c\" ]; then\n  case \"$2\" in\n")
	for _, m := range f.MissingModules {
		fmt.Fprintf(&b, "    \"import %s\") echo \"ModuleNotFoundError: No module named '%s'\" >&2; exit 1 ;;\n", m, m)
	}
	b.WriteString("  esac\n  exit 0\nfi\n")

	if f.LogFile != "" {
		fmt.Fprintf(&b, "echo \"$(pwd) $*\" >> '%s'\n", f.LogFile)
	}
	if f.Output != "" {
		fmt.Fprintf(&b, "echo '%s'\n", f.Output)
	}
	fmt.Fprintf(&b, "exit %d\n", f.ExitCode)
	return b.String()
}

// ReadLog returns the non-empty lines recorded in a fake's LogFile.
// A missing file means the application was never run.
func ReadLog(t testing.TB, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
