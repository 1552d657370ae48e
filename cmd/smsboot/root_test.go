// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/fang"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-03-01T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-03-01T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestRootCommand_RejectsArguments(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rootCmd := newRootCommand(NewApp(Dependencies{Stdout: &out, Stderr: &out}))
	rootCmd.SetArgs([]string{"extra"})
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for positional argument")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("error = %v", err)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	rootCmd := newRootCommand(NewApp(Dependencies{}))
	for _, name := range []string{"scaffold", "doctor", "config"} {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered (got %v, err %v)", name, c, err)
		}
	}
	for _, flag := range []string{"verbose", "config", "project-dir", "no-pause"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := formatErrorForDisplay(errString("boom"), false)
	if plain != "boom" {
		t.Errorf("plain error = %q", plain)
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestHandleError(t *testing.T) {
	t.Parallel()

	t.Run("rendered exit error stays quiet", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		handleError(&out, fang.Styles{}, &ExitError{Code: 3, Err: errString("application exited with error code 3")})
		if out.Len() != 0 {
			t.Errorf("handleError() wrote %q, want nothing", out.String())
		}
	})

	t.Run("wrapped exit error stays quiet", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		handleError(&out, fang.Styles{}, fmt.Errorf("run: %w", &ExitError{Code: 1}))
		if out.Len() != 0 {
			t.Errorf("handleError() wrote %q, want nothing", out.String())
		}
	})

	t.Run("unrendered error is printed", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		handleError(&out, fang.Styles{}, errString("unknown flag: --bogus"))
		if !strings.Contains(out.String(), "unknown flag: --bogus") {
			t.Errorf("handleError() wrote %q", out.String())
		}
	})
}
