// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	"sms-launcher/internal/config"
	"sms-launcher/internal/interpreter"
	"sms-launcher/internal/issue"
	"sms-launcher/internal/launcher"
	"sms-launcher/pkg/platform"
)

func TestClassifyLaunchError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{
			name: "no interpreter",
			err:  &interpreter.NotFoundError{},
			want: issue.InterpreterNotFoundId,
		},
		{
			name: "version too low",
			err:  &launcher.VersionTooLowError{Required: launcher.DefaultMinVersion, Actual: interpreter.MustParseVersion("3.6.9")},
			want: issue.VersionTooLowId,
		},
		{
			name: "entry point missing",
			err:  &launcher.EntryPointMissingError{Path: "src/app.py", Err: fs.ErrNotExist},
			want: issue.EntryPointMissingId,
		},
		{
			name: "module missing",
			err:  fmt.Errorf("preflight: %w", &interpreter.ModuleMissingError{Module: "tkinter"}),
			want: issue.ModuleMissingId,
		},
		{
			name: "data dir blocked",
			err:  &launcher.DataDirError{Path: "data", Err: fs.ErrExist},
			want: issue.DataDirFailedId,
		},
		{
			name: "data dir permission denied",
			err:  &launcher.DataDirError{Path: "data", Err: os.ErrPermission},
			want: issue.PermissionDeniedId,
		},
		{
			name: "application failed",
			err:  &launcher.ApplicationFailedError{ExitCode: 2},
			want: issue.ApplicationFailedId,
		},
		{
			name: "invalid config",
			err:  &config.InvalidConfigError{},
			want: issue.ConfigLoadFailedId,
		},
		{
			name: "config load actionable error",
			err: issue.NewErrorContext().
				WithOperation("load configuration").
				Wrap(errors.New("syntax error")).
				BuildError(),
			want: issue.ConfigLoadFailedId,
		},
		{
			name: "unrelated",
			err:  errors.New("something else"),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := classifyLaunchError(tt.err); got != tt.want {
				t.Errorf("classifyLaunchError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExplainLaunchError(t *testing.T) {
	t.Parallel()

	res := launcher.Result{Interpreter: interpreter.Interpreter{Path: "/usr/bin/python3"}}
	tests := []struct {
		name       string
		err        error
		wantOp     string
		wantInText []string
	}{
		{
			name:       "not found suggests python.org",
			err:        &interpreter.NotFoundError{},
			wantOp:     "find Python interpreter",
			wantInText: []string{"Install Python 3.7 or higher", pythonDownloadURL, "PATH"},
		},
		{
			name:       "too low names the floor",
			err:        &launcher.VersionTooLowError{Interpreter: "python3", Required: interpreter.MustParseVersion("3.8"), Actual: interpreter.MustParseVersion("3.7.3")},
			wantOp:     "check Python version",
			wantInText: []string{"/usr/bin/python3", "Python 3.8 or higher is required, found 3.7.3", "Install Python 3.8 or higher"},
		},
		{
			name:       "entry point",
			err:        &launcher.EntryPointMissingError{Path: "/srv/app/src/app.py", Err: fs.ErrNotExist},
			wantOp:     "find application entry point",
			wantInText: []string{"/srv/app/src/app.py", "project directory", "properly installed"},
		},
		{
			name:       "module",
			err:        &interpreter.ModuleMissingError{Module: "requests"},
			wantOp:     "check Python modules",
			wantInText: []string{"pip install requests"},
		},
		{
			name:       "data dir",
			err:        &launcher.DataDirError{Path: "/srv/app/data", Err: fs.ErrExist},
			wantOp:     "prepare data directory",
			wantInText: []string{"/srv/app/data", "writable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := explainLaunchError(tt.err, launcher.DefaultMinVersion, res)
			var ae *issue.ActionableError
			if !errors.As(got, &ae) {
				t.Fatalf("explainLaunchError() = %T, want *issue.ActionableError", got)
			}
			if ae.Operation != tt.wantOp {
				t.Errorf("Operation = %q, want %q", ae.Operation, tt.wantOp)
			}
			if !errors.Is(got, tt.err) {
				t.Error("explained error does not wrap the original")
			}
			text := ae.Format(false)
			for _, want := range tt.wantInText {
				if !strings.Contains(text, want) {
					t.Errorf("Format() = %q, missing %q", text, want)
				}
			}
		})
	}
}

func TestExplainLaunchError_ApplicationFailureUnchanged(t *testing.T) {
	t.Parallel()

	appErr := &launcher.ApplicationFailedError{ExitCode: 4}
	if got := explainLaunchError(appErr, launcher.DefaultMinVersion, launcher.Result{}); got != error(appErr) {
		t.Errorf("explainLaunchError() = %v, want the application error unchanged", got)
	}
}

func TestModuleInstallHints(t *testing.T) {
	t.Parallel()

	linux := moduleInstallHints("tkinter", platform.Linux)
	if len(linux) != 2 || !strings.Contains(linux[0], "apt-get install python3-tk") || !strings.Contains(linux[1], "yum install tkinter") {
		t.Errorf("linux tkinter hints = %q", linux)
	}

	for _, goos := range []string{platform.Windows, platform.Darwin} {
		hints := moduleInstallHints("tkinter", goos)
		if len(hints) != 1 || !strings.Contains(hints[0], pythonDownloadURL) {
			t.Errorf("%s tkinter hints = %q", goos, hints)
		}
	}

	if hints := moduleInstallHints("openpyxl", platform.Linux); len(hints) != 1 || !strings.Contains(hints[0], "pip install openpyxl") {
		t.Errorf("pip hints = %q", hints)
	}
}

func TestRenderLaunchError(t *testing.T) {
	t.Parallel()

	t.Run("application failure", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		renderLaunchError(&out, &launcher.ApplicationFailedError{ExitCode: 3}, false, "notty")
		if !strings.Contains(out.String(), "Application exited with error code 3") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("verbose appends catalogue entry", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		err := explainLaunchError(&interpreter.NotFoundError{}, launcher.DefaultMinVersion, launcher.Result{})
		renderLaunchError(&out, err, true, "notty")
		text := out.String()
		if !strings.Contains(text, "failed to find Python interpreter") {
			t.Errorf("output missing error line: %q", text)
		}
		if !strings.Contains(text, "Error chain:") {
			t.Errorf("verbose output missing error chain: %q", text)
		}
		if !strings.Contains(text, "No Python interpreter found") {
			t.Errorf("verbose output missing catalogue entry: %q", text)
		}
	})
}

func TestGlamourStyle_ForcedSchemes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if got := glamourStyle(&buf, config.ColorSchemeLight); got != "light" {
		t.Errorf("light = %q", got)
	}
	if got := glamourStyle(&buf, config.ColorSchemeDark); got != "dark" {
		t.Errorf("dark = %q", got)
	}
}

func TestGlamourStyle_AutoFollowsWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if got := glamourStyle(&buf, config.ColorSchemeAuto); got != "notty" {
		t.Errorf("buffer = %q, want notty", got)
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = f.Close() })
	if got := glamourStyle(f, config.ColorSchemeAuto); got != "notty" {
		t.Errorf("regular file = %q, want notty", got)
	}
}
