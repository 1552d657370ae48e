// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"sms-launcher/internal/interpreter"
	"sms-launcher/pkg/platform"
)

// DefaultGracePeriod is how long an interrupted application may take to
// exit before it is killed.
const DefaultGracePeriod = 5 * time.Second

type (
	// Invocation describes one run of the application.
	Invocation struct {
		Interpreter interpreter.Interpreter
		EntryPoint  string
		Dir         string
		Stdin       io.Reader
		Stdout      io.Writer
		Stderr      io.Writer
		// GracePeriod overrides DefaultGracePeriod when positive.
		GracePeriod time.Duration
	}

	// Outcome is what the application run produced.
	Outcome struct {
		ExitCode    ExitCode
		Interrupted bool
	}
)

// Invoke runs the application in the foreground and waits for it. There is
// no timeout. When ctx is canceled the child is interrupted first and
// killed once the grace period expires.
//
// A non-zero exit is not an error here; the caller decides what it means.
func Invoke(ctx context.Context, inv Invocation) (Outcome, error) {
	argv := inv.Interpreter.Command(inv.EntryPoint)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Env = withPythonPath(os.Environ(), inv.Dir)
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr
	cmd.Cancel = func() error {
		if platform.IsWindows(platform.Current()) {
			return cmd.Process.Kill()
		}
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = inv.GracePeriod
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultGracePeriod
	}

	err := cmd.Run()
	interrupted := ctx.Err() != nil
	if err == nil {
		return Outcome{ExitCode: ExitSuccess, Interrupted: interrupted}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := ExitCode(exitErr.ExitCode())
		// -1 means the child died from a signal.
		if code.Validate() != nil {
			code = ExitFailure
		}
		return Outcome{ExitCode: code, Interrupted: interrupted}, nil
	}
	if interrupted {
		return Outcome{ExitCode: ExitFailure, Interrupted: true}, nil
	}
	return Outcome{ExitCode: ExitFailure}, fmt.Errorf("start application: %w", err)
}

// withPythonPath puts dir at the front of PYTHONPATH so the application can
// import its own packages relative to the project root.
func withPythonPath(env []string, dir string) []string {
	const key = "PYTHONPATH="

	out := make([]string, 0, len(env)+1)
	value := dir
	for _, kv := range env {
		if existing, ok := strings.CutPrefix(kv, key); ok {
			if existing != "" {
				value = dir + string(os.PathListSeparator) + existing
			}
			continue
		}
		out = append(out, kv)
	}
	return append(out, key+value)
}
