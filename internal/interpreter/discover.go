// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultProbeTimeout bounds a single version probe.
const DefaultProbeTimeout = 5 * time.Second

var (
	// ErrInterpreterNotFound is returned when no candidate answers a version probe.
	ErrInterpreterNotFound = errors.New("no Python interpreter found")
	// ErrModuleMissing is returned when the interpreter cannot import a module.
	ErrModuleMissing = errors.New("required Python module missing")
)

type (
	// Interpreter is the result of discovery. It is a value: once returned it
	// is never modified, and every later step receives it explicitly.
	Interpreter struct {
		Candidate Candidate
		// Path is the resolved executable.
		Path    string
		Version Version
	}

	// Attempt records the outcome of probing one candidate.
	Attempt struct {
		Candidate Candidate
		Path      string
		Err       error
	}

	// NotFoundError lists every failed attempt. It wraps ErrInterpreterNotFound.
	NotFoundError struct {
		Attempts []Attempt
	}

	// ModuleMissingError names the module that failed to import.
	// It wraps ErrModuleMissing.
	ModuleMissingError struct {
		Module string
		Output string
	}

	// Prober asks one candidate for its version.
	Prober interface {
		Probe(ctx context.Context, c Candidate) (Interpreter, error)
	}

	// ExecProber probes candidates by running "<candidate> --version".
	ExecProber struct {
		// Timeout bounds each probe; zero means DefaultProbeTimeout.
		Timeout time.Duration
		// LookPath resolves command names; nil means exec.LookPath.
		LookPath func(string) (string, error)
		// Dir anchors candidate names that are relative paths, such as
		// venv/bin/python. Empty means the working directory.
		Dir string
	}

	// Discoverer runs the ordered probe.
	Discoverer struct {
		Prober Prober
		// Observe, when set, is called after every probe.
		Observe func(Attempt)
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	names := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		names = append(names, a.Candidate.String())
	}
	return fmt.Sprintf("%s (tried: %s)", ErrInterpreterNotFound, strings.Join(names, ", "))
}

// Unwrap returns ErrInterpreterNotFound.
func (e *NotFoundError) Unwrap() error { return ErrInterpreterNotFound }

// Error implements the error interface.
func (e *ModuleMissingError) Error() string {
	return fmt.Sprintf("cannot import Python module %q", e.Module)
}

// Unwrap returns ErrModuleMissing.
func (e *ModuleMissingError) Unwrap() error { return ErrModuleMissing }

// Command returns the argv that runs the interpreter with extra args,
// candidate args first.
func (i Interpreter) Command(args ...string) []string {
	argv := make([]string, 0, 1+len(i.Candidate.Args)+len(args))
	argv = append(argv, i.Path)
	argv = append(argv, i.Candidate.Args...)
	return append(argv, args...)
}

// Discover probes candidates in order and returns the first that answers.
// It never retries a candidate.
func (d Discoverer) Discover(ctx context.Context, candidates []Candidate) (Interpreter, error) {
	prober := d.Prober
	if prober == nil {
		prober = ExecProber{}
	}

	notFound := &NotFoundError{}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return Interpreter{}, fmt.Errorf("interpreter discovery canceled: %w", err)
		}

		interp, err := prober.Probe(ctx, c)
		attempt := Attempt{Candidate: c, Path: interp.Path, Err: err}
		if d.Observe != nil {
			d.Observe(attempt)
		}
		if err == nil {
			return interp, nil
		}
		notFound.Attempts = append(notFound.Attempts, attempt)
	}
	return Interpreter{}, notFound
}

// Probe resolves c on PATH and runs it with --version. Python 2 prints the
// banner on stderr, so both streams are searched. The returned Path is
// absolute whenever c names a file by path, so later runs from another
// directory start the same binary.
func (p ExecProber) Probe(ctx context.Context, c Candidate) (Interpreter, error) {
	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(p.resolve(c.Name))
	if err != nil {
		return Interpreter{}, err
	}
	if isPathName(path) && !filepath.IsAbs(path) {
		if path, err = filepath.Abs(path); err != nil {
			return Interpreter{}, err
		}
	}

	interp := Interpreter{Candidate: c, Path: path}
	out, err := p.run(ctx, interp.Command("--version"))
	if err != nil {
		return interp, fmt.Errorf("%s --version: %w", c, err)
	}

	v, err := ParseVersion(out)
	if err != nil {
		return interp, fmt.Errorf("%s --version: %w", c, err)
	}
	interp.Version = v
	return interp, nil
}

// CheckModule runs `-c "import <module>"` with the interpreter.
func (p ExecProber) CheckModule(ctx context.Context, interp Interpreter, module string) error {
	out, err := p.run(ctx, interp.Command("-c", "import "+module))
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ModuleMissingError{Module: module, Output: strings.TrimSpace(out)}
	}
	return fmt.Errorf("check module %s: %w", module, err)
}

// resolve joins path-like relative names onto Dir. Bare names are left for
// the PATH search.
func (p ExecProber) resolve(name string) string {
	if p.Dir == "" || filepath.IsAbs(name) || !isPathName(name) {
		return name
	}
	return filepath.Join(p.Dir, name)
}

func isPathName(name string) bool {
	return strings.ContainsAny(name, `/\`)
}

func (p ExecProber) run(ctx context.Context, argv []string) (string, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return out.String(), fmt.Errorf("timed out after %s: %w", timeout, ctx.Err())
		}
		if ctx.Err() != nil {
			return out.String(), ctx.Err()
		}
		return out.String(), err
	}
	return out.String(), nil
}
