// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"sms-launcher/internal/interpreter"
	"sms-launcher/pkg/platform"
)

const (
	// DefaultTitle names the application in status output.
	DefaultTitle = "Sales Management System"

	bannerWidth = 50
)

// DefaultMinVersion is the oldest interpreter the application supports.
var DefaultMinVersion = interpreter.MustParseVersion("3.7")

var titleStyle = lipgloss.NewStyle().Bold(true)

type (
	// ModuleChecker verifies that an interpreter can import a module.
	ModuleChecker interface {
		CheckModule(ctx context.Context, interp interpreter.Interpreter, module string) error
	}

	// Options configures a Launcher. Zero values fall back to the defaults
	// documented on each field.
	Options struct {
		// Title is shown in the banner; DefaultTitle when empty.
		Title string
		// Candidates are probed in order; the host defaults when empty.
		Candidates []interpreter.Candidate
		// MinVersion is the version floor; DefaultMinVersion when zero.
		MinVersion interpreter.Version
		// ProbeTimeout bounds each discovery probe.
		ProbeTimeout time.Duration
		// ProjectDir overrides the executable's directory.
		ProjectDir string
		// SkipAnchor leaves the process working directory alone. The child
		// still runs in the project directory.
		SkipAnchor bool
		// EntryPoint is relative to the project directory; DefaultEntryPoint when empty.
		EntryPoint string
		// DataDir is relative to the project directory; DefaultDataDir when empty.
		DataDir string
		// RequiredModules must import cleanly before the application starts.
		RequiredModules []string
		// GracePeriod bounds the wait after interrupting the application.
		GracePeriod time.Duration

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		Logger *log.Logger

		// Prober and Modules replace the exec-based implementations. The
		// default Prober resolves relative candidate paths against the
		// project directory.
		Prober  interpreter.Prober
		Modules ModuleChecker
	}

	// Launcher runs the bootstrap sequence.
	Launcher struct {
		opts Options
	}

	// Result describes a launch. Fields are filled as steps complete, so a
	// failed launch still reports how far it got.
	Result struct {
		Interpreter    interpreter.Interpreter
		ProjectDir     string
		EntryPoint     string
		DataDir        string
		DataDirCreated bool
		ExitCode       ExitCode
		Interrupted    bool
	}
)

// New returns a Launcher with defaults applied to opts.
func New(opts Options) (*Launcher, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if len(opts.Candidates) == 0 {
		cs, err := interpreter.ParseCandidates(interpreter.DefaultCandidates(platform.Current()))
		if err != nil {
			return nil, err
		}
		opts.Candidates = cs
	}
	if opts.MinVersion == (interpreter.Version{}) {
		opts.MinVersion = DefaultMinVersion
	}
	if opts.EntryPoint == "" {
		opts.EntryPoint = DefaultEntryPoint
	}
	if opts.DataDir == "" {
		opts.DataDir = DefaultDataDir
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if opts.Modules == nil {
		opts.Modules = interpreter.ExecProber{Timeout: opts.ProbeTimeout}
	}
	return &Launcher{opts: opts}, nil
}

// Run executes the bootstrap sequence and the application. It returns the
// first precondition failure, or an *ApplicationFailedError when the
// application exits non-zero. An interrupted application is not a failure.
func (l *Launcher) Run(ctx context.Context) (Result, error) {
	var res Result

	l.banner()
	l.status("Starting %s...", l.opts.Title)

	projectDir, err := ResolveProjectDir(l.opts.ProjectDir)
	if err != nil {
		return res, err
	}

	interp, err := l.discover(ctx, projectDir)
	if err != nil {
		return res, err
	}
	res.Interpreter = interp

	if err := l.checkVersion(interp); err != nil {
		return res, err
	}

	if !l.opts.SkipAnchor {
		if err := Anchor(projectDir); err != nil {
			return res, err
		}
	}
	res.ProjectDir = projectDir
	l.opts.Logger.Debug("project directory resolved", "dir", projectDir, "anchored", !l.opts.SkipAnchor)
	l.status("Project directory: %s", projectDir)

	entry, err := CheckEntryPoint(projectDir, l.opts.EntryPoint)
	if err != nil {
		return res, err
	}
	res.EntryPoint = entry

	if err := l.checkModules(ctx, interp); err != nil {
		return res, err
	}

	dataDir, created, err := EnsureDataDir(projectDir, l.opts.DataDir)
	res.DataDir = dataDir
	if err != nil {
		return res, err
	}
	res.DataDirCreated = created
	if created {
		l.opts.Logger.Debug("data directory created", "dir", dataDir)
	}

	l.status("Starting application...")
	l.status("")

	outcome, err := Invoke(ctx, Invocation{
		Interpreter: interp,
		EntryPoint:  entry,
		Dir:         projectDir,
		Stdin:       l.opts.Stdin,
		Stdout:      l.opts.Stdout,
		Stderr:      l.opts.Stderr,
		GracePeriod: l.opts.GracePeriod,
	})
	res.ExitCode = outcome.ExitCode
	res.Interrupted = outcome.Interrupted
	if err != nil {
		return res, err
	}
	l.opts.Logger.Debug("application exited", "code", outcome.ExitCode, "interrupted", outcome.Interrupted)

	if outcome.Interrupted {
		l.status("")
		l.status("Application interrupted by user")
		res.ExitCode = ExitSuccess
		return res, nil
	}
	if !outcome.ExitCode.IsSuccess() {
		return res, &ApplicationFailedError{ExitCode: outcome.ExitCode}
	}
	return res, nil
}

// discover probes the candidates. Relative candidate paths are resolved
// against projectDir, not the caller's working directory.
func (l *Launcher) discover(ctx context.Context, projectDir string) (interpreter.Interpreter, error) {
	prober := l.opts.Prober
	if prober == nil {
		prober = interpreter.ExecProber{Timeout: l.opts.ProbeTimeout, Dir: projectDir}
	}
	d := interpreter.Discoverer{
		Prober: prober,
		Observe: func(a interpreter.Attempt) {
			if a.Err != nil {
				l.opts.Logger.Debug("interpreter candidate rejected", "candidate", a.Candidate, "error", a.Err)
				return
			}
			l.opts.Logger.Debug("interpreter candidate accepted", "candidate", a.Candidate, "path", a.Path)
		},
	}
	interp, err := d.Discover(ctx, l.opts.Candidates)
	if err != nil {
		return interp, err
	}
	l.opts.Logger.Debug("interpreter selected", "path", interp.Path, "version", interp.Version)
	return interp, nil
}

func (l *Launcher) checkVersion(interp interpreter.Interpreter) error {
	if interp.Version.AtLeast(l.opts.MinVersion) {
		return nil
	}
	return &VersionTooLowError{
		Interpreter: interp.Candidate.String(),
		Required:    l.opts.MinVersion,
		Actual:      interp.Version,
	}
}

func (l *Launcher) checkModules(ctx context.Context, interp interpreter.Interpreter) error {
	for _, m := range l.opts.RequiredModules {
		if err := l.opts.Modules.CheckModule(ctx, interp, m); err != nil {
			return err
		}
		l.opts.Logger.Debug("module available", "module", m)
	}
	return nil
}

// MinVersion returns the effective version floor.
func (l *Launcher) MinVersion() interpreter.Version { return l.opts.MinVersion }

func (l *Launcher) banner() {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(l.opts.Stdout, rule)
	fmt.Fprintln(l.opts.Stdout, titleStyle.Render(l.opts.Title))
	fmt.Fprintln(l.opts.Stdout, rule)
	fmt.Fprintln(l.opts.Stdout)
}

func (l *Launcher) status(format string, args ...any) {
	fmt.Fprintf(l.opts.Stdout, format+"\n", args...)
}
