// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

type (
	// Check is one line of a preflight report.
	Check struct {
		Name   string
		Detail string
		Err    error
	}

	// Report is the outcome of Preflight, in step order.
	Report struct {
		Checks []Check
	}
)

// OK reports whether every check passed.
func (r Report) OK() bool {
	return r.FirstError() == nil
}

// FirstError returns the error of the first failed check, or nil.
func (r Report) FirstError() error {
	for _, c := range r.Checks {
		if c.Err != nil {
			return c.Err
		}
	}
	return nil
}

// Preflight runs the same checks as Run without changing directories,
// creating the data directory or starting the application. Unlike Run it
// keeps going after a failure where later checks do not depend on it.
func (l *Launcher) Preflight(ctx context.Context) Report {
	var r Report

	projectDir, projectErr := ResolveProjectDir(l.opts.ProjectDir)

	interp, err := l.discover(ctx, projectDir)
	if err != nil {
		r.Checks = append(r.Checks, Check{Name: "interpreter", Err: err})
	} else {
		r.Checks = append(r.Checks,
			Check{Name: "interpreter", Detail: interp.Candidate.String() + " (" + interp.Path + ")"},
			Check{Name: "version", Detail: interp.Version.String() + " >= " + l.opts.MinVersion.MajorMinor(), Err: l.checkVersion(interp)},
		)
	}

	if projectErr != nil {
		r.Checks = append(r.Checks, Check{Name: "project directory", Err: projectErr})
		return r
	}
	r.Checks = append(r.Checks, Check{Name: "project directory", Detail: projectDir})

	entry, err := CheckEntryPoint(projectDir, l.opts.EntryPoint)
	if err != nil {
		entry = projectPath(projectDir, l.opts.EntryPoint)
	}
	r.Checks = append(r.Checks, Check{Name: "entry point", Detail: entry, Err: err})

	if interp.Path != "" {
		for _, m := range l.opts.RequiredModules {
			r.Checks = append(r.Checks, Check{Name: "module " + m, Err: l.opts.Modules.CheckModule(ctx, interp, m)})
		}
	}

	r.Checks = append(r.Checks, dataDirCheck(projectDir, l.opts.DataDir))
	return r
}

func dataDirCheck(projectDir, rel string) Check {
	path := projectPath(projectDir, rel)
	c := Check{Name: "data directory", Detail: path}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.Detail += " (will be created)"
	case err != nil:
		c.Err = &DataDirError{Path: path, Err: err}
	case !info.IsDir():
		c.Err = &DataDirError{Path: path, Err: fs.ErrExist}
	}
	return c
}
