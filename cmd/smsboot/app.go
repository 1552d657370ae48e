// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"sms-launcher/internal/config"
	"sms-launcher/internal/interpreter"
	"sms-launcher/internal/launcher"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives it instead of reaching for package globals.
	App struct {
		Config  config.Provider
		Prober  interpreter.Prober
		Modules launcher.ModuleChecker
		stdin   io.Reader
		stdout  io.Writer
		stderr  io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Prober and Modules are handed to the launcher; nil uses the
		// exec-based implementations with the configured timeout.
		Prober  interpreter.Prober
		Modules launcher.ModuleChecker
		Stdin   io.Reader
		Stdout  io.Writer
		Stderr  io.Writer
	}
)

// NewApp builds an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:  deps.Config,
		Prober:  deps.Prober,
		Modules: deps.Modules,
		stdin:   deps.Stdin,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// newLogger returns the leveled logger for one command run.
func (a *App) newLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: "smsboot",
		Level:  level,
	})
}
