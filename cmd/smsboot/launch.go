// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"sms-launcher/internal/config"
	"sms-launcher/internal/interpreter"
	"sms-launcher/internal/issue"
	"sms-launcher/internal/launcher"
	"sms-launcher/pkg/platform"
)

const pythonDownloadURL = "https://www.python.org/downloads/"

// launchSession is everything one launch or doctor run needs, resolved
// from flags and configuration.
type launchSession struct {
	cfg        *config.Config
	cfgPath    string
	projectDir string
	verbose    bool
}

// runLaunch is the default action. Diagnostics go to stdout alongside the
// status lines so a console window shows them in order.
func runLaunch(cmd *cobra.Command, app *App, flags *rootFlags) error {
	silence(cmd)
	ctx := cmd.Context()

	pauser := launcher.Pauser{Mode: launcher.HoldAlways, In: app.stdin, Out: app.stdout}
	if flags.noPause {
		pauser.Mode = launcher.HoldNever
	}

	sess, err := loadSession(cmd, app, flags)
	if err != nil {
		renderLaunchError(app.stdout, err, flags.verbose, glamourStyle(app.stdout, config.ColorSchemeAuto))
		pauser.Wait()
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}
	if !flags.noPause {
		pauser.Mode = sess.cfg.Launcher.HoldOnFailure
	}

	opts, err := sess.launcherOptions(app)
	if err != nil {
		renderLaunchError(app.stdout, err, sess.verbose, glamourStyle(app.stdout, sess.cfg.UI.ColorScheme))
		pauser.Wait()
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}

	l, err := launcher.New(opts)
	if err != nil {
		renderLaunchError(app.stdout, err, sess.verbose, glamourStyle(app.stdout, sess.cfg.UI.ColorScheme))
		pauser.Wait()
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}

	res, err := l.Run(ctx)
	if err == nil {
		return nil
	}

	explained := explainLaunchError(err, l.MinVersion(), res)
	renderLaunchError(app.stdout, explained, sess.verbose, glamourStyle(app.stdout, sess.cfg.UI.ColorScheme))
	pauser.Wait()
	return &ExitError{Code: launcher.ExitCodeOf(err), Err: explained}
}

// loadSession resolves the project directory and loads the configuration
// that applies to it.
func loadSession(cmd *cobra.Command, app *App, flags *rootFlags) (*launchSession, error) {
	projectDir, err := launcher.ResolveProjectDir(flags.projectDir)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("locate project directory").
			WithResource(flags.projectDir).
			WithSuggestion("Pass an existing directory to --project-dir").
			Wrap(err).
			BuildError()
	}

	cfg, cfgPath, err := app.Config.Load(cmd.Context(), config.LoadOptions{
		ConfigFilePath: flags.configFile,
		ProjectDir:     projectDir,
	})
	if err != nil {
		return nil, err
	}
	applyColorScheme(cfg.UI.ColorScheme)

	return &launchSession{
		cfg:        cfg,
		cfgPath:    cfgPath,
		projectDir: projectDir,
		verbose:    flags.verbose || cfg.UI.Verbose,
	}, nil
}

// launcherOptions turns the configuration into launcher options.
func (s *launchSession) launcherOptions(app *App) (launcher.Options, error) {
	candidates, err := interpreter.ParseCandidates(s.cfg.Interpreter.Candidates)
	if err != nil {
		return launcher.Options{}, issue.WrapWithOperation(err, "read interpreter candidates")
	}
	minVersion, err := interpreter.ParseVersion(s.cfg.Interpreter.MinVersion)
	if err != nil {
		return launcher.Options{}, issue.WrapWithOperation(err, "read minimum Python version")
	}

	logger := app.newLogger(s.verbose)
	if s.cfgPath != "" {
		logger.Debug("configuration loaded", "path", s.cfgPath)
	}

	return launcher.Options{
		Title:           s.cfg.Launcher.Title,
		Candidates:      candidates,
		MinVersion:      minVersion,
		ProbeTimeout:    s.cfg.Interpreter.ProbeTimeout,
		ProjectDir:      s.projectDir,
		EntryPoint:      s.cfg.Launcher.EntryPoint,
		DataDir:         s.cfg.Launcher.DataDir,
		RequiredModules: s.cfg.Launcher.RequiredModules,
		Stdin:           app.stdin,
		Stdout:          app.stdout,
		Stderr:          app.stderr,
		Logger:          logger,
		Prober:          app.Prober,
		Modules:         app.Modules,
	}, nil
}

// explainLaunchError attaches operation context and remedies to a launcher
// failure. Application failures are returned unchanged; the application
// has already printed its own diagnostics.
func explainLaunchError(err error, minVersion interpreter.Version, res launcher.Result) error {
	ec := issue.NewErrorContext().Wrap(err)

	var (
		notFound *interpreter.NotFoundError
		tooLow   *launcher.VersionTooLowError
		entry    *launcher.EntryPointMissingError
		module   *interpreter.ModuleMissingError
		dataDir  *launcher.DataDirError
	)
	switch {
	case errors.As(err, &notFound):
		ec.WithOperation("find Python interpreter").
			WithSuggestion(fmt.Sprintf("Install Python %s or higher from %s", minVersion.MajorMinor(), pythonDownloadURL)).
			WithSuggestion("Make sure the interpreter is on your PATH")
	case errors.As(err, &tooLow):
		ec.WithOperation("check Python version").
			WithResource(res.Interpreter.Path).
			WithSuggestion(fmt.Sprintf("Install Python %s or higher from %s", tooLow.Required.MajorMinor(), pythonDownloadURL))
	case errors.As(err, &entry):
		ec.WithOperation("find application entry point").
			WithResource(entry.Path).
			WithSuggestion("Make sure you are running smsboot from the project directory").
			WithSuggestion("Please ensure all files are properly installed")
	case errors.As(err, &module):
		ec.WithOperation("check Python modules").
			WithResource(res.Interpreter.Path).
			WithSuggestions(moduleInstallHints(module.Module, platform.Current())...)
	case errors.As(err, &dataDir):
		ec.WithOperation("prepare data directory").
			WithResource(dataDir.Path).
			WithSuggestion("Check that the project directory is writable")
	default:
		return err
	}
	return ec.BuildError()
}

// moduleInstallHints lists ways to obtain module on goos.
func moduleInstallHints(module, goos string) []string {
	if module != "tkinter" {
		return []string{fmt.Sprintf("Install it with: python3 -m pip install %s", module)}
	}
	switch goos {
	case platform.Linux:
		return []string{
			"On Ubuntu/Debian: sudo apt-get install python3-tk",
			"On CentOS/RHEL: sudo yum install tkinter",
		}
	default:
		return []string{
			"tkinter ships with the python.org installers; reinstall Python from " + pythonDownloadURL,
		}
	}
}

// renderLaunchError writes the diagnostic for err. In verbose mode the
// matching issue catalogue entry follows, rendered with stylePath.
func renderLaunchError(w io.Writer, err error, verbose bool, stylePath string) {
	var appErr *launcher.ApplicationFailedError
	if errors.As(err, &appErr) {
		fmt.Fprintf(w, "\n%s %s\n", ErrorStyle.Render("Error:"),
			fmt.Sprintf("Application exited with error code %d", appErr.ExitCode))
	} else {
		fmt.Fprintf(w, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	}

	if !verbose {
		return
	}
	issueID := classifyLaunchError(err)
	entry := issue.Get(issueID)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(stylePath)
	if renderErr != nil {
		log.Warn("failed to render issue catalog entry", "issueID", issueID, "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// applyColorScheme tells lipgloss which background to assume when the
// scheme is forced.
func applyColorScheme(scheme config.ColorScheme) {
	switch scheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}
