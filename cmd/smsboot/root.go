// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"sms-launcher/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	verbose    bool
	configFile string
	projectDir string
	noPause    bool
}

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "smsboot",
		Short: "Bootstrap launcher for the Sales Management System",
		Long: TitleStyle.Render("smsboot") + SubtitleStyle.Render(" - Bootstrap launcher for the Sales Management System") + `

Run without arguments to locate a Python interpreter, validate the
installation and start src/app.py from the project directory.

` + SubtitleStyle.Render("Examples:") + `
  smsboot                   Start the application
  smsboot doctor            Check the installation without starting it
  smsboot scaffold ./work   Create an empty project skeleton
  smsboot config init       Write a default configuration file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLaunch(cmd, app, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&flags.configFile, "config", "", "config file (default: smsboot.cue next to the launcher, then the user config directory)")
	pf.StringVar(&flags.projectDir, "project-dir", "", "project directory (default: the directory holding the launcher)")
	pf.BoolVar(&flags.noPause, "no-pause", false, "do not wait for Enter after a failure")

	rootCmd.AddCommand(newScaffoldCommand(app))
	rootCmd.AddCommand(newDoctorCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits. It is called by main.main().
func Execute() {
	rootCmd := newRootCommand(NewApp(Dependencies{}))

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method, which shows the full error
// chain in verbose mode.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// handleError prints errors no command has rendered yet, such as flag
// parsing failures. An *ExitError means the command already wrote its own
// diagnostic.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// silence stops cobra from printing err and usage after the command has
// rendered its own diagnostic. fang's copy is dropped by handleError.
func silence(cmd *cobra.Command) {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
}
