// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/spf13/cobra"

	"sms-launcher/internal/launcher"
	"sms-launcher/pkg/platform"
)

func newDoctorCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the installation without starting the application",
		Long: `Run interpreter discovery and every launch check, then print a report.

Nothing is created and the application is not started.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			silence(cmd)
			return runDoctor(cmd, app, flags)
		},
	}
}

func runDoctor(cmd *cobra.Command, app *App, flags *rootFlags) error {
	ctx := cmd.Context()
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("smsboot doctor"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %s %s\n", CmdStyle.Render("Launcher"), launcherName(), getVersionString())
	printHostFacts(ctx, w)

	sess, err := loadSession(cmd, app, flags)
	if err != nil {
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("✗ configuration:"), formatErrorForDisplay(err, flags.verbose))
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}
	cfgSource := SubtitleStyle.Render("(defaults)")
	if sess.cfgPath != "" {
		cfgSource = sess.cfgPath
	}
	fmt.Fprintf(w, "%s: %s\n\n", CmdStyle.Render("Config"), cfgSource)

	opts, err := sess.launcherOptions(app)
	if err != nil {
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("✗ configuration:"), err)
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}
	opts.Stdout = io.Discard
	l, err := launcher.New(opts)
	if err != nil {
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("✗ configuration:"), err)
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}

	report := l.Preflight(ctx)
	for _, c := range report.Checks {
		switch {
		case c.Err != nil:
			fmt.Fprintf(w, "%s %s: %v\n", ErrorStyle.Render("✗"), c.Name, c.Err)
		case c.Detail != "":
			fmt.Fprintf(w, "%s %s: %s\n", SuccessStyle.Render("✓"), c.Name, c.Detail)
		default:
			fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("✓"), c.Name)
		}
	}

	if !report.OK() {
		return &ExitError{Code: launcher.ExitFailure, Err: report.FirstError()}
	}
	fmt.Fprintf(w, "\n%s\n", SuccessStyle.Render("Ready to launch."))
	return nil
}

// printHostFacts prints the host description. Failing to collect it only
// costs the line.
func printHostFacts(ctx context.Context, w io.Writer) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Host"), WarningStyle.Render("unavailable ("+err.Error()+")"))
		return
	}
	fmt.Fprintf(w, "%s: %s %s %s (%s)\n", CmdStyle.Render("Host"),
		info.OS, info.Platform, info.PlatformVersion, info.KernelArch)
}

func launcherName() string {
	return platform.TrimExecutableSuffix(filepath.Base(os.Args[0]))
}
