// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"sms-launcher/internal/config"
	"sms-launcher/internal/issue"
	"sms-launcher/internal/launcher"
)

// newConfigCommand creates the `smsboot config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage smsboot configuration",
		Long: `Manage smsboot configuration.

The first file found is used:
  1. the file given with --config
  2. smsboot.cue in the project directory
  3. config.cue in the user configuration directory
     (Linux: ~/.config/smsboot, macOS: ~/Library/Application Support/smsboot,
      Windows: %APPDATA%\smsboot)

SMSBOOT_* environment variables override file values, e.g.
SMSBOOT_LAUNCHER_HOLD_ON_FAILURE=never.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			silence(cmd)
			return showConfig(cmd, app, flags)
		},
	})

	var projectScope bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			silence(cmd)
			return initConfig(app, flags, projectScope)
		},
	}
	initCmd.Flags().BoolVar(&projectScope, "project", false, "write smsboot.cue into the project directory instead of the user config directory")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			silence(cmd)
			return showConfigPath(app, flags)
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, flags *rootFlags) error {
	sess, err := loadSession(cmd, app, flags)
	if err != nil {
		fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, flags.verbose))
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}

	source := "(using defaults)"
	if sess.cfgPath != "" {
		source = sess.cfgPath
	}
	fmt.Fprintf(app.stdout, "// Source: %s\n", source)
	fmt.Fprint(app.stdout, config.GenerateCUE(sess.cfg))
	return nil
}

func initConfig(app *App, flags *rootFlags, projectScope bool) error {
	path, err := initTarget(flags, projectScope)
	if err != nil {
		err = issue.WrapWithOperation(err, "resolve configuration path")
		fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, flags.verbose))
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}

	if err := config.CreateDefaultConfig(path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
			return nil
		}
		err = issue.WrapWithOperation(err, "create configuration file")
		fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, flags.verbose))
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

// initTarget picks the file `config init` writes.
func initTarget(flags *rootFlags, projectScope bool) (string, error) {
	if flags.configFile != "" {
		return flags.configFile, nil
	}
	if projectScope {
		projectDir, err := launcher.ResolveProjectDir(flags.projectDir)
		if err != nil {
			return "", err
		}
		return filepath.Join(projectDir, config.ProjectConfigFileName), nil
	}
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, config.ConfigFileName), nil
}

func showConfigPath(app *App, flags *rootFlags) error {
	projectDir, err := launcher.ResolveProjectDir(flags.projectDir)
	if err != nil {
		err = issue.WrapWithOperation(err, "locate project directory")
		fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, flags.verbose))
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}

	resolved, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: flags.configFile, ProjectDir: projectDir})
	if err != nil {
		fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, flags.verbose))
		return &ExitError{Code: launcher.ExitFailure, Err: err}
	}

	fmt.Fprintf(app.stdout, "Project config: %s\n", filepath.Join(projectDir, config.ProjectConfigFileName))
	if cfgDir, err := config.ConfigDir(); err == nil {
		fmt.Fprintf(app.stdout, "User config: %s\n", filepath.Join(cfgDir, config.ConfigFileName))
	}
	if resolved == "" {
		fmt.Fprintf(app.stdout, "In use: %s\n", SubtitleStyle.Render("(none, using defaults)"))
	} else {
		fmt.Fprintf(app.stdout, "In use: %s\n", resolved)
	}
	return nil
}
