// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"

	"sms-launcher/internal/config"
	"sms-launcher/internal/issue"
	"sms-launcher/internal/launcher"
)

// classifyLaunchError maps a launch failure to its issue catalogue entry.
func classifyLaunchError(err error) issue.Id {
	switch {
	case errors.Is(err, launcher.ErrInterpreterNotFound):
		return issue.InterpreterNotFoundId
	case errors.Is(err, launcher.ErrVersionTooLow):
		return issue.VersionTooLowId
	case errors.Is(err, launcher.ErrEntryPointMissing):
		return issue.EntryPointMissingId
	case errors.Is(err, launcher.ErrModuleMissing):
		return issue.ModuleMissingId
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, launcher.ErrDataDir):
		return issue.DataDirFailedId
	case errors.Is(err, launcher.ErrApplicationFailed):
		return issue.ApplicationFailedId
	case errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) && (ae.Operation == "load configuration" || ae.Operation == "validate configuration") {
		return issue.ConfigLoadFailedId
	}
	return 0
}

// glamourStyle picks the glamour style for output rendered to w. In auto
// mode a writer that is not a terminal gets the plain "notty" style.
func glamourStyle(w io.Writer, scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int
		return "notty"
	}
	return "dark"
}
