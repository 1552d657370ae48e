// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"sms-launcher/internal/interpreter"
	"sms-launcher/internal/launcher"
	"sms-launcher/pkg/platform"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	// moduleNamePattern matches a dotted Python module path. It mirrors the
	// schema so values from the environment get the same check.
	moduleNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects field-level validation errors.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the launcher configuration.
	Config struct {
		Interpreter InterpreterConfig `json:"interpreter" mapstructure:"interpreter"`
		Launcher    LauncherConfig    `json:"launcher" mapstructure:"launcher"`
		UI          UIConfig          `json:"ui" mapstructure:"ui"`
	}

	// InterpreterConfig controls interpreter discovery.
	InterpreterConfig struct {
		// Candidates are probed in order, e.g. ["py -3", "python3"].
		Candidates []string `json:"candidates" mapstructure:"candidates"`
		// MinVersion is the oldest accepted interpreter version.
		MinVersion string `json:"min_version" mapstructure:"min_version"`
		// ProbeTimeout bounds each version probe.
		ProbeTimeout time.Duration `json:"probe_timeout" mapstructure:"probe_timeout"`
	}

	// LauncherConfig controls the bootstrap steps after discovery.
	LauncherConfig struct {
		Title           string            `json:"title" mapstructure:"title"`
		EntryPoint      string            `json:"entry_point" mapstructure:"entry_point"`
		DataDir         string            `json:"data_dir" mapstructure:"data_dir"`
		RequiredModules []string          `json:"required_modules" mapstructure:"required_modules"`
		HoldOnFailure   launcher.HoldMode `json:"hold_on_failure" mapstructure:"hold_on_failure"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and detailed error output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in configuration for the host platform.
func DefaultConfig() *Config {
	return defaultConfigFor(platform.Current())
}

func defaultConfigFor(goos string) *Config {
	return &Config{
		Interpreter: InterpreterConfig{
			Candidates:   interpreter.DefaultCandidates(goos),
			MinVersion:   launcher.DefaultMinVersion.MajorMinor(),
			ProbeTimeout: interpreter.DefaultProbeTimeout,
		},
		Launcher: LauncherConfig{
			Title:           launcher.DefaultTitle,
			EntryPoint:      "src/app.py",
			DataDir:         launcher.DefaultDataDir,
			RequiredModules: []string{},
			HoldOnFailure:   launcher.HoldAlways,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// Validate returns an *InvalidColorSchemeError for unknown schemes.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate checks what the CUE schema cannot: that candidates split into
// words, the version floor parses, and the timeout is positive. It is also
// the only check applied to values coming from the environment.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Interpreter.Candidates) == 0 {
		errs = append(errs, errors.New("interpreter.candidates: at least one candidate is required"))
	}
	if _, err := interpreter.ParseCandidates(c.Interpreter.Candidates); err != nil {
		errs = append(errs, fmt.Errorf("interpreter.candidates: %w", err))
	}
	if _, err := interpreter.ParseVersion(c.Interpreter.MinVersion); err != nil {
		errs = append(errs, fmt.Errorf("interpreter.min_version: %w", err))
	}
	if c.Interpreter.ProbeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("interpreter.probe_timeout: must be positive, got %s", c.Interpreter.ProbeTimeout))
	}
	if strings.TrimSpace(c.Launcher.EntryPoint) == "" {
		errs = append(errs, errors.New("launcher.entry_point: must not be empty"))
	}
	if strings.TrimSpace(c.Launcher.DataDir) == "" {
		errs = append(errs, errors.New("launcher.data_dir: must not be empty"))
	}
	if seg := platform.ReservedPathSegment(c.Launcher.EntryPoint); seg != "" {
		errs = append(errs, fmt.Errorf("launcher.entry_point: %q is a reserved name on Windows", seg))
	}
	if seg := platform.ReservedPathSegment(c.Launcher.DataDir); seg != "" {
		errs = append(errs, fmt.Errorf("launcher.data_dir: %q is a reserved name on Windows", seg))
	}
	for i, m := range c.Launcher.RequiredModules {
		if !moduleNamePattern.MatchString(m) {
			errs = append(errs, fmt.Errorf("launcher.required_modules[%d]: %q is not a Python module name", i, m))
		}
	}
	if err := c.Launcher.HoldOnFailure.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("launcher.hold_on_failure: %w", err))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui.color_scheme: %w", err))
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}
