// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"sms-launcher/internal/issue"
	"sms-launcher/pkg/cueutil"
	"sms-launcher/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "smsboot"
	// ConfigFileName is the user-level config file name.
	ConfigFileName = "config.cue"
	// ProjectConfigFileName is looked up in the project directory.
	ProjectConfigFileName = "smsboot.cue"
	// EnvPrefix prefixes environment overrides, e.g. SMSBOOT_LAUNCHER_HOLD_ON_FAILURE.
	EnvPrefix = "SMSBOOT"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the smsboot configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch platform.Current() {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ResolvePath returns the config file that Load would read, or "" when
// none exists and defaults apply.
func ResolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'smsboot config init' to create a configuration file").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	if opts.ProjectDir != "" {
		projectPath := filepath.Join(opts.ProjectDir, ProjectConfigFileName)
		if fileExists(projectPath) {
			return projectPath, nil
		}
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	userPath := filepath.Join(cfgDir, ConfigFileName)
	if fileExists(userPath) {
		return userPath, nil
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("interpreter.candidates", defaults.Interpreter.Candidates)
	v.SetDefault("interpreter.min_version", defaults.Interpreter.MinVersion)
	v.SetDefault("interpreter.probe_timeout", defaults.Interpreter.ProbeTimeout)
	v.SetDefault("launcher.title", defaults.Launcher.Title)
	v.SetDefault("launcher.entry_point", defaults.Launcher.EntryPoint)
	v.SetDefault("launcher.data_dir", defaults.Launcher.DataDir)
	v.SetDefault("launcher.required_modules", defaults.Launcher.RequiredModules)
	v.SetDefault("launcher.hold_on_failure", string(defaults.Launcher.HoldOnFailure))
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath, err := ResolvePath(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'smsboot config show' to see the effective configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	applyListEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Candidates must be commands such as \"python3\" or \"py -3\"").
			WithSuggestion("min_version must look like \"3.7\"").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// Decoding goes to map[string]any rather than Config so that omitted
// fields keep their Viper defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := cueutil.ReadFile(path)
	if err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a commented default configuration to path.
// An existing file is left alone and reported with fs.ErrExist.
func CreateDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("config file %s: %w", path, fs.ErrExist)
		}
		return fmt.Errorf("failed to create config file: %w", err)
	}

	_, writeErr := f.WriteString(GenerateCUE(DefaultConfig()))
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("failed to write config file: %w", writeErr)
	}
	return nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// smsboot configuration file\n")
	sb.WriteString("// Place it next to the launcher as smsboot.cue, or in the user config directory.\n\n")

	sb.WriteString("interpreter: {\n")
	sb.WriteString("\t// Probed in order; the first one answering --version is used.\n")
	fmt.Fprintf(&sb, "\tcandidates: %s\n", cueList(cfg.Interpreter.Candidates))
	fmt.Fprintf(&sb, "\tmin_version: %q\n", cfg.Interpreter.MinVersion)
	fmt.Fprintf(&sb, "\tprobe_timeout: %q\n", cfg.Interpreter.ProbeTimeout.String())
	sb.WriteString("}\n")

	sb.WriteString("\nlauncher: {\n")
	fmt.Fprintf(&sb, "\ttitle: %q\n", cfg.Launcher.Title)
	fmt.Fprintf(&sb, "\tentry_point: %q\n", cfg.Launcher.EntryPoint)
	fmt.Fprintf(&sb, "\tdata_dir: %q\n", cfg.Launcher.DataDir)
	if len(cfg.Launcher.RequiredModules) == 0 {
		sb.WriteString("\t// The desktop application needs Tk: required_modules: [\"tkinter\"]\n")
	}
	fmt.Fprintf(&sb, "\trequired_modules: %s\n", cueList(cfg.Launcher.RequiredModules))
	sb.WriteString("\t// always | auto (only on a terminal) | never\n")
	fmt.Fprintf(&sb, "\thold_on_failure: %q\n", cfg.Launcher.HoldOnFailure)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

func cueList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		quoted = append(quoted, fmt.Sprintf("%q", it))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// applyListEnv re-reads list settings from the environment. viper splits
// them on whitespace, which would break a candidate such as "py -3" in two,
// so environment lists are comma-separated instead.
func applyListEnv(cfg *Config) {
	if raw, ok := os.LookupEnv(envKey("interpreter.candidates")); ok {
		cfg.Interpreter.Candidates = splitEnvList(raw)
	}
	if raw, ok := os.LookupEnv(envKey("launcher.required_modules")); ok {
		cfg.Launcher.RequiredModules = splitEnvList(raw)
	}
}

// envKey returns the environment variable bound to a dotted config key.
func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func splitEnvList(raw string) []string {
	items := []string{}
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
