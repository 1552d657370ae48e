// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveProjectDir returns the absolute project directory. A non-empty
// override wins; otherwise it is the directory holding the running
// executable, with symlinks followed so a linked launcher still anchors to
// the real install.
func ResolveProjectDir(override string) (string, error) {
	return resolveProjectDir(override, os.Executable)
}

func resolveProjectDir(override string, executable func() (string, error)) (string, error) {
	if override != "" {
		dir, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve project directory %s: %w", override, err)
		}
		info, err := os.Stat(dir)
		if err != nil {
			return "", fmt.Errorf("resolve project directory: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project directory %s is not a directory", dir)
		}
		return dir, nil
	}

	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate launcher executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Anchor makes dir the process working directory.
func Anchor(dir string) error {
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("change to project directory: %w", err)
	}
	return nil
}
