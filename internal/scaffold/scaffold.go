// SPDX-License-Identifier: MPL-2.0

// Package scaffold creates the empty Sales Management System project tree.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultRoot is the name of the project directory created under the base.
const DefaultRoot = "sales_management_system"

var (
	// Dirs are created under the project root, parents first.
	Dirs = []string{
		filepath.Join("src", "models"),
		filepath.Join("src", "views"),
		filepath.Join("src", "controllers"),
		filepath.Join("src", "utils"),
		"data",
		"config",
		"tests",
	}

	// Markers are the empty package marker files.
	Markers = []string{
		filepath.Join("src", "__init__.py"),
		filepath.Join("src", "models", "__init__.py"),
		filepath.Join("src", "views", "__init__.py"),
		filepath.Join("src", "controllers", "__init__.py"),
		filepath.Join("src", "utils", "__init__.py"),
	}
)

// Result lists what a Create call actually added.
type Result struct {
	Root         string
	CreatedDirs  []string
	CreatedFiles []string
}

// Create materialises the skeleton under base. It is idempotent: existing
// directories are kept and existing marker files are never truncated.
func Create(base string) (Result, error) {
	root := filepath.Join(base, DefaultRoot)
	res := Result{Root: root}

	for _, d := range append([]string{""}, Dirs...) {
		path := filepath.Join(root, d)
		existed, err := isDir(path)
		if err != nil {
			return res, err
		}
		if existed {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return res, fmt.Errorf("create directory %s: %w", path, err)
		}
		res.CreatedDirs = append(res.CreatedDirs, path)
	}

	for _, m := range Markers {
		path := filepath.Join(root, m)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return res, fmt.Errorf("create %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return res, fmt.Errorf("close %s: %w", path, err)
		}
		res.CreatedFiles = append(res.CreatedFiles, path)
	}
	return res, nil
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("inspect %s: %w", path, err)
	case !info.IsDir():
		return false, fmt.Errorf("%s exists and is not a directory", path)
	default:
		return true, nil
	}
}
