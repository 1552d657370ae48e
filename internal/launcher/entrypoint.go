// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"os"
	"path/filepath"
)

// DefaultEntryPoint is the application script, relative to the project directory.
var DefaultEntryPoint = filepath.Join("src", "app.py")

// CheckEntryPoint verifies that rel names a regular file under projectDir
// and returns its absolute path. Symlinks to regular files are accepted.
func CheckEntryPoint(projectDir, rel string) (string, error) {
	path := projectPath(projectDir, rel)

	info, err := os.Stat(path)
	if err != nil {
		return "", &EntryPointMissingError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &EntryPointMissingError{Path: path}
	}
	return path, nil
}

// projectPath returns p unchanged when absolute, else joined onto projectDir.
func projectPath(projectDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectDir, p)
}
