// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"errors"
	"io/fs"
	"os"
)

// DefaultDataDir is the application data directory, relative to the project directory.
const DefaultDataDir = "data"

// EnsureDataDir creates the data directory when absent and reports whether
// it had to. An existing directory is left untouched.
func EnsureDataDir(projectDir, rel string) (string, bool, error) {
	path := projectPath(projectDir, rel)

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return path, false, nil
	case err == nil:
		return path, false, &DataDirError{Path: path, Err: fs.ErrExist}
	case !errors.Is(err, fs.ErrNotExist):
		return path, false, &DataDirError{Path: path, Err: err}
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return path, false, &DataDirError{Path: path, Err: err}
	}
	return path, true, nil
}
