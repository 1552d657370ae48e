// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue/errors"
)

// DefaultMaxFileSize bounds the size of CUE files read from disk (1MB).
// Launcher configuration files are a few hundred bytes.
const DefaultMaxFileSize int64 = 1 << 20

// FormatError formats a CUE error with JSON-path prefixes.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - smsboot.cue: launcher.hold_on_failure: 3 errors in empty disjunction
//   - smsboot.cue: interpreter.candidates[1]: conflicting values 3 and string
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(cueErrors))
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path inside the message.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}

		if pathStr != "" {
			lines = append(lines, pathStr+": "+msg)
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatPath turns ["interpreter", "candidates", "1"] into
// "interpreter.candidates[1]".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize verifies that data does not exceed maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}

// ReadFile reads a CUE file and rejects it when it exceeds DefaultMaxFileSize.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := CheckFileSize(data, DefaultMaxFileSize, path); err != nil {
		return nil, err
	}
	return data, nil
}
