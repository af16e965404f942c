// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrInvalidFileName = errors.New("invalid file name")
)

// OutputPerm is the mode of files created by WriteFileAtomic.
const OutputPerm os.FileMode = 0o644

// WriteFileAtomic writes data to dir/name through a temporary file in dir
// that is renamed into place. The temporary file is removed on every failure
// path, so no partial output is left behind. Returns the final path.
func WriteFileAtomic(dir, name string, data []byte) (path string, err error) {
	clean, err := SanitizeFileName(name)
	if err != nil {
		return "", err
	}

	tmpFile, err := os.CreateTemp(dir, ".pdd-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("writing temp file: %w", writeErr)
	}
	// CreateTemp uses 0600 and rename keeps it.
	if chmodErr := tmpFile.Chmod(OutputPerm); chmodErr != nil { // #nosec G302 -- generated documents are meant to be shared
		_ = tmpFile.Close()
		return "", fmt.Errorf("setting temp file mode: %w", chmodErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	path = filepath.Join(dir, clean)
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	renamed = true

	return path, nil
}

// SanitizeFileName reduces name to its base element and rejects names that
// cannot be created safely ("", ".", "..", or containing a null byte).
func SanitizeFileName(name string) (string, error) {
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: contains null byte", ErrInvalidFileName)
	}
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	switch base {
	case "", ".", "..", "/":
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return base, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "server" -> false (config name)
//   - "./pdd.yaml" -> true (relative path)
//   - "/etc/go-pdd/pdd.yaml" -> true (absolute)
//   - "C:\pdd\pdd.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an HTTP(S) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
