// Package pathutil provides utilities for converting between absolute and relative paths.
//
// skim uses absolute paths internally for consistency and to avoid ambiguity.
// Glob filtering and user-facing conversion both work on root-relative paths,
// and this package is the conversion layer between the two representations.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails or path is already relative.
//
// Examples:
//   - ToRelative("/home/user/project/src/main.go", "/home/user/project") → "src/main.go"
//   - ToRelative("/other/location/file.go", "/home/user/project") → "/other/location/file.go" (outside root)
//   - ToRelative("src/main.go", "/home/user/project") → "src/main.go" (already relative)
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		// Conversion failed (e.g., different drives on Windows) - return absolute
		return absPath
	}

	// A ".." prefix means the file is outside the root; the absolute
	// path is clearer in that case.
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}

	return relPath
}

// ToSlashRelative is ToRelative with separators normalized to forward
// slashes, the form glob patterns are matched against.
func ToSlashRelative(absPath, rootDir string) string {
	return filepath.ToSlash(ToRelative(absPath, rootDir))
}
