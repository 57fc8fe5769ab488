package pathutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToRelative(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix-style absolute paths")
	}

	tests := []struct {
		name     string
		absPath  string
		rootDir  string
		expected string
	}{
		{
			name:     "Inside root",
			absPath:  "/home/user/project/src/main.go",
			rootDir:  "/home/user/project",
			expected: filepath.Join("src", "main.go"),
		},
		{
			name:     "Outside root stays absolute",
			absPath:  "/other/location/file.go",
			rootDir:  "/home/user/project",
			expected: "/other/location/file.go",
		},
		{
			name:     "Already relative",
			absPath:  "src/main.go",
			rootDir:  "/home/user/project",
			expected: "src/main.go",
		},
		{
			name:     "Empty path",
			absPath:  "",
			rootDir:  "/home/user/project",
			expected: "",
		},
		{
			name:     "Empty root",
			absPath:  "/home/user/project/file.go",
			rootDir:  "",
			expected: "/home/user/project/file.go",
		},
		{
			name:     "Root itself",
			absPath:  "/home/user/project",
			rootDir:  "/home/user/project",
			expected: ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToRelative(tt.absPath, tt.rootDir))
		})
	}
}

func TestToSlashRelative(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix-style absolute paths")
	}
	assert.Equal(t, "a/b.txt", ToSlashRelative("/root/a/b.txt", "/root"))
}
