// Package skimerr defines the error types used across skim.
package skimerr

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorType classifies an error for diagnostics.
type ErrorType string

const (
	ErrorTypeUsage      ErrorType = "usage"
	ErrorTypeFile       ErrorType = "file"
	ErrorTypeWalk       ErrorType = "walk"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypePermission ErrorType = "permission"
)

// UsageError is a fatal command-line error: the process reports it and
// exits non-zero before any scanning starts.
type UsageError struct {
	Msg string
}

// NewUsageError creates a usage error.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string { return e.Msg }

// FileError is a per-file soft failure: the file is skipped and the run
// continues.
type FileError struct {
	Type       ErrorType
	Op         string
	Path       string
	Underlying error
}

// NewFileError creates a file error, classifying permission failures.
func NewFileError(op, path string, err error) *FileError {
	t := ErrorTypeFile
	if errors.Is(err, fs.ErrPermission) {
		t = ErrorTypePermission
	}
	return &FileError{Type: t, Op: op, Path: path, Underlying: err}
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Op, e.Path, e.Underlying)
}

func (e *FileError) Unwrap() error { return e.Underlying }

// WalkError is a per-directory soft failure: the subtree is skipped and
// sibling traversal continues.
type WalkError struct {
	Dir        string
	Underlying error
}

func NewWalkError(dir string, err error) *WalkError {
	return &WalkError{Dir: dir, Underlying: err}
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("cannot walk %s: %v", e.Dir, e.Underlying)
}

func (e *WalkError) Unwrap() error { return e.Underlying }

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
}

func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{Field: field, Value: value, Underlying: err}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for %s (value %q): %v", e.Field, e.Value, e.Underlying)
}

func (e *ConfigError) Unwrap() error { return e.Underlying }

// IsPermission reports whether err stems from a permission failure.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
