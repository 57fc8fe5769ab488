// Package debug provides gated diagnostic logging for development builds.
// Debug output never reaches the result stream; it is off unless enabled
// via a build flag or the DEBUG environment variable.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Build flag for debug mode - can be overridden at build time
// go build -ldflags "-X github.com/skimsearch/skim/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// debugOutput is the writer for debug output (defaults to nil, meaning no output)
var debugOutput io.Writer

// debugMutex protects access to debug output
var debugMutex sync.Mutex

// SetOutput sets a custom writer for debug output.
// Pass nil to disable debug output entirely.
func SetOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// Enabled returns true if debug mode is on.
func Enabled() bool {
	if EnableDebug == "true" {
		return true
	}
	if os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true" {
		return true
	}
	return false
}

func writer() io.Writer {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOutput
}

// Printf prints debug information only when debug mode is enabled and
// output is configured.
func Printf(format string, args ...any) {
	if !Enabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG] "+format, args...)
}

// Log provides structured debug logging with component names.
func Log(component, format string, args ...any) {
	if !Enabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format, append([]any{component}, args...)...)
}

// LogWalk provides debug logging for directory traversal.
func LogWalk(format string, args ...any) {
	Log("WALK", format, args...)
}

// LogScan provides debug logging for file scanning.
func LogScan(format string, args ...any) {
	Log("SCAN", format, args...)
}

// LogWatch provides debug logging for watch mode.
func LogWatch(format string, args ...any) {
	Log("WATCH", format, args...)
}
