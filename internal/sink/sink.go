// Package sink serializes match output from concurrently scanning files.
//
// Every concrete sink guards its format-and-write step with a mutex so
// two concurrent emits never interleave partial records, and flushes per
// record so results are visible while a long scan is still running.
package sink

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Sink collects matches from all concurrently running file scans.
// Implementations must be safe for concurrent use.
type Sink interface {
	// Emit writes one complete (path, byte offset) match record.
	Emit(path string, offset int64)

	// Diag writes one diagnostic line to the error stream. Diagnostics
	// never populate the result stream.
	Diag(format string, args ...any)
}

// flusher matches bufio.Writer and anything else that buffers.
type flusher interface {
	Flush() error
}

// StdoutIsTerminal reports whether stdout is attached to a terminal,
// used to decide whether colored output is appropriate.
func StdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
