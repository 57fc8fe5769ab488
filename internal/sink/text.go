package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// TextSink writes one "<path>:<offset>" line per match. With colorize
// enabled the path is highlighted the way grep-style tools do.
type TextSink struct {
	mu        sync.Mutex
	out       io.Writer
	errOut    io.Writer
	pathColor *color.Color
}

// NewText creates a text sink writing records to out and diagnostics to
// errOut.
func NewText(out, errOut io.Writer, colorize bool) *TextSink {
	s := &TextSink{out: out, errOut: errOut}
	if colorize {
		s.pathColor = color.New(color.FgMagenta)
	}
	return s
}

// Emit writes one match record and flushes it.
func (s *TextSink) Emit(path string, offset int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pathColor != nil {
		fmt.Fprintf(s.out, "%s:%d\n", s.pathColor.Sprint(path), offset)
	} else {
		fmt.Fprintf(s.out, "%s:%d\n", path, offset)
	}
	if f, ok := s.out.(flusher); ok {
		f.Flush()
	}
}

// Diag writes one diagnostic line to the error stream.
func (s *TextSink) Diag(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.errOut, format+"\n", args...)
}
