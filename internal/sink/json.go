package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Record is one match in JSON output mode.
type Record struct {
	Path   string `json:"path"`
	Offset int64  `json:"offset"`
}

// JSONSink writes one newline-delimited JSON object per match.
type JSONSink struct {
	mu     sync.Mutex
	enc    *json.Encoder
	out    io.Writer
	errOut io.Writer
}

// NewJSON creates a JSON sink writing records to out and diagnostics to
// errOut.
func NewJSON(out, errOut io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(out), out: out, errOut: errOut}
}

// Emit writes one match record. json.Encoder terminates each record with
// a newline, which keeps the stream valid NDJSON.
func (s *JSONSink) Emit(path string, offset int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// An encode failure here means the output stream is gone; there is
	// nothing useful to do besides noting it on the error stream.
	if err := s.enc.Encode(Record{Path: path, Offset: offset}); err != nil {
		fmt.Fprintf(s.errOut, "skim: cannot write record: %v\n", err)
		return
	}
	if f, ok := s.out.(flusher); ok {
		f.Flush()
	}
}

// Diag writes one diagnostic line to the error stream.
func (s *JSONSink) Diag(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.errOut, format+"\n", args...)
}
