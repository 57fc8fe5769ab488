// Package scan runs the repeated-match loop over one file at a time.
package scan

import (
	"errors"

	"github.com/skimsearch/skim/internal/debug"
	"github.com/skimsearch/skim/internal/match"
	"github.com/skimsearch/skim/internal/region"
	"github.com/skimsearch/skim/internal/sink"
	"github.com/skimsearch/skim/internal/skimerr"
)

// Scanner scans single files for every occurrence of its pattern. The
// Matcher and Sink are shared read-only / internally synchronized, so one
// Scanner may be used from many goroutines at once.
type Scanner struct {
	m   *match.Matcher
	out sink.Sink
}

// New creates a Scanner emitting through out.
func New(m *match.Matcher, out sink.Sink) *Scanner {
	return &Scanner{m: m, out: out}
}

// Scan maps path and reports every match offset in ascending order.
//
// All failures are soft: a file that cannot be opened, stat'ed, or mapped
// is skipped with a diagnostic and Scan returns normally, so sibling
// scans are never disturbed. Empty files are skipped silently.
func (s *Scanner) Scan(path string) {
	r, err := region.Open(path)
	if err != nil {
		if errors.Is(err, region.ErrEmptyFile) {
			debug.LogScan("skipping empty file %s\n", path)
			return
		}
		s.out.Diag("skim: skipping %s: %v", path, skimerr.NewFileError("open", path, err))
		return
	}
	defer r.Close()

	buf := r.Bytes()
	plen := s.m.Len()
	matches := 0

	// Resume one byte past each hit so overlapping occurrences are all
	// reported; stop once the remaining range is shorter than the pattern.
	for off := 0; off+plen <= len(buf); {
		p := s.m.Find(buf[off:])
		if p < 0 {
			break
		}
		s.out.Emit(path, int64(off+p))
		off += p + 1
		matches++
	}
	debug.LogScan("%s: %d match(es) in %d bytes\n", path, matches, len(buf))
}
