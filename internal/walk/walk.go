// Package walk traverses a directory tree and dispatches file scans.
//
// Traversal is depth-first and synchronous: a directory only returns
// after every file-scan task it spawned has finished, while subdirectory
// scans are joined inside the recursion. File scans run concurrently,
// gated by a weighted semaphore so the number of simultaneously mapped
// files never exceeds the configured bound.
package walk

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/semaphore"

	"github.com/skimsearch/skim/internal/debug"
	"github.com/skimsearch/skim/internal/sink"
	"github.com/skimsearch/skim/internal/skimerr"
)

// DefaultMaxDepth is the effective recursion bound when none is given.
const DefaultMaxDepth = 1 << 20

// DefaultMaxScans returns the default bound on concurrently scanned
// files.
func DefaultMaxScans() int {
	n := 8 * runtime.NumCPU()
	if n > 256 {
		n = 256
	}
	return n
}

// FileScanner scans one file and reports matches through its own sink.
// It must be safe for concurrent use and must never panic or propagate
// errors; per-file failures are soft.
type FileScanner interface {
	Scan(path string)
}

// Options configures a Walker.
type Options struct {
	// MaxDepth is the recursion budget: each directory level consumes
	// one unit, and a subtree whose budget is exhausted is skipped with
	// a diagnostic. Non-positive values fall back to DefaultMaxDepth.
	MaxDepth int

	// MaxScans bounds the number of concurrently running file scans.
	// Non-positive values fall back to DefaultMaxScans.
	MaxScans int

	// FollowSymlinks enables descending through symbolic links, with a
	// visited-directory guard against cycles. Off by default.
	FollowSymlinks bool
}

// Walker coordinates the traversal. One Walker runs one Walk at a time.
type Walker struct {
	scanner FileScanner
	out     sink.Sink
	filter  *Filter
	opts    Options
	sem     *semaphore.Weighted

	visitedMu sync.Mutex
	visited   map[uint64]struct{}
}

// New creates a Walker dispatching to scanner and reporting diagnostics
// through out. A nil filter selects every file.
func New(scanner FileScanner, out sink.Sink, filter *Filter, opts Options) *Walker {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxScans <= 0 {
		opts.MaxScans = DefaultMaxScans()
	}
	if filter == nil {
		filter = &Filter{}
	}
	return &Walker{
		scanner: scanner,
		out:     out,
		filter:  filter,
		opts:    opts,
		sem:     semaphore.NewWeighted(int64(opts.MaxScans)),
		visited: make(map[uint64]struct{}),
	}
}

// Walk traverses the tree rooted at root. It returns after every
// dispatched scan has finished. Soft failures (unreadable directories or
// entries) are reported as diagnostics and never abort the run; ctx
// cancellation stops new dispatches.
func (w *Walker) Walk(ctx context.Context, root string) {
	if w.opts.FollowSymlinks {
		w.markVisited(root)
	}
	w.walkDir(ctx, root, w.opts.MaxDepth)
}

func (w *Walker) walkDir(ctx context.Context, dir string, depth int) {
	if depth <= 0 {
		w.out.Diag("skim: max depth reached, not descending into %s", dir)
		return
	}
	if ctx.Err() != nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.out.Diag("skim: %v", skimerr.NewWalkError(dir, err))
		return
	}
	debug.LogWalk("%s: %d entries, depth budget %d\n", dir, len(entries), depth)

	var wg sync.WaitGroup
	// A directory is done only after the file scans it spawned are
	// joined; subdirectories join their own inside the recursion.
	defer wg.Wait()

	for _, ent := range entries {
		path := filepath.Join(dir, ent.Name())
		switch {
		case ent.IsDir():
			w.enterDir(ctx, path, depth)
		case ent.Type()&fs.ModeSymlink != 0:
			w.followSymlink(ctx, &wg, path, depth)
		case ent.Type().IsRegular():
			if w.filter.File(path) {
				w.dispatch(ctx, &wg, path)
			}
		}
		// Sockets, devices, and other irregular entries are ignored.
	}
}

func (w *Walker) enterDir(ctx context.Context, path string, depth int) {
	if !w.filter.Dir(path) {
		debug.LogWalk("excluded %s\n", path)
		return
	}
	if w.opts.FollowSymlinks && !w.firstVisit(path) {
		debug.LogWalk("already visited %s, skipping\n", path)
		return
	}
	w.walkDir(ctx, path, depth-1)
}

// followSymlink resolves a symlink entry when following is enabled.
// Dangling or unstatable links are skipped silently.
func (w *Walker) followSymlink(ctx context.Context, wg *sync.WaitGroup, path string, depth int) {
	if !w.opts.FollowSymlinks {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	switch {
	case info.IsDir():
		w.enterDir(ctx, path, depth)
	case info.Mode().IsRegular():
		if w.filter.File(path) {
			w.dispatch(ctx, wg, path)
		}
	}
}

// firstVisit records the directory's canonical identity and reports
// whether it had been seen before. This is the cycle guard for symlink
// traversal.
func (w *Walker) firstVisit(dir string) bool {
	canonical, err := filepath.EvalSymlinks(dir)
	if err != nil {
		canonical = filepath.Clean(dir)
	}
	key := xxhash.Sum64String(canonical)

	w.visitedMu.Lock()
	defer w.visitedMu.Unlock()
	if _, seen := w.visited[key]; seen {
		return false
	}
	w.visited[key] = struct{}{}
	return true
}

func (w *Walker) markVisited(dir string) {
	w.firstVisit(dir)
}

func (w *Walker) dispatch(ctx context.Context, wg *sync.WaitGroup, path string) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		// Context canceled while waiting for a slot.
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer w.sem.Release(1)
		w.scanner.Scan(path)
	}()
}
