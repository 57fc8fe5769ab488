// Package watch rescans files as they change.
//
// Watch mode runs after an initial full walk: every directory within the
// depth bound is registered with fsnotify, create/write events are
// debounced per path, and each settled event triggers a single-file
// rescan through the normal scanner. Nothing is persisted between runs.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/skimsearch/skim/internal/debug"
	"github.com/skimsearch/skim/internal/sink"
	"github.com/skimsearch/skim/internal/walk"
)

// Options configures a Watcher.
type Options struct {
	// MaxDepth bounds how deep below the root directories are watched,
	// mirroring the walk bound.
	MaxDepth int

	// Debounce is how long a path must stay quiet before it is
	// rescanned. Editors often emit bursts of writes for one save.
	Debounce time.Duration
}

// Watcher monitors a directory tree and rescans changed files.
type Watcher struct {
	fsw     *fsnotify.Watcher
	scanner walk.FileScanner
	out     sink.Sink
	filter  *walk.Filter
	opts    Options
	root    string

	timersMu sync.Mutex
	timers   map[string]*time.Timer
	wg       sync.WaitGroup
}

// New creates a Watcher over root. A nil filter selects every file.
func New(root string, scanner walk.FileScanner, out sink.Sink, filter *walk.Filter, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = walk.DefaultMaxDepth
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	if filter == nil {
		var ferr error
		filter, ferr = walk.NewFilter(root, nil, nil)
		if ferr != nil {
			fsw.Close()
			return nil, ferr
		}
	}
	return &Watcher{
		fsw:     fsw,
		scanner: scanner,
		out:     out,
		filter:  filter,
		opts:    opts,
		root:    root,
		timers:  make(map[string]*time.Timer),
	}, nil
}

// Run registers watches and processes events until ctx is canceled. It
// always returns nil on a clean shutdown; watch registration failures on
// individual directories are soft.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.addWatches(w.root); err != nil {
		return err
	}
	debug.LogWatch("watching %s\n", w.root)

	defer func() {
		w.fsw.Close()
		w.drainTimers()
		w.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.out.Diag("skim: watch error: %v", err)
		}
	}
}

// addWatches registers every directory under root within the depth
// bound. Cycles through resolved symlinks are guarded the same way the
// walker guards them.
func (w *Watcher) addWatches(root string) error {
	visited := make(map[string]bool)

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}
		if !info.IsDir() {
			return nil
		}

		real, rerr := filepath.EvalSymlinks(path)
		if rerr != nil {
			return nil
		}
		if visited[real] {
			return filepath.SkipDir
		}
		visited[real] = true

		if w.depthOf(path) >= w.opts.MaxDepth {
			return filepath.SkipDir
		}
		if path != root && !w.filter.Dir(path) {
			return filepath.SkipDir
		}

		if werr := w.fsw.Add(path); werr != nil {
			w.out.Diag("skim: cannot watch %s: %v", path, werr)
		}
		return nil
	})
}

// depthOf returns how many levels below the root path sits.
func (w *Watcher) depthOf(path string) int {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	debug.LogWatch("event %v for %s\n", ev.Op, ev.Name)

	info, err := os.Lstat(ev.Name)
	if err != nil {
		return // already gone
	}

	if info.IsDir() {
		// Newly created directories join the watch set so files
		// appearing inside them are picked up too.
		if ev.Op&fsnotify.Create != 0 {
			if err := w.addWatches(ev.Name); err != nil {
				w.out.Diag("skim: cannot watch %s: %v", ev.Name, err)
			}
		}
		return
	}
	if !info.Mode().IsRegular() {
		return
	}
	if !w.filter.File(ev.Name) {
		return
	}

	w.debounceScan(ev.Name)
}

// debounceScan schedules a rescan of path once it has been quiet for the
// debounce window. A burst of events for the same path collapses into
// one scan.
func (w *Watcher) debounceScan(path string) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Reset(w.opts.Debounce)
		return
	}
	w.wg.Add(1)
	w.timers[path] = time.AfterFunc(w.opts.Debounce, func() {
		defer w.wg.Done()
		w.timersMu.Lock()
		delete(w.timers, path)
		w.timersMu.Unlock()

		w.scanner.Scan(path)
	})
}

// drainTimers stops pending rescans during shutdown.
func (w *Watcher) drainTimers() {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()
	for path, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
}
