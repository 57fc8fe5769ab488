package walk

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/skimsearch/skim/internal/skimerr"
	"github.com/skimsearch/skim/pkg/pathutil"
)

// Filter decides which files are scanned and which directories are
// descended into, using doublestar glob patterns matched against
// root-relative slash paths. An empty include list selects every file;
// exclusions always win.
type Filter struct {
	root    string
	include []string
	exclude []string
}

// NewFilter validates the patterns and builds a Filter rooted at root.
func NewFilter(root string, include, exclude []string) (*Filter, error) {
	for _, pat := range include {
		if !doublestar.ValidatePattern(pat) {
			return nil, skimerr.NewConfigError("include", pat, doublestar.ErrBadPattern)
		}
	}
	for _, pat := range exclude {
		if !doublestar.ValidatePattern(pat) {
			return nil, skimerr.NewConfigError("exclude", pat, doublestar.ErrBadPattern)
		}
	}
	return &Filter{root: root, include: include, exclude: exclude}, nil
}

// File reports whether a regular file at path should be scanned.
func (f *Filter) File(path string) bool {
	rel := f.rel(path)
	for _, pat := range f.exclude {
		if matchPath(pat, rel) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, pat := range f.include {
		if matchPath(pat, rel) {
			return true
		}
	}
	return false
}

// Dir reports whether a directory at path should be descended into.
// Include patterns select files, not directories, so only exclusions
// prune the tree.
func (f *Filter) Dir(path string) bool {
	rel := f.rel(path)
	for _, pat := range f.exclude {
		if matchPath(pat, rel) {
			return false
		}
		// Patterns like "**/vendor/**" name the directory's contents;
		// prune at the directory itself.
		if trimmed := strings.TrimSuffix(pat, "/**"); trimmed != pat && matchPath(trimmed, rel) {
			return false
		}
	}
	return true
}

func (f *Filter) rel(path string) string {
	if filepath.IsAbs(path) {
		return pathutil.ToSlashRelative(path, f.root)
	}
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// matchPath matches pat against the relative path; bare patterns without
// a separator (like "*.go") also match on the final path component.
func matchPath(pat, rel string) bool {
	if ok, _ := doublestar.Match(pat, rel); ok {
		return true
	}
	if !strings.Contains(pat, "/") {
		if ok, _ := doublestar.Match(pat, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
