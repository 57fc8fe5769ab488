// Package config holds the run configuration: defaults, the optional
// .skim.kdl file, and CLI flag overrides layered on top.
package config

import (
	"runtime"

	"github.com/skimsearch/skim/internal/skimerr"
)

// DefaultMaxDepth is the recursion bound used when none is configured.
// Large enough that only pathological trees hit it.
const DefaultMaxDepth = 1 << 20

// Config is the full run configuration for one invocation.
type Config struct {
	// Pattern is the literal byte pattern to search for. Required.
	Pattern string

	// Root is the directory the recursive search starts from.
	Root string

	// CaseInsensitive enables ASCII case folding.
	CaseInsensitive bool

	// MaxDepth bounds directory recursion. Non-positive values are
	// normalized to DefaultMaxDepth.
	MaxDepth int

	// MaxScans bounds concurrently scanned files. Non-positive values
	// are normalized to a CPU-derived default.
	MaxScans int

	// Include selects files by glob; empty means every file.
	Include []string

	// Exclude prunes files and directories by glob.
	Exclude []string

	// FollowSymlinks enables following symbolic links (with a cycle
	// guard).
	FollowSymlinks bool

	// JSON switches output to newline-delimited JSON records.
	JSON bool

	// NoColor disables colored output even on a terminal.
	NoColor bool

	Watch Watch
}

// Watch configures watch mode.
type Watch struct {
	Enabled    bool
	DebounceMs int
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root:     ".",
		MaxDepth: DefaultMaxDepth,
		MaxScans: defaultMaxScans(),
		Watch:    Watch{DebounceMs: 200},
	}
}

func defaultMaxScans() int {
	n := 8 * runtime.NumCPU()
	if n > 256 {
		n = 256
	}
	return n
}

// Normalize clamps unusable numeric values back to their defaults. Flag
// values like a non-positive or unparsable depth fall back rather than
// erroring.
func (c *Config) Normalize() {
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxScans <= 0 {
		c.MaxScans = defaultMaxScans()
	}
	if c.Watch.DebounceMs <= 0 {
		c.Watch.DebounceMs = 200
	}
	if c.Root == "" {
		c.Root = "."
	}
}

// Validate rejects configurations scanning cannot start with.
func (c *Config) Validate() error {
	if c.Pattern == "" {
		return skimerr.NewUsageError("pattern is required and must not be empty")
	}
	return nil
}
