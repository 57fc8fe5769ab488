package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/skimsearch/skim/internal/config"
	"github.com/skimsearch/skim/internal/match"
	"github.com/skimsearch/skim/internal/scan"
	"github.com/skimsearch/skim/internal/sink"
	"github.com/skimsearch/skim/internal/walk"
)

// loadConfigWithOverrides loads configuration from the search root's
// .skim.kdl (if any) and applies CLI flag overrides on top.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	root := c.String("dir")
	absRoot, err := filepath.Abs(root)
	if err == nil {
		root = absRoot
	}

	var cfg *config.Config
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadKDLFile(path)
	} else {
		cfg, err = config.LoadKDL(root)
	}
	if err != nil {
		return nil, err
	}
	cfg.Root = root
	cfg.Pattern = c.String("pattern")

	if c.IsSet("case-insensitive") {
		cfg.CaseInsensitive = c.Bool("case-insensitive")
	}
	if c.IsSet("max-depth") {
		cfg.MaxDepth = c.Int("max-depth")
	}
	if c.IsSet("max-scans") {
		cfg.MaxScans = c.Int("max-scans")
	}
	if flags := c.StringSlice("include"); len(flags) > 0 {
		cfg.Include = flags
	}
	if flags := c.StringSlice("exclude"); len(flags) > 0 {
		cfg.Exclude = append(cfg.Exclude, flags...)
	}
	if c.IsSet("follow-symlinks") {
		cfg.FollowSymlinks = c.Bool("follow-symlinks")
	}
	if c.IsSet("json") {
		cfg.JSON = c.Bool("json")
	}
	if c.IsSet("no-color") {
		cfg.NoColor = c.Bool("no-color")
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPipeline assembles the matcher, sink, scanner, and walker for one
// run.
func buildPipeline(cfg *config.Config) (*walk.Walker, *scan.Scanner, sink.Sink, error) {
	mode := match.CaseSensitive
	if cfg.CaseInsensitive {
		mode = match.CaseFold
	}
	m, err := match.New([]byte(cfg.Pattern), mode)
	if err != nil {
		return nil, nil, nil, err
	}

	var out sink.Sink
	if cfg.JSON {
		out = sink.NewJSON(os.Stdout, os.Stderr)
	} else {
		colorize := !cfg.NoColor && sink.StdoutIsTerminal()
		out = sink.NewText(os.Stdout, os.Stderr, colorize)
	}

	filter, err := walk.NewFilter(cfg.Root, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, nil, nil, err
	}

	scanner := scan.New(m, out)
	walker := walk.New(scanner, out, filter, walk.Options{
		MaxDepth:       cfg.MaxDepth,
		MaxScans:       cfg.MaxScans,
		FollowSymlinks: cfg.FollowSymlinks,
	})
	return walker, scanner, out, nil
}

// searchAction is the default command: one full recursive search.
// Soft failures during the walk never change the exit code; only setup
// errors do.
func searchAction(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	walker, _, _, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	walker.Walk(context.Background(), cfg.Root)
	return nil
}
