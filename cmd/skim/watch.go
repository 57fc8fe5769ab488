package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/skimsearch/skim/internal/walk"
	"github.com/skimsearch/skim/internal/watch"
)

// watchAction runs one full search, then keeps rescanning files as they
// change until interrupted.
func watchAction(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	walker, scanner, out, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	walker.Walk(ctx, cfg.Root)

	filter, err := walk.NewFilter(cfg.Root, cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}
	w, err := watch.New(cfg.Root, scanner, out, filter, watch.Options{
		MaxDepth: cfg.MaxDepth,
		Debounce: time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
