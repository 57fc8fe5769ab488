package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/skimsearch/skim/internal/debug"
	"github.com/skimsearch/skim/internal/version"
)

func main() {
	if debug.Enabled() {
		debug.SetOutput(os.Stderr)
	}

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "skim: %v\n", err)
		os.Exit(2)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "skim",
		Usage:                  "Concurrent exact-pattern search over a directory tree",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "Literal byte pattern to search for (required)",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Root directory of the recursive search",
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:    "case-insensitive",
				Aliases: []string{"i"},
				Usage:   "Case-insensitive matching (ASCII fold)",
			},
			&cli.IntFlag{
				Name:    "max-depth",
				Aliases: []string{"r"},
				Usage:   "Maximum directory recursion depth (non-positive means unbounded)",
			},
			&cli.IntFlag{
				Name:  "max-scans",
				Usage: "Maximum number of concurrently scanned files",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Only scan files matching glob patterns (e.g. --include '*.go')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Skip files and directories matching glob patterns (e.g. --exclude '**/vendor/**')",
			},
			&cli.BoolFlag{
				Name:  "follow-symlinks",
				Usage: "Follow symbolic links (cycles are detected and skipped)",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Emit matches as newline-delimited JSON",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a KDL config file (default: .skim.kdl in the search root)",
			},
		},
		Action: searchAction,
		Commands: []*cli.Command{
			{
				Name:   "watch",
				Usage:  "Search once, then rescan files as they change",
				Action: watchAction,
			},
			{
				Name:  "version",
				Usage: "Print detailed version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, version.FullInfo())
					return nil
				},
			},
		},
	}
}
