package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL attempts to load configuration from a .skim.kdl file in dir.
// A missing file is not an error: defaults are returned.
func LoadKDL(dir string) (*Config, error) {
	kdlPath := filepath.Join(dir, ".skim.kdl")

	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadKDLFile(kdlPath)
}

// LoadKDLFile loads configuration from an explicit KDL file path. Unlike
// LoadKDL, a missing file is an error here: a path the user named must
// exist.
func LoadKDLFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseKDL(string(content))
}

// parseKDL reads a config document of the form:
//
//	search {
//	    case_insensitive true
//	    max_depth 16
//	    max_scans 64
//	    follow_symlinks false
//	}
//	include "*.go" "*.md"
//	exclude {
//	    "**/vendor/**"
//	    "**/.git/**"
//	}
//	output {
//	    json false
//	    no_color false
//	}
//	watch {
//	    enabled false
//	    debounce_ms 200
//	}
func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "case_insensitive":
					if b, ok := firstBoolArg(cn); ok {
						cfg.CaseInsensitive = b
					}
				case "max_depth":
					if v, ok := firstIntArg(cn); ok {
						cfg.MaxDepth = v
					}
				case "max_scans":
					if v, ok := firstIntArg(cn); ok {
						cfg.MaxScans = v
					}
				case "follow_symlinks":
					if b, ok := firstBoolArg(cn); ok {
						cfg.FollowSymlinks = b
					}
				}
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = append(cfg.Exclude, collectStringArgs(n)...)
		case "output":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "json":
					if b, ok := firstBoolArg(cn); ok {
						cfg.JSON = b
					}
				case "no_color":
					if b, ok := firstBoolArg(cn); ok {
						cfg.NoColor = b
					}
				}
			}
		case "watch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Watch.Enabled = b
					}
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Watch.DebounceMs = v
					}
				}
			}
		}
	}

	cfg.Normalize()
	return cfg, nil
}

// Helper functions leveraging the kdl-go document model.

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	// Inline format: include "a" "b"
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// Block format: exclude { "a"; "b" } — each string is a child node
	// whose name is the value.
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}
