// Package cli implements the flowgrid command-line interface.
//
// This package provides commands for computing diagram layouts, routing
// edges, rendering visual artifacts, previewing diagrams in the terminal,
// serving the HTTP API, and managing the result cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute node positions and edge routes for a document
//   - route: Route edges against the document's existing positions
//   - render: Generate SVG, PNG, PDF, DOT, or JSON outputs
//   - preview: Interactive terminal preview of a diagram
//   - serve: Run the HTTP API server
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/saxonthune/flowgrid/pkg/buildinfo"
	"github.com/saxonthune/flowgrid/pkg/cache"
	"github.com/saxonthune/flowgrid/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "flowgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the config file
// (if any) loaded.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "FlowGrid lays out and routes flow diagrams",
		Long:         `FlowGrid computes layered layouts and orthogonal edge routes for flow diagrams, and renders the result as SVG, PNG, PDF, or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(appName + " " + buildinfo.String() + "\n")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/flowgrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// pipelineOptions builds pipeline options from config defaults plus the
// command's flag values.
func (c *CLI) pipelineOptions(direction string, layerGap, nodeGap, padding, bendPenalty float64) pipeline.Options {
	opts := pipeline.Options{
		Direction:   c.Config.Direction,
		LayerGap:    c.Config.LayerGap,
		NodeGap:     c.Config.NodeGap,
		Padding:     c.Config.Padding,
		BendPenalty: c.Config.BendPenalty,
		Logger:      c.Logger,
	}
	if direction != "" {
		opts.Direction = direction
	}
	if layerGap > 0 {
		opts.LayerGap = layerGap
	}
	if nodeGap > 0 {
		opts.NodeGap = nodeGap
	}
	if padding > 0 {
		opts.Padding = padding
	}
	if bendPenalty > 0 {
		opts.BendPenalty = bendPenalty
	}
	return opts
}
