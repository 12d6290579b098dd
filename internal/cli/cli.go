// Package cli implements the planar command-line interface.
//
// # Commands
//
//   - arrange: build the arrangement of a scene's lines and write it out
//   - intersect: report the intersections of a scene's segments
//   - step: walk through a sweep one event at a time
//   - export: convert an exported subdivision to DOT or SVG
//   - verify: check the invariants of an exported subdivision
//   - bbox: print the bounding box derived from a scene's lines
//   - serve: run the HTTP API
//   - cache: manage the result cache
//
// All commands accept --verbose (-v) for debug logging. The logger is also
// attached to the command context, see loggerFromContext.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planar/pkg/buildinfo"
	"github.com/matzehuels/planar/pkg/cache"
	"github.com/matzehuels/planar/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "planar"

	// defaultWorkers bounds concurrent builds when arranging several scenes.
	defaultWorkers = 4
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// out receives command output. Log lines go to the logger.
	out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Planar builds line arrangements and finds segment intersections",
		Long:         `Planar builds arrangements of lines as doubly connected edge lists, checks their invariants and finds segment intersections with a plane sweep.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.intersectCommand())
	root.AddCommand(c.stepCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.bboxCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisURL string) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache, redisURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// newCache picks the cache backend: none, Redis when a URL is given, or the
// file cache in the user cache directory.
func (c *CLI) newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	switch {
	case noCache:
		return cache.NewNullCache(), nil
	case redisURL != "":
		return cache.NewRedisCache(ctx, redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/planar/).
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

// outputPath derives the output file for a scene and format. An explicit
// output is used as is for one scene and one format, as a directory for
// several scenes and as a file stem for several formats.
func outputPath(output, scenePath, format string, scenes, formats int) string {
	ext := "." + format
	if format == pipeline.FormatGraphvizSVG {
		ext = ".graphviz.svg"
	}
	stem := strings.TrimSuffix(scenePath, filepath.Ext(scenePath))
	switch {
	case output == "":
	case scenes > 1:
		stem = filepath.Join(output, filepath.Base(stem))
	case formats == 1:
		return output
	default:
		stem = strings.TrimSuffix(output, filepath.Ext(output))
	}
	return stem + ext
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}
