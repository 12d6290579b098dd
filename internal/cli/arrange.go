package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planar/pkg/dcel"
	"github.com/matzehuels/planar/pkg/errors"
	"github.com/matzehuels/planar/pkg/pipeline"
	"github.com/matzehuels/planar/pkg/scene"
)

// arrangeOpts holds the flags of the arrange command.
type arrangeOpts struct {
	output   string // output file, stem or directory
	formats  string // comma-separated output formats
	validate bool   // check invariants after every line
	faces    bool   // print a table of bounded faces
	noCache  bool
	refresh  bool
	redis    string
	workers  int
}

// arrangeCommand creates the arrange command.
func (c *CLI) arrangeCommand() *cobra.Command {
	opts := arrangeOpts{workers: defaultWorkers}

	cmd := &cobra.Command{
		Use:   "arrange [scene...]",
		Short: "Build the arrangement of a scene's lines",
		Long: `Build the arrangement of the lines of one or more scene files and write it
in the requested formats. Scenes are TOML or JSON files.

With one scene and one format, --output names the file. With several formats it
is a file stem, with several scenes a directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArrange(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, stem or directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json (default), dot, svg, graphviz (comma-separated)")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "check all invariants after every inserted line")
	cmd.Flags().BoolVar(&opts.faces, "faces", false, "print the bounded faces")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "cache in Redis at this URL instead of on disk")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "concurrent builds for several scenes")

	return cmd
}

func (c *CLI) runArrange(ctx context.Context, paths []string, opts arrangeOpts) error {
	formats := parseFormats(opts.formats)
	for _, f := range formats {
		if err := errors.ValidateFormat(f, pipeline.Formats...); err != nil {
			return err
		}
	}

	scenes := make([]*scene.Scene, len(paths))
	for i, p := range paths {
		sc, err := scene.Load(p)
		if err != nil {
			return err
		}
		if sc.Name == "" {
			sc.Name = filepath.Base(p)
		}
		scenes[i] = sc
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	stop := c.spin(ctx, fmt.Sprintf("Arranging %d scene(s)...", len(scenes)))
	results, err := runner.BuildBatch(ctx, scenes, pipeline.Options{
		Validate: opts.validate,
		Refresh:  opts.refresh,
	}, opts.workers)
	stop()
	if err != nil {
		return err
	}

	if opts.output != "" && len(scenes) > 1 {
		if err := os.MkdirAll(opts.output, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory")
		}
	}
	for i, res := range results {
		printSuccess(c.out, "%s", scenes[i].Name)
		printStats(c.out, res.Stats, res.CacheHit)
		if opts.faces {
			c.printFaces(res.Subdivision)
		}
		for _, f := range formats {
			data, err := runner.Render(ctx, res, f)
			if err != nil {
				return err
			}
			path := outputPath(opts.output, paths[i], f, len(paths), len(formats))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
			}
			printFile(c.out, path)
		}
	}
	prog.done("arranged", "scenes", len(scenes))
	return nil
}

// printFaces prints the bounded faces of s as a table.
func (c *CLI) printFaces(s *dcel.Subdivision) {
	var rows [][]string
	for _, f := range s.BoundedFaces() {
		centroid := f.Polygon().Centroid()
		rows = append(rows, []string{
			fmt.Sprint(f.ID()),
			fmt.Sprint(len(f.OuterVertices())),
			fmt.Sprintf("%.4g", f.Area()),
			fmt.Sprintf("(%.4g, %.4g)", centroid.X, centroid.Y),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Face", "Vertices", "Area", "Centroid").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(c.out, t.Render())
}

// spin starts a spinner on a terminal stderr and returns its stop function.
func (c *CLI) spin(ctx context.Context, msg string) func() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return func() {}
	}
	s := newSpinner(ctx, os.Stderr, msg)
	s.Start()
	return s.Stop
}
