package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planar/pkg/errors"
	pkgio "github.com/matzehuels/planar/pkg/io"
	"github.com/matzehuels/planar/pkg/pipeline"
)

// exportCommand creates the export command, which converts a subdivision
// document written by arrange into other formats.
func (c *CLI) exportCommand() *cobra.Command {
	var output, formats string

	cmd := &cobra.Command{
		Use:   "export [document.json]",
		Short: "Convert an exported subdivision to DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], output, parseExportFormats(formats))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or stem")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), dot, graphviz, json (comma-separated)")

	return cmd
}

func parseExportFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return parseFormats(s)
}

func (c *CLI) runExport(ctx context.Context, path, output string, formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f, pipeline.Formats...); err != nil {
			return err
		}
	}
	s, err := pkgio.ImportJSON(path)
	if err != nil {
		return pipeline.Classify(err)
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	res := &pipeline.Result{Subdivision: s, Stats: s.Stats(), Bounds: s.Bounds()}
	printSuccess(c.out, "%s", path)
	printStats(c.out, res.Stats, false)
	for _, f := range formats {
		data, err := runner.Render(ctx, res, f)
		if err != nil {
			return err
		}
		dst := outputPath(output, path, f, 1, len(formats))
		if dst == path {
			return errors.New(errors.ErrCodeInvalidPath, "refusing to overwrite input %s", path)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", dst)
		}
		printFile(c.out, dst)
	}
	return nil
}
