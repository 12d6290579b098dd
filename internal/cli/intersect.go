package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planar/pkg/errors"
	"github.com/matzehuels/planar/pkg/pipeline"
	"github.com/matzehuels/planar/pkg/scene"
	"github.com/matzehuels/planar/pkg/sweep"
)

type intersectOpts struct {
	asJSON  bool
	check   bool
	noCache bool
	refresh bool
	redis   string
}

// intersectCommand creates the intersect command.
func (c *CLI) intersectCommand() *cobra.Command {
	var opts intersectOpts

	cmd := &cobra.Command{
		Use:   "intersect [scene]",
		Short: "Find the intersections of a scene's segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runIntersect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.check, "check", false, "compare with a brute-force pairwise search")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "cache in Redis at this URL instead of on disk")

	return cmd
}

func (c *CLI) runIntersect(ctx context.Context, path string, opts intersectOpts) error {
	sc, err := scene.Load(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Intersections(ctx, sc, pipeline.Options{Refresh: opts.refresh})
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printSuccess(c.out, "%d intersections among %d segments", len(res.Intersections), res.Segments)
		if len(res.Intersections) > 0 {
			fmt.Fprintln(c.out, intersectionTable(res.Intersections))
		}
	}

	if opts.check {
		want := sweep.BruteForce(sc.GeomSegments())
		if err := compareIntersections(res.Intersections, want); err != nil {
			return err
		}
		c.Logger.Info("brute force agrees", "intersections", len(want))
	}
	return nil
}

func intersectionTable(found []sweep.Intersection) string {
	ids := func(v []int) string {
		if len(v) == 0 {
			return "-"
		}
		s := make([]string, len(v))
		for i, id := range v {
			s[i] = fmt.Sprint(id)
		}
		return strings.Join(s, " ")
	}
	var rows [][]string
	for _, in := range found {
		rows = append(rows, []string{
			fmt.Sprintf("(%.6g, %.6g)", in.Point.X, in.Point.Y),
			ids(in.Upper),
			ids(in.Lower),
			ids(in.Containing),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Point", "Upper", "Lower", "Containing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// compareIntersections reports the first difference between two results in
// sweep order.
func compareIntersections(got, want []sweep.Intersection) error {
	if len(got) != len(want) {
		return errors.New(errors.ErrCodeInternal, "sweep found %d intersections, brute force %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Point.Near(want[i].Point) || !slices.Equal(got[i].Segments(), want[i].Segments()) {
			return errors.New(errors.ErrCodeInternal, "intersection %d differs: sweep %v %v, brute force %v %v",
				i, got[i].Point, got[i].Segments(), want[i].Point, want[i].Segments())
		}
	}
	return nil
}
