package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planar/pkg/errors"
	"github.com/matzehuels/planar/pkg/geom"
	"github.com/matzehuels/planar/pkg/scene"
)

// bboxCommand creates the bbox command.
func (c *CLI) bboxCommand() *cobra.Command {
	var margin float64

	cmd := &cobra.Command{
		Use:   "bbox [scene]",
		Short: "Print the bounding box of a scene's line intersections",
		Long: `Print the smallest rectangle containing every pairwise intersection of the
scene's lines, grown by the margin. This is the rectangle arrange uses when
the scene has no [bounds] table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			if margin < 0 {
				margin = sc.Margin
				if margin == 0 {
					margin = scene.DefaultMargin
				}
			}
			r, err := geom.BoundingBoxFromLines(sc.GeomLines(), margin, margin)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScene, err, "bounding box")
			}
			printKeyValue(c.out, "xmin", num(r.XMin))
			printKeyValue(c.out, "ymin", num(r.YMin))
			printKeyValue(c.out, "xmax", num(r.XMax))
			printKeyValue(c.out, "ymax", num(r.YMax))
			printKeyValue(c.out, "size", fmt.Sprintf("%s x %s", num(r.Width()), num(r.Height())))
			return nil
		},
	}

	cmd.Flags().Float64Var(&margin, "margin", -1, "margin around the intersections (default: scene margin)")

	return cmd
}

func num(f float64) string { return fmt.Sprintf("%g", f) }
