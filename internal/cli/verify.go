package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planar/pkg/errors"
	pkgio "github.com/matzehuels/planar/pkg/io"
)

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [document.json...]",
		Short: "Check the invariants of exported subdivisions",
		Long: `Load subdivision documents written by "arrange -f json" and check the
structural invariants: next/prev and twin consistency, closed face cycles,
endpoint chaining, leaving half-edges and the Euler characteristic.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := c.verifyFile(path); err != nil {
					failed++
				}
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeInvariant, "%d of %d subdivisions failed verification", failed, len(args))
			}
			return nil
		},
	}
}

func (c *CLI) verifyFile(path string) error {
	s, err := pkgio.ImportJSON(path)
	if err != nil {
		printError(c.out, "%s", path)
		for _, line := range strings.Split(errors.UserMessage(err), "\n") {
			printDetail(c.out, "%s", line)
		}
		return err
	}
	st := s.Stats()
	printSuccess(c.out, "%s", path)
	printDetail(c.out, "V=%d E=%d F=%d, V - E + F = %d", st.Vertices, st.HalfEdges/2, st.Faces, st.Vertices-st.HalfEdges/2+st.Faces)
	return nil
}
