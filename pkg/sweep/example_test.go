package sweep_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/planar/pkg/geom"
	"github.com/matzehuels/planar/pkg/sweep"
)

func ExampleFindIntersections() {
	segs := []geom.Segment{
		{ID: 1, A: geom.Vec{X: 0, Y: 0}, B: geom.Vec{X: 2, Y: 2}},
		{ID: 2, A: geom.Vec{X: 0, Y: 2}, B: geom.Vec{X: 2, Y: 0}},
		{ID: 3, A: geom.Vec{X: 2, Y: 2}, B: geom.Vec{X: 3, Y: 0}},
	}
	found, err := sweep.FindIntersections(context.Background(), segs)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, in := range found {
		fmt.Println(in.Point, in.Segments())
	}
	// Output:
	// (2, 2) [1 3]
	// (1, 1) [1 2]
}
