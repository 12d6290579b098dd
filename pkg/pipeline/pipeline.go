// Package pipeline turns scenes into arrangements and intersection results.
//
// This package is shared by the CLI and the HTTP server so both build,
// validate, cache and render in the same way.
//
// # Stages
//
//  1. Scene: a validated [scene.Scene] (lines, bounds, segments)
//  2. Build: the arrangement of the lines inside the bounds, a [dcel.Subdivision]
//  3. Render: JSON document, DOT source or SVG
//
// The segment intersection run ([Runner.Intersections]) is independent of the
// arrangement and uses only the scene's segments.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Build(ctx, sc, pipeline.Options{Validate: true})
//	if err != nil {
//	    return err
//	}
//	svg, err := runner.Render(ctx, res, pipeline.FormatSVG)
//
// Errors returned by the runner carry a [errors.Code] (see [Classify]).
package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/planar/pkg/dcel"
	"github.com/matzehuels/planar/pkg/errors"
	"github.com/matzehuels/planar/pkg/geom"
	"github.com/matzehuels/planar/pkg/sweep"
)

// Output formats.
const (
	FormatJSON        = "json"
	FormatDOT         = "dot"
	FormatSVG         = "svg"
	FormatGraphvizSVG = "graphviz"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG, FormatGraphvizSVG}

// Options configures a build.
type Options struct {
	// Validate runs the full invariant check after every inserted line.
	Validate bool

	// Refresh ignores cached results and overwrites them.
	Refresh bool
}

// Result is a built arrangement.
type Result struct {
	Subdivision *dcel.Subdivision
	SceneHash   string
	Stats       dcel.Stats
	Bounds      geom.Rect
	Duration    time.Duration
	CacheHit    bool
}

// IntersectionResult is the outcome of a segment intersection run.
type IntersectionResult struct {
	Intersections []sweep.Intersection `json:"intersections"`
	Segments      int                  `json:"segments"`
	Duration      time.Duration        `json:"duration_ns"`
	CacheHit      bool                 `json:"cache_hit"`
}

// Classify attaches an error code to failures from the geometry packages.
// Errors that already carry a code are returned unchanged.
func Classify(err error) error {
	if err == nil || errors.GetCode(err) != "" {
		return err
	}
	switch {
	case stderrors.Is(err, dcel.ErrDegenerate),
		stderrors.Is(err, dcel.ErrCrossingCount),
		stderrors.Is(err, geom.ErrParallel):
		return errors.Wrap(errors.ErrCodeDegenerate, err, "input is not in general position")
	case stderrors.Is(err, dcel.ErrCorrupt),
		stderrors.Is(err, dcel.ErrNextPrev),
		stderrors.Is(err, dcel.ErrTwin),
		stderrors.Is(err, dcel.ErrFaceCycle),
		stderrors.Is(err, dcel.ErrEuler),
		stderrors.Is(err, dcel.ErrChain),
		stderrors.Is(err, dcel.ErrLeaving),
		stderrors.Is(err, dcel.ErrBadRecord):
		return errors.Wrap(errors.ErrCodeInvariant, err, "subdivision is inconsistent")
	case stderrors.Is(err, geom.ErrNonFinite),
		stderrors.Is(err, geom.ErrInvalidRect),
		stderrors.Is(err, geom.ErrDegenerateLine),
		stderrors.Is(err, geom.ErrNotEnoughLines),
		stderrors.Is(err, sweep.ErrDegenerateSegment),
		stderrors.Is(err, sweep.ErrDuplicateID):
		return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "invalid geometry")
	case stderrors.Is(err, context.Canceled):
		return errors.Wrap(errors.ErrCodeTimeout, err, "canceled")
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "deadline exceeded")
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "internal error")
}
