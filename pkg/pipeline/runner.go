package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/planar/pkg/cache"
	"github.com/matzehuels/planar/pkg/dcel"
	"github.com/matzehuels/planar/pkg/errors"
	pkgio "github.com/matzehuels/planar/pkg/io"
	"github.com/matzehuels/planar/pkg/observability"
	"github.com/matzehuels/planar/pkg/render/dot"
	"github.com/matzehuels/planar/pkg/render/svg"
	"github.com/matzehuels/planar/pkg/scene"
	"github.com/matzehuels/planar/pkg/sweep"
)

// Runner executes pipeline stages with caching. Both CLI and server use it.
//
// The Runner holds no per-run state, so one Runner may serve many goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means [cache.DefaultKeyer] and a nil logger means the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// =============================================================================
// Build
// =============================================================================

// Build returns the arrangement of the scene's lines, from cache if possible.
func (r *Runner) Build(ctx context.Context, sc *scene.Scene, opts Options) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if len(sc.Lines) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene has no lines")
	}

	hash := sc.Hash()
	key := r.Keyer.ArrangementKey(hash, cache.ArrangementKeyOpts{Validate: opts.Validate})
	start := time.Now()

	if !opts.Refresh {
		if s, ok := r.cachedSubdivision(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, "arrangement")
			r.Logger.Debug("arrangement cache hit", "scene", sc.Name, "key", key)
			return &Result{
				Subdivision: s,
				SceneHash:   hash,
				Stats:       s.Stats(),
				Bounds:      s.Bounds(),
				Duration:    time.Since(start),
				CacheHit:    true,
			}, nil
		}
		observability.Cache().OnCacheMiss(ctx, "arrangement")
	}

	s, err := r.build(ctx, sc, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pkgio.WriteJSON(s, &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLArrangement); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "arrangement", buf.Len())
		}
	}

	res := &Result{
		Subdivision: s,
		SceneHash:   hash,
		Stats:       s.Stats(),
		Bounds:      s.Bounds(),
		Duration:    time.Since(start),
	}
	r.Logger.Info("built arrangement",
		"scene", sc.Name,
		"lines", res.Stats.Lines,
		"faces", res.Stats.Faces,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) build(ctx context.Context, sc *scene.Scene, opts Options) (s *dcel.Subdivision, err error) {
	lines := sc.GeomLines()
	start := time.Now()
	observability.Arrangement().OnBuildStart(ctx, len(lines))
	defer func() {
		faces := 0
		if s != nil {
			faces = s.Stats().Faces
		}
		observability.Arrangement().OnBuildComplete(ctx, faces, time.Since(start), err)
	}()

	rect, err := sc.Rect()
	if err != nil {
		return nil, err
	}
	s, err = dcel.NewRect(rect, dcel.WithLogger(r.Logger), dcel.WithValidation(opts.Validate))
	if err != nil {
		return nil, Classify(err)
	}
	for i, l := range lines {
		if err := ctx.Err(); err != nil {
			return nil, Classify(err)
		}
		if err := s.InsertLine(l); err != nil {
			return nil, errors.FieldError("line", i, Classify(err))
		}
	}
	return s, nil
}

func (r *Runner) cachedSubdivision(ctx context.Context, key string) (*dcel.Subdivision, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	s, err := pkgio.ReadJSON(bytes.NewReader(data), dcel.WithLogger(r.Logger))
	if err != nil {
		r.Logger.Warn("discarding unreadable cache entry", "key", key, "err", err)
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	return s, true
}

// BuildBatch builds several scenes with at most workers concurrent builds.
// Results are in input order. The first failure cancels the remaining builds.
func (r *Runner) BuildBatch(ctx context.Context, scenes []*scene.Scene, opts Options, workers int) ([]*Result, error) {
	results := make([]*Result, len(scenes))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, sc := range scenes {
		g.Go(func() error {
			res, err := r.Build(ctx, sc, opts)
			if err != nil {
				return fmt.Errorf("scene %d (%s): %w", i, sc.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// =============================================================================
// Intersections
// =============================================================================

// Intersections finds all intersections of the scene's segments.
func (r *Runner) Intersections(ctx context.Context, sc *scene.Scene, opts Options) (*IntersectionResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if len(sc.Segments) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene has no segments")
	}

	key := r.Keyer.IntersectionsKey(sc.Hash())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var res IntersectionResult
			if err := json.Unmarshal(data, &res); err == nil {
				observability.Cache().OnCacheHit(ctx, "intersections")
				res.CacheHit = true
				return &res, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "intersections")
	}

	segs := sc.GeomSegments()
	start := time.Now()
	observability.Arrangement().OnSweepStart(ctx, len(segs))
	found, err := sweep.FindIntersections(ctx, segs, sweep.WithLogger(r.Logger))
	observability.Arrangement().OnSweepComplete(ctx, len(found), time.Since(start), err)
	if err != nil {
		return nil, Classify(err)
	}

	res := &IntersectionResult{
		Intersections: found,
		Segments:      len(segs),
		Duration:      time.Since(start),
	}
	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLIntersections)
		observability.Cache().OnCacheSet(ctx, "intersections", len(data))
	}
	r.Logger.Info("found intersections",
		"scene", sc.Name,
		"segments", len(segs),
		"intersections", len(found),
		"duration", res.Duration)
	return res, nil
}

// =============================================================================
// Render
// =============================================================================

// Render encodes a built arrangement in the given format. Graphviz output is
// cached.
func (r *Runner) Render(ctx context.Context, res *Result, format string) ([]byte, error) {
	if err := errors.ValidateFormat(format, Formats...); err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := pkgio.WriteJSON(res.Subdivision, &buf); err != nil {
			return nil, Classify(err)
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(dot.ToDOT(res.Subdivision, dot.Options{Labels: true})), nil
	case FormatSVG:
		return svg.RenderSVG(res.Subdivision, svg.WithLabels()), nil
	}

	key := r.Keyer.RenderKey(res.SceneHash, format)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, nil
	}
	out, err := dot.RenderSVG(ctx, dot.ToDOT(res.Subdivision, dot.Options{}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "graphviz")
	}
	_ = r.Cache.Set(ctx, key, out, cache.TTLRender)
	return out, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
