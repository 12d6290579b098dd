package observability

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cornelk/hashmap"
)

// Counter names recorded by [Counters].
const (
	MetricBuilds          = "arrangement.builds"
	MetricBuildErrors     = "arrangement.errors"
	MetricFaces           = "arrangement.faces"
	MetricBuildMillis     = "arrangement.millis"
	MetricSweeps          = "sweep.runs"
	MetricSweepErrors     = "sweep.errors"
	MetricIntersections   = "sweep.intersections"
	MetricCacheHitPrefix  = "cache.hit."
	MetricCacheMissPrefix = "cache.miss."
	MetricCacheBytes      = "cache.bytes"
	MetricRequests        = "http.requests"
	MetricStatusPrefix    = "http.status."
	MetricRequestMillis   = "http.millis"
)

// Counters counts hook events by name. It implements [ArrangementHooks],
// [CacheHooks] and [HTTPHooks] and is safe for concurrent use.
type Counters struct {
	m *hashmap.Map[string, *atomic.Int64]
}

// NewCounters returns an empty Counters.
func NewCounters() *Counters {
	return &Counters{m: hashmap.New[string, *atomic.Int64]()}
}

// Add adds delta to the named counter.
func (c *Counters) Add(name string, delta int64) {
	v, ok := c.m.Get(name)
	if !ok {
		v, _ = c.m.GetOrInsert(name, new(atomic.Int64))
	}
	v.Add(delta)
}

// Get returns the value of the named counter, or zero.
func (c *Counters) Get(name string) int64 {
	if v, ok := c.m.Get(name); ok {
		return v.Load()
	}
	return 0
}

// Snapshot returns a copy of every counter.
func (c *Counters) Snapshot() map[string]int64 {
	out := make(map[string]int64, c.m.Len())
	c.m.Range(func(k string, v *atomic.Int64) bool {
		out[k] = v.Load()
		return true
	})
	return out
}

// Names returns the counter names in sorted order.
func (c *Counters) Names() []string {
	return slices.Sorted(maps.Keys(c.Snapshot()))
}

func (c *Counters) OnBuildStart(context.Context, int) { c.Add(MetricBuilds, 1) }

func (c *Counters) OnBuildComplete(_ context.Context, faces int, d time.Duration, err error) {
	if err != nil {
		c.Add(MetricBuildErrors, 1)
		return
	}
	c.Add(MetricFaces, int64(faces))
	c.Add(MetricBuildMillis, d.Milliseconds())
}

func (c *Counters) OnSweepStart(context.Context, int) { c.Add(MetricSweeps, 1) }

func (c *Counters) OnSweepComplete(_ context.Context, n int, _ time.Duration, err error) {
	if err != nil {
		c.Add(MetricSweepErrors, 1)
		return
	}
	c.Add(MetricIntersections, int64(n))
}

func (c *Counters) OnCacheHit(_ context.Context, keyType string)  { c.Add(MetricCacheHitPrefix+keyType, 1) }
func (c *Counters) OnCacheMiss(_ context.Context, keyType string) { c.Add(MetricCacheMissPrefix+keyType, 1) }
func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.Add(MetricCacheBytes, int64(size))
}

func (c *Counters) OnRequest(context.Context, string, string) { c.Add(MetricRequests, 1) }

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, d time.Duration) {
	c.Add(MetricStatusPrefix+strconv.Itoa(status), 1)
	c.Add(MetricRequestMillis, d.Milliseconds())
}

var (
	_ ArrangementHooks = (*Counters)(nil)
	_ CacheHooks       = (*Counters)(nil)
	_ HTTPHooks        = (*Counters)(nil)
)
