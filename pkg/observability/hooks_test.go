package observability

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	a := NoopArrangementHooks{}
	a.OnBuildStart(ctx, 10)
	a.OnBuildComplete(ctx, 56, time.Second, nil)
	a.OnSweepStart(ctx, 5)
	a.OnSweepComplete(ctx, 4, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "arrangement")
	c.OnCacheMiss(ctx, "intersections")
	c.OnCacheSet(ctx, "arrangement", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/healthz")
	h.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Arrangement().(NoopArrangementHooks); !ok {
		t.Error("Arrangement() is not a no-op by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() is not a no-op by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() is not a no-op by default")
	}

	counters := NewCounters()
	SetArrangementHooks(counters)
	SetCacheHooks(counters)
	SetHTTPHooks(counters)
	if Arrangement() != counters || Cache() != counters || HTTP() != counters {
		t.Error("setters did not register the hooks")
	}

	SetArrangementHooks(nil)
	if Arrangement() != counters {
		t.Error("SetArrangementHooks(nil) replaced the hooks")
	}

	Reset()
	if _, ok := Arrangement().(NoopArrangementHooks); !ok {
		t.Error("Reset() did not restore the no-op hooks")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	c.OnBuildStart(ctx, 3)
	c.OnBuildComplete(ctx, 7, 5*time.Millisecond, nil)
	c.OnBuildStart(ctx, 3)
	c.OnBuildComplete(ctx, 0, 0, errors.New("degenerate"))
	c.OnSweepStart(ctx, 5)
	c.OnSweepComplete(ctx, 4, time.Millisecond, nil)
	c.OnCacheHit(ctx, "arrangement")
	c.OnCacheMiss(ctx, "arrangement")
	c.OnCacheMiss(ctx, "arrangement")
	c.OnCacheSet(ctx, "arrangement", 100)
	c.OnRequest(ctx, "POST", "/v1/arrangements")
	c.OnResponse(ctx, "POST", "/v1/arrangements", 201, 2*time.Millisecond)

	tests := []struct {
		name string
		want int64
	}{
		{MetricBuilds, 2},
		{MetricBuildErrors, 1},
		{MetricFaces, 7},
		{MetricBuildMillis, 5},
		{MetricSweeps, 1},
		{MetricIntersections, 4},
		{MetricCacheHitPrefix + "arrangement", 1},
		{MetricCacheMissPrefix + "arrangement", 2},
		{MetricCacheBytes, 100},
		{MetricRequests, 1},
		{MetricStatusPrefix + "201", 1},
		{"never.recorded", 0},
	}
	for _, tt := range tests {
		if got := c.Get(tt.name); got != tt.want {
			t.Errorf("Get(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}

	names := c.Names()
	if !slices.IsSorted(names) {
		t.Errorf("Names() = %v, not sorted", names)
	}
	if slices.Contains(names, "never.recorded") {
		t.Error("Get() created a counter")
	}
}

func TestCountersConcurrent(t *testing.T) {
	c := NewCounters()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.Add("n", 1)
			}
		}()
	}
	wg.Wait()
	if got := c.Get("n"); got != 8000 {
		t.Errorf("Get(n) = %d, want 8000", got)
	}
}
