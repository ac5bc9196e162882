package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_PreservesOrder(t *testing.T) {
	items := []int{5, 3, 1, 4, 2}

	results := Run(context.Background(), 3, items, func(ctx context.Context, n int) int {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10
	})

	for i, n := range items {
		if results[i] != n*10 {
			t.Errorf("Result %d: expected %d, got %d", i, n*10, results[i])
		}
	}
}

func TestRun_BoundsConcurrency(t *testing.T) {
	var active, peak int32
	items := make([]int, 20)

	Run(context.Background(), 4, items, func(ctx context.Context, _ int) struct{} {
		current := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if current <= p || atomic.CompareAndSwapInt32(&peak, p, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return struct{}{}
	})

	if peak > 4 {
		t.Errorf("Expected at most 4 concurrent workers, observed %d", peak)
	}
}

func TestRun_CancelledContextLeavesZeroResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, 1, []int{1, 2, 3}, func(ctx context.Context, n int) int {
		return n
	})

	// With the context already cancelled, no item is guaranteed to
	// start; every result must be either zero or its input.
	for i, r := range results {
		if r != 0 && r != i+1 {
			t.Errorf("Unexpected result %d at index %d", r, i)
		}
	}
}

func TestRun_ZeroWorkersStillRuns(t *testing.T) {
	results := Run(context.Background(), 0, []int{7}, func(ctx context.Context, n int) int {
		return n + 1
	})

	if len(results) != 1 || results[0] != 8 {
		t.Errorf("Expected [8], got %v", results)
	}
}

func TestHostLimiter_WaitAndOverride(t *testing.T) {
	limiter := NewHostLimiter(1000, 10)

	if err := limiter.Wait(context.Background(), "https://example.org/a"); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	// A starved host should block until cancellation.
	limiter.SetHostRate("slow.example.org", 0.0001, 1)
	if err := limiter.Wait(context.Background(), "https://slow.example.org/a"); err != nil {
		t.Fatalf("First request should pass on burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, "https://slow.example.org/b"); err == nil {
		t.Error("Expected context deadline to interrupt a starved host")
	}
}

func TestHostLimiter_InvalidURL(t *testing.T) {
	limiter := NewHostLimiter(10, 5)

	if err := limiter.Wait(context.Background(), "://not-a-url"); err == nil {
		t.Error("Expected error for unparseable URL")
	}
}
