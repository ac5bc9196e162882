// Package worker provides bounded-concurrency helpers for batch
// verification runs.
package worker

import (
	"context"
	"sync"
)

// Run executes fn over every item with at most workers running at
// once, returning results in input order. Items not started before the
// context is cancelled keep the zero result; fn receives the context
// and is responsible for honoring cancellation mid-flight.
func Run[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) R) []R {
	if workers <= 0 {
		workers = 1
	}

	results := make([]R, len(items))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = fn(ctx, it)
		}(i, item)
	}

	wg.Wait()
	return results
}
