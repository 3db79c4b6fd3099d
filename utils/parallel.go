package utils

import (
	"context"
	"runtime"
	"sync"
)

// ParallelFor calls fn(i) for every i in [0, n). The range is split into one
// contiguous chunk per worker (GOMAXPROCS workers); below serialBelow items, or
// with a single worker, it runs inline. fn must only write state owned by index i.
//
// The context is checked before every index. On cancellation the remaining
// indices are skipped and ctx.Err() is returned.
func ParallelFor(ctx context.Context, n, serialBelow int, fn func(i int)) error {
	numWorkers := runtime.GOMAXPROCS(0)

	if n < serialBelow || numWorkers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return ctx.Err()
	}

	var wg sync.WaitGroup
	perWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > n {
			end = n
		}
		if start >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
	return ctx.Err()
}
