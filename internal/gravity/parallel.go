package gravity

import (
	"runtime"
	"sync"
)

// forceChunk is the minimum number of stars per worker before fanning
// the force pass out is worth the goroutine overhead.
const forceChunk = 64

// parallelFor splits [0, n) into contiguous chunks and runs fn on each
// from its own goroutine, blocking until all complete. fn must not share
// mutable state across chunks.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
