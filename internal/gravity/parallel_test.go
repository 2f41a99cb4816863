package gravity

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 63, 64, 65, 1000, 4097} {
		visited := make([]int32, n)

		parallelFor(n, 64, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&visited[i], 1)
			}
		})

		for i, v := range visited {
			if v != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, v)
			}
		}
	}
}

func TestParallelForSmallRunsInline(t *testing.T) {
	var calls int32

	parallelFor(10, 64, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("inline chunk [%d, %d), want [0, 10)", start, end)
		}
	})

	if calls != 1 {
		t.Fatalf("small range split into %d chunks", calls)
	}
}
