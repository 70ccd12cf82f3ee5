package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	for _, items := range []int{1, 7, 100, 1001} {
		hits := make([]int32, items)
		Parallelize(items, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			assert.Equal(t, int32(1), h, "items=%d index=%d", items, i)
		}
	}
}

func TestParallelizeWithWorkers_ChunkCount(t *testing.T) {
	var chunks int32
	ParallelizeWithWorkers(10, 3, func(start, end int) {
		atomic.AddInt32(&chunks, 1)
	})
	assert.Equal(t, int32(3), chunks)

	chunks = 0
	ParallelizeWithWorkers(2, 0, func(start, end int) {
		atomic.AddInt32(&chunks, 1)
		assert.Equal(t, 0, start)
		assert.Equal(t, 2, end)
	})
	assert.Equal(t, int32(1), chunks)
}

func TestParallelizeWithThreshold_Sequential(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(50, 100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 50, end)
	})
	assert.Equal(t, 1, calls)

	ParallelizeWithThreshold(0, 100, func(start, end int) {
		t.Fatal("fn must not run for zero items")
	})
}
