package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlushRunsInEnqueueOrder(t *testing.T) {
	q := NewMutationQueue()
	order := make([]int, 0)

	for i := 0; i < 5; i++ {
		i := i
		q.Enqueue(func() { order = append(order, i) })
	}

	assert.Equal(t, 5, q.Len())
	assert.Equal(t, 5, q.Flush())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, 0, q.Len())
}

func TestFlushRunsEachMutationOnce(t *testing.T) {
	q := NewMutationQueue()
	runs := 0
	q.Enqueue(func() { runs++ })

	q.Flush()
	q.Flush()

	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, q.Flush())
}

func TestMutationEnqueuedDuringFlushWaitsForNextFlush(t *testing.T) {
	q := NewMutationQueue()
	trace := make([]string, 0)

	q.Enqueue(func() {
		trace = append(trace, "outer")
		q.Enqueue(func() { trace = append(trace, "inner") })
	})

	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, []string{"outer"}, trace)
	assert.Equal(t, 1, q.Len())

	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, []string{"outer", "inner"}, trace)
}
