package pipeline

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, workers int) *Runner {
	t.Helper()
	r, err := NewRunner(workers)
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

func TestRunIndexed_OrderPreserved(t *testing.T) {
	r := newTestRunner(t, 4)

	results, ok := RunIndexed(r, 20, func(i int) (string, error) {
		return fmt.Sprintf("task-%d", i), nil
	})

	require.Len(t, results, 20)
	for i, got := range results {
		assert.True(t, ok[i])
		assert.Equal(t, fmt.Sprintf("task-%d", i), got)
	}
}

func TestRunIndexed_FailureIsolation(t *testing.T) {
	r := newTestRunner(t, 3)

	results, ok := RunIndexed(r, 5, func(i int) (int, error) {
		if i == 2 {
			return 0, errors.New("boom")
		}
		return i * 10, nil
	})

	assert.False(t, ok[2])
	assert.Zero(t, results[2])
	for _, i := range []int{0, 1, 3, 4} {
		assert.True(t, ok[i])
		assert.Equal(t, i*10, results[i])
	}
}

func TestRunIndexed_PanicIsolation(t *testing.T) {
	r := newTestRunner(t, 2)

	results, ok := RunIndexed(r, 4, func(i int) (int, error) {
		if i == 1 {
			panic("worker panic")
		}
		return i, nil
	})

	assert.False(t, ok[1])
	assert.True(t, ok[0])
	assert.True(t, ok[2])
	assert.True(t, ok[3])
	assert.Equal(t, 3, results[3])
}

func TestRunIndexed_AllTasksRunOnce(t *testing.T) {
	r := newTestRunner(t, 2)

	var calls atomic.Int64
	_, ok := RunIndexed(r, 50, func(i int) (struct{}, error) {
		calls.Add(1)
		return struct{}{}, nil
	})

	assert.Equal(t, int64(50), calls.Load())
	for i := range ok {
		assert.True(t, ok[i])
	}
}

func TestRunIndexed_Empty(t *testing.T) {
	r := newTestRunner(t, 2)

	results, ok := RunIndexed(r, 0, func(i int) (int, error) { return 0, nil })
	assert.Empty(t, results)
	assert.Empty(t, ok)
}

func TestNewRunner_FloorsWorkerCount(t *testing.T) {
	r, err := NewRunner(0)
	require.NoError(t, err)
	defer r.Release()

	results, ok := RunIndexed(r, 3, func(i int) (int, error) { return i, nil })
	assert.Equal(t, []int{0, 1, 2}, results)
	assert.True(t, ok[0] && ok[1] && ok[2])
}
