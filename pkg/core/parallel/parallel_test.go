// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/gomlx/vector1d/internal/workerspool"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	assert.Equal(t, []Range{{0, 3}, {3, 6}, {6, 10}}, Partition(10, 3))
	assert.Equal(t, []Range{{0, 10}}, Partition(10, 1))
	assert.Equal(t, []Range{{0, 1}, {1, 2}}, Partition(2, 8), "partitions capped to n")
	assert.Equal(t, []Range{{0, 0}}, Partition(0, 4))

	// Gap-free and disjoint for many combinations.
	for n := 1; n < 50; n++ {
		for p := 1; p < 12; p++ {
			ranges := Partition(n, p)
			require.Equal(t, min(n, p), len(ranges))
			next := 0
			for _, r := range ranges {
				require.Equal(t, next, r.Start)
				require.Greater(t, r.Len(), 0)
				next = r.End
			}
			require.Equal(t, n, next)
		}
	}
}

func TestExecutorSettings(t *testing.T) {
	ex := New(WithWorkers(4), WithThreshold(10))
	assert.Equal(t, 4, ex.Workers())
	assert.Equal(t, 10, ex.Threshold())
	assert.Equal(t, 1, ex.NumPartitions(9))
	assert.Equal(t, 4, ex.NumPartitions(10))
	assert.Equal(t, 3, New(WithWorkers(4), WithThreshold(0)).NumPartitions(3))

	assert.Equal(t, 1, Sequential().NumPartitions(1_000_000))

	// Unset values follow the process-wide configuration, read fresh on every call.
	saved := DefaultConfig()
	defer func() {
		require.NoError(t, SetDefaultWorkers(saved.Workers))
		require.NoError(t, SetDefaultThreshold(saved.Threshold))
	}()
	require.NoError(t, SetDefaultWorkers(3))
	require.NoError(t, SetDefaultThreshold(5))
	ex = New()
	assert.Equal(t, 3, ex.Workers())
	assert.Equal(t, 5, ex.Threshold())
	require.NoError(t, SetDefaultWorkers(2))
	assert.Equal(t, 2, ex.Workers())

	var nilExecutor *Executor
	assert.Equal(t, 2, nilExecutor.Workers())
	assert.Equal(t, 5, nilExecutor.Threshold())

	require.Error(t, SetDefaultWorkers(0))
	require.Error(t, SetDefaultThreshold(-1))
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig("workers=8, threshold=100")
	require.NoError(t, err)
	assert.Equal(t, Config{Workers: 8, Threshold: 100}, cfg)

	cfg, err = ParseConfig("threshold=0")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Threshold)
	assert.Equal(t, DefaultConfig().Workers, cfg.Workers)

	for _, bad := range []string{"workers", "workers=x", "workers=0", "threshold=-2", "foo=1"} {
		_, err = ParseConfig(bad)
		assert.Error(t, err, "config %q should fail", bad)
	}
}

func runners() map[string]Runner {
	return map[string]Runner{
		"pool":      PoolRunner{},
		"smallPool": PoolRunner{Pool: workerspool.NewWithParallelism(1)},
		"group":     GroupRunner{Limit: 2},
	}
}

func TestFor(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			ex := New(WithWorkers(4), WithThreshold(0), WithRunner(runner))
			const n = 1001
			visits := make([]int32, n)
			var calls atomic.Int32
			require.NoError(t, ex.For(n, func(start, end int) {
				calls.Add(1)
				for i := start; i < end; i++ {
					visits[i]++
				}
			}))
			assert.Equal(t, int32(4), calls.Load())
			for i, v := range visits {
				require.Equal(t, int32(1), v, "index %d visited %d times", i, v)
			}
		})
	}
}

func TestReduceOrder(t *testing.T) {
	// String concatenation is not commutative: the combination must follow partition order.
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			ex := New(WithWorkers(5), WithThreshold(0), WithRunner(runner))
			got, err := Reduce(ex, 10, func(start, end int) string {
				return fmt.Sprintf("[%d,%d)", start, end)
			}, func(a, b string) string { return a + b })
			require.NoError(t, err)
			assert.Equal(t, "[0,2)[2,4)[4,6)[6,8)[8,10)", got)
		})
	}
}

func TestFailurePropagation(t *testing.T) {
	ex := New(WithWorkers(4), WithThreshold(0))
	boom := errors.New("boom")
	sum, err := Reduce(ex, 100, func(start, end int) int {
		if start >= 50 {
			panic(boom)
		}
		return end - start
	}, func(a, b int) int { return a + b })
	require.Error(t, err)
	assert.Equal(t, 0, sum, "no partial result on failure")
	assert.True(t, errors.Is(err, ErrTaskFailed))
	assert.True(t, errors.Is(err, boom))
	var taskErr *TaskError
	require.True(t, errors.As(err, &taskErr))
	assert.Equal(t, 2, taskErr.Partition, "lowest failing partition is reported")
	assert.Equal(t, 50, taskErr.Start)

	// Sequential execution reports failures the same way.
	err = Sequential().For(10, func(start, end int) { panic("sequential failure") })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTaskFailed))
	assert.Contains(t, err.Error(), "sequential failure")

	// Failures in the combining function too.
	_, err = Reduce(ex, 100, func(start, end int) int { return 1 },
		func(a, b int) int { panic("bad combine") })
	assert.True(t, errors.Is(err, ErrTaskFailed))
}
