// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"github.com/gomlx/vector1d/internal/workerspool"
	"golang.org/x/sync/errgroup"
)

// Runner executes a batch of independent tasks, and returns only when all of them finished.
//
// Tasks given by the Executor never panic (failures are recovered and recorded before they reach
// the Runner), so a Runner doesn't need to handle failures.
type Runner interface {
	Run(tasks []func())
}

// PoolRunner runs tasks on a workerspool.Pool. If Pool is nil the process-wide shared pool is used.
//
// The caller's goroutine always takes part in the work, and tasks that find no free worker run
// inline, so nested bulk operations can't deadlock.
type PoolRunner struct {
	Pool *workerspool.Pool
}

// Run implements Runner.
func (r PoolRunner) Run(tasks []func()) {
	pool := r.Pool
	if pool == nil {
		pool = workerspool.Shared()
	}
	pool.RunAll(tasks)
}

// GroupRunner runs each task on its own goroutine using an errgroup.Group, with at most Limit
// goroutines running at once (Limit <= 0 means no limit).
//
// Unlike PoolRunner, a limited GroupRunner blocks while waiting for a free slot, so it should not
// be used for bulk operations nested inside other bulk operations.
type GroupRunner struct {
	Limit int
}

// Run implements Runner.
func (r GroupRunner) Run(tasks []func()) {
	var g errgroup.Group
	if r.Limit > 0 {
		g.SetLimit(r.Limit)
	}
	for _, task := range tasks {
		g.Go(func() error {
			task()
			return nil
		})
	}
	_ = g.Wait()
}
