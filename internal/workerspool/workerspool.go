// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package workerspool implements a bounded pool of goroutines used to run the partitions of bulk
// vector operations.
//
// The pool never blocks a caller waiting for a free worker: tasks that can't be started on a new
// goroutine run inline on the caller's goroutine. This makes nested bulk operations (a partition
// that itself triggers a parallel operation) safe from deadlocks.
package workerspool

import (
	"runtime"
	"sync"
)

type Pool struct {
	// maxParallelism is the limit of goroutines started by the pool that can be running at once.
	maxParallelism int

	mu         sync.Mutex
	numRunning int
}

// New returns a new Pool of workers with the default parallelism (runtime.NumCPU()).
func New() *Pool {
	return NewWithParallelism(runtime.NumCPU())
}

// NewWithParallelism returns a new Pool with the given maxParallelism. See SetMaxParallelism.
func NewWithParallelism(maxParallelism int) *Pool {
	return &Pool{maxParallelism: maxParallelism}
}

var shared = sync.OnceValue(New)

// Shared returns the process-wide pool, created on first use.
func Shared() *Pool {
	return shared()
}

// IsEnabled returns whether parallelism is enabled (maxParallelism is != 0)
func (w *Pool) IsEnabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.maxParallelism != 0
}

// IsUnlimited returns whether parallelism is unlimited (maxParallelism < 0)
func (w *Pool) IsUnlimited() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.maxParallelism < 0
}

// MaxParallelism is the limit of goroutines the pool runs at once.
// If set to 0 parallelism is disabled.
// If set to -1 parallelism is unlimited.
func (w *Pool) MaxParallelism() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.maxParallelism
}

// SetMaxParallelism sets the maxParallelism. Tasks already running are not affected.
func (w *Pool) SetMaxParallelism(maxParallelism int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.maxParallelism = maxParallelism
}

// NumRunning returns the number of tasks currently running on goroutines of the pool.
func (w *Pool) NumRunning() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.numRunning
}

// lockedIsFull returns whether all available workers are in use.
//
// It must be called with Pool.mu acquired.
func (w *Pool) lockedIsFull() bool {
	if w.maxParallelism == 0 {
		return true
	} else if w.maxParallelism < 0 {
		return false
	}
	return w.numRunning >= w.maxParallelism
}

// StartIfAvailable runs the task in a separate goroutine, if there are workers left.
// It returns true if it found a worker to run the function, false otherwise.
//
// It's up to the client to synchronize the end of the function execution.
func (w *Pool) StartIfAvailable(task func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lockedIsFull() {
		return false
	}
	w.numRunning++
	go func() {
		defer w.release()
		task()
	}()
	return true
}

func (w *Pool) release() {
	w.mu.Lock()
	w.numRunning--
	w.mu.Unlock()
}

// RunAll executes all tasks and returns when they are all finished.
//
// The first task always runs on the caller's goroutine. Each of the others is started on a worker
// if one is available, or else run inline after the first one.
func (w *Pool) RunAll(tasks []func()) {
	if len(tasks) == 0 {
		return
	}
	var wg sync.WaitGroup
	var inline []func()
	for _, task := range tasks[1:] {
		wg.Add(1)
		if !w.StartIfAvailable(func() {
			defer wg.Done()
			task()
		}) {
			wg.Done()
			inline = append(inline, task)
		}
	}
	tasks[0]()
	for _, task := range inline {
		task()
	}
	wg.Wait()
}
