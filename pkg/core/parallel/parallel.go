// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package parallel implements the execution engine shared by every bulk vector operation.
//
// An Executor decides whether an operation over n cells runs sequentially or is split in
// partitions: contiguous, disjoint, gap-free ranges of near-equal length, one task each. Mutating
// operations use Executor.For, which simply joins the tasks. Reductions use Reduce, which combines
// the partial result of each partition left-to-right, in partition order, so results are
// reproducible for a given number of workers.
//
// Failures (panics) inside a partition are never swallowed: they abort the whole operation, which
// returns an error wrapping ErrTaskFailed.
package parallel

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrTaskFailed is matched (with errors.Is) by the errors returned when a partition of a bulk
// operation fails.
var ErrTaskFailed = errors.New("parallel task failed")

// TaskError describes the failure of one partition of a bulk operation.
type TaskError struct {
	// Partition is the index of the failed partition, and [Start, End) its range.
	Partition, Start, End int

	// Cause is the value recovered from the panic.
	Cause any
}

// Error implements error.
func (e *TaskError) Error() string {
	return fmt.Sprintf("partition %d [%d, %d) failed: %v", e.Partition, e.Start, e.End, e.Cause)
}

// Is makes errors.Is(err, ErrTaskFailed) true.
func (e *TaskError) Is(target error) bool { return target == ErrTaskFailed }

// Unwrap returns the cause, if it was an error.
func (e *TaskError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// Range is a half-open interval of indices [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.End - r.Start }

// Partition splits [0, n) into p contiguous ranges: each has n/p elements, and the last one also
// takes the remainder. p is capped to n, so no range is ever empty (except for n == 0, which
// returns a single empty range).
func Partition(n, p int) []Range {
	if n <= 0 {
		return []Range{{0, 0}}
	}
	p = max(1, min(p, n))
	k := n / p
	ranges := make([]Range, p)
	for j := range ranges {
		ranges[j].Start = j * k
		if j == p-1 {
			ranges[j].End = n
		} else {
			ranges[j].End = ranges[j].Start + k
		}
	}
	return ranges
}

// Executor is the execution context of bulk operations: the number of workers, the minimum size to
// parallelize and the Runner to submit tasks to.
//
// Settings not explicitly given are read from the process-wide DefaultConfig on every call.
// A nil *Executor is valid and behaves as Default().
type Executor struct {
	workers   int // 0 means DefaultConfig().Workers.
	threshold int // < 0 means DefaultConfig().Threshold.
	runner    Runner
}

// Option configures an Executor.
type Option func(ex *Executor)

// WithWorkers fixes the number of workers (partitions). Values <= 0 fall back to the process-wide
// setting, 1 forces sequential execution.
func WithWorkers(workers int) Option {
	return func(ex *Executor) {
		ex.workers = max(workers, 0)
	}
}

// WithThreshold fixes the minimum size to parallelize. Negative values fall back to the
// process-wide setting.
func WithThreshold(threshold int) Option {
	return func(ex *Executor) {
		ex.threshold = threshold
	}
}

// WithRunner sets the Runner used to execute the partitions. The default is a PoolRunner on the
// shared pool.
func WithRunner(runner Runner) Option {
	return func(ex *Executor) {
		ex.runner = runner
	}
}

// New creates an Executor with the given options.
func New(options ...Option) *Executor {
	ex := &Executor{threshold: -1}
	for _, opt := range options {
		opt(ex)
	}
	return ex
}

var defaultExecutor = New()

// Default returns the Executor that follows the process-wide configuration.
func Default() *Executor {
	return defaultExecutor
}

// Sequential returns an Executor that never parallelizes.
func Sequential() *Executor {
	return New(WithWorkers(1))
}

// Workers returns the number of workers used for large operations.
func (ex *Executor) Workers() int {
	if ex == nil || ex.workers == 0 {
		return DefaultConfig().Workers
	}
	return ex.workers
}

// Threshold returns the minimum size for an operation to be parallelized.
func (ex *Executor) Threshold() int {
	if ex == nil || ex.threshold < 0 {
		return DefaultConfig().Threshold
	}
	return ex.threshold
}

func (ex *Executor) getRunner() Runner {
	if ex == nil || ex.runner == nil {
		return PoolRunner{}
	}
	return ex.runner
}

// NumPartitions returns the number of partitions an operation over n cells is split into.
func (ex *Executor) NumPartitions(n int) int {
	workers := ex.Workers()
	if workers <= 1 || n < ex.Threshold() || n <= 1 {
		return 1
	}
	return min(workers, n)
}

// Partitions returns the ranges an operation over n cells is split into.
func (ex *Executor) Partitions(n int) []Range {
	return Partition(n, ex.NumPartitions(n))
}

// run executes body for every range, and returns the failure of the lowest failing partition, if any.
func (ex *Executor) run(ranges []Range, body func(partition int, r Range)) error {
	failures := make([]any, len(ranges))
	task := func(partition int) func() {
		return func() {
			r := ranges[partition]
			failures[partition] = exceptions.Try(func() { body(partition, r) })
		}
	}
	if len(ranges) == 1 {
		task(0)()
	} else {
		if klog.V(2).Enabled() {
			klog.Infof("parallel: splitting %s cells in %d partitions of ~%s cells",
				humanize.Comma(int64(ranges[len(ranges)-1].End)), len(ranges), humanize.Comma(int64(ranges[0].Len())))
		}
		tasks := make([]func(), len(ranges))
		for partition := range ranges {
			tasks[partition] = task(partition)
		}
		ex.getRunner().Run(tasks)
	}
	for partition, failure := range failures {
		if failure != nil {
			r := ranges[partition]
			err := &TaskError{Partition: partition, Start: r.Start, End: r.End, Cause: failure}
			klog.Warningf("parallel: bulk operation over %d partitions aborted: %v", len(ranges), err)
			return err
		}
	}
	return nil
}

// For runs body over [0, n), split in partitions as decided by the executor, and waits for all of
// them to finish. Each call of body receives a disjoint range [start, end).
//
// If any call of body panics, For returns a *TaskError (matching ErrTaskFailed).
func (ex *Executor) For(n int, body func(start, end int)) error {
	return ex.run(ex.Partitions(n), func(_ int, r Range) {
		body(r.Start, r.End)
	})
}

// Reduce runs body over [0, n), split in partitions as decided by the executor, and combines the
// partial results in partition order: combine(combine(r0, r1), r2)...
//
// If any call of body panics, Reduce returns the zero value of T and a *TaskError (matching
// ErrTaskFailed): partial results are never returned.
func Reduce[T any](ex *Executor, n int, body func(start, end int) T, combine func(a, b T) T) (T, error) {
	ranges := ex.Partitions(n)
	partials := make([]T, len(ranges))
	err := ex.run(ranges, func(partition int, r Range) {
		partials[partition] = body(r.Start, r.End)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	var result T
	failure := exceptions.Try(func() {
		result = partials[0]
		for _, partial := range partials[1:] {
			result = combine(result, partial)
		}
	})
	if failure != nil {
		var zero T
		return zero, errors.Wrapf(ErrTaskFailed, "combining %d partial results: %v", len(partials), failure)
	}
	return result, nil
}
