// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/gomlx/vector1d/pkg/core/parallel"
	"github.com/gomlx/vector1d/pkg/core/vector"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// check is one operation to compare. It must not modify x or y, and returns a printable result.
type check struct {
	name string
	run  func(x, y *vector.Vector) (string, error)
}

// checkResult is the outcome of a check over one pair of vectors.
type checkResult struct {
	storage, name        string
	size                 int
	sequential, parallel string
	match                bool
	err                  error

	sequentialTime, parallelTime time.Duration
}

var checks = []check{
	{"Sum", func(x, _ *vector.Vector) (string, error) {
		sum, err := x.Sum()
		return fmt.Sprint(sum), err
	}},
	{"Aggregate(Plus, Square)", func(x, _ *vector.Vector) (string, error) {
		sum, err := x.Aggregate(vector.Plus, vector.Square)
		return fmt.Sprint(sum), err
	}},
	{"DotProduct", func(x, y *vector.Vector) (string, error) {
		dot, err := x.DotProduct(y)
		return fmt.Sprint(dot), err
	}},
	{"Cardinality", func(x, _ *vector.Vector) (string, error) {
		count, err := x.Cardinality()
		return fmt.Sprint(count), err
	}},
	{"MaxLocation", func(x, _ *vector.Vector) (string, error) {
		value, index, err := x.MaxLocation()
		return fmt.Sprintf("%g@%d", value, index), err
	}},
	{"MinLocation", func(x, _ *vector.Vector) (string, error) {
		value, index, err := x.MinLocation()
		return fmt.Sprintf("%g@%d", value, index), err
	}},
	{"AssignWithIndices(PlusMult)", func(x, y *vector.Vector) (string, error) {
		indices, _ := y.NonZeros()
		result, err := x.Copy()
		if err != nil {
			return "", err
		}
		if err = result.AssignWithIndices(y, vector.PlusMult(-2), indices); err != nil {
			return "", err
		}
		return checksum(result)
	}},
	{"Normalize", func(x, _ *vector.Vector) (string, error) {
		result, err := x.Copy()
		if err != nil {
			return "", err
		}
		if err = result.Normalize(); err != nil {
			return "", err
		}
		return checksum(result)
	}},
}

// checksum summarizes the contents of v: its sum and the positions of its non-zero cells.
func checksum(v *vector.Vector) (string, error) {
	sum, err := v.WithExecutor(parallel.Sequential()).Sum()
	if err != nil {
		return "", err
	}
	indices, _ := v.NonZeros()
	return fmt.Sprintf("sum=%g nonzeros=%d", sum, len(indices)), nil
}

// timed runs fn *flagRounds times and returns the last result and the fastest time.
func timed(fn func() (string, error)) (result string, best time.Duration, err error) {
	for round := range max(*flagRounds, 1) {
		start := time.Now()
		result, err = fn()
		elapsed := time.Since(start)
		if err != nil {
			return "", 0, err
		}
		if round == 0 || elapsed < best {
			best = elapsed
		}
	}
	return
}

func runCheck(c check, storage string, x, y *vector.Vector, exec *parallel.Executor) checkResult {
	r := checkResult{storage: storage, name: c.name, size: x.Size()}
	seqX, seqY := x.WithExecutor(parallel.Sequential()), y.WithExecutor(parallel.Sequential())
	parX, parY := x.WithExecutor(exec), y.WithExecutor(exec)
	r.sequential, r.sequentialTime, r.err = timed(func() (string, error) { return c.run(seqX, seqY) })
	if r.err != nil {
		r.err = errors.WithMessage(r.err, "sequential")
		return r
	}
	r.parallel, r.parallelTime, r.err = timed(func() (string, error) { return c.run(parX, parY) })
	if r.err != nil {
		r.err = errors.WithMessage(r.err, "parallel")
		return r
	}
	r.match = r.sequential == r.parallel
	return r
}

// sortedStorages returns the storage families in a stable order.
func sortedStorages() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
