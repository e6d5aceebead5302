// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import (
	"math"

	"github.com/gomlx/vector1d/pkg/core/cells"
	"github.com/gomlx/vector1d/pkg/core/parallel"
	"github.com/pkg/errors"
)

// Cardinality returns the number of cells whose value is not exactly zero (NaN counts as non-zero).
func (v *Vector) Cardinality() (int, error) {
	count, err := parallel.Reduce(v.exec, v.size, func(start, end int) int {
		count := 0
		for i := start; i < end; i++ {
			if v.GetFast(i) != 0 {
				count++
			}
		}
		return count
	}, func(a, b int) int { return a + b })
	return count, errors.WithMessage(err, "Cardinality")
}

// location is the partial result of MinLocation and MaxLocation.
type location struct {
	value float64
	index int
}

// MaxLocation returns the maximum value and the smallest index where it occurs.
// For an empty vector it returns (NaN, -1).
func (v *Vector) MaxLocation() (value float64, index int, err error) {
	return v.extremeLocation(func(best, candidate float64) bool { return best < candidate })
}

// MinLocation returns the minimum value and the smallest index where it occurs.
// For an empty vector it returns (NaN, -1).
func (v *Vector) MinLocation() (value float64, index int, err error) {
	return v.extremeLocation(func(best, candidate float64) bool { return best > candidate })
}

// extremeLocation scans for the cell that no other beats. Only strictly better candidates replace
// the current best, and partials are combined in partition order, so ties resolve to the first index.
func (v *Vector) extremeLocation(better func(best, candidate float64) bool) (float64, int, error) {
	if v.size == 0 {
		return math.NaN(), -1, nil
	}
	best, err := parallel.Reduce(v.exec, v.size, func(start, end int) location {
		loc := location{value: v.GetFast(start), index: start}
		for i := start + 1; i < end; i++ {
			if x := v.GetFast(i); better(loc.value, x) {
				loc = location{value: x, index: i}
			}
		}
		return loc
	}, func(a, b location) location {
		if better(a.value, b.value) {
			return b
		}
		return a
	})
	if err != nil {
		return math.NaN(), -1, errors.WithMessage(err, "extreme location")
	}
	return best.value, best.index, nil
}

// Normalize makes the cells a discrete distribution: if the minimum is negative, every cell is
// first shifted by -minimum. Then, if the maximum is 0 (all cells are 0) every cell is set to
// 1/Size(), otherwise every cell is divided by the sum.
func (v *Vector) Normalize() error {
	if v.size == 0 {
		return nil
	}
	minValue, _, err := v.MinLocation()
	if err != nil {
		return errors.WithMessage(err, "Normalize")
	}
	if minValue < 0 {
		if err = v.AssignFunc(Shift(-minValue)); err != nil {
			return errors.WithMessage(err, "Normalize")
		}
	}
	maxValue, _, err := v.MaxLocation()
	if err != nil {
		return errors.WithMessage(err, "Normalize")
	}
	if maxValue == 0 {
		return errors.WithMessage(v.AssignValue(1.0/float64(v.size)), "Normalize")
	}
	sum, err := v.Sum()
	if err != nil {
		return errors.WithMessage(err, "Normalize")
	}
	return errors.WithMessage(v.AssignFunc(Scale(1.0/sum)), "Normalize")
}

// NonZeros returns the indices and values of the non-zero cells, in ascending index order.
// It always holds that values[k] == v.Get(indices[k]).
func (v *Vector) NonZeros() (indices []int, values []float64) {
	return v.extract(IsNonZero, -1)
}

// NonZerosUpTo is like NonZeros, but stops after finding maxCount non-zero cells.
func (v *Vector) NonZerosUpTo(maxCount int) (indices []int, values []float64) {
	if maxCount <= 0 {
		return []int{}, []float64{}
	}
	return v.extract(IsNonZero, maxCount)
}

// PositiveValues returns the indices and values of the cells > 0, in ascending index order.
func (v *Vector) PositiveValues() (indices []int, values []float64) {
	return v.extract(IsPositive, -1)
}

// NegativeValues returns the indices and values of the cells < 0, in ascending index order.
func (v *Vector) NegativeValues() (indices []int, values []float64) {
	return v.extract(IsNegative, -1)
}

// extract scans the cells in ascending order collecting those satisfying keep, a predicate that
// must be false for 0. If maxCount > 0, it stops after maxCount matches.
//
// A vector addressing a whole cells.NonZeroIndexer store in order only visits the stored cells.
func (v *Vector) extract(keep Predicate, maxCount int) (indices []int, values []float64) {
	indices, values = []int{}, []float64{}
	add := func(i int, x float64) bool {
		if keep(x) {
			indices = append(indices, i)
			values = append(values, x)
		}
		return maxCount <= 0 || len(indices) < maxCount
	}
	if indexer, ok := v.store.(cells.NonZeroIndexer); ok && v.coversStoreInOrder() {
		for _, i := range indexer.NonZeroIndices() {
			if !add(i, v.store.At(i)) {
				break
			}
		}
		return
	}
	for i := range v.size {
		if !add(i, v.GetFast(i)) {
			break
		}
	}
	return
}

// coversStoreInOrder returns whether logical index i is physical index i for every cell of the store.
func (v *Vector) coversStoreInOrder() bool {
	return v.indices == nil && v.offset == 0 && (v.stride == 1 || v.size <= 1) && v.size == v.store.Len()
}

// matchingIndices returns the indices of the cells satisfying condition, in ascending order.
func (v *Vector) matchingIndices(condition Predicate) ([]int, error) {
	matches, err := parallel.Reduce(v.exec, v.size, func(start, end int) []int {
		var matches []int
		for i := start; i < end; i++ {
			if condition(v.GetFast(i)) {
				matches = append(matches, i)
			}
		}
		return matches
	}, func(a, b []int) []int { return append(a, b...) })
	return matches, errors.WithMessage(err, "selecting cells")
}
