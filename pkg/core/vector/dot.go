// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import (
	"github.com/gomlx/vector1d/pkg/core/parallel"
	"github.com/gomlx/vector1d/pkg/support/xslices"
	"github.com/pkg/errors"
)

// DotProduct returns the sum of x[i]*y[i] over the indices valid for both vectors.
func (v *Vector) DotProduct(y *Vector) (float64, error) {
	return v.DotProductRange(y, 0, v.size)
}

// dotTail clips [from, from+length) to the sizes of both vectors, and returns the end of the
// clipped range, or -1 if it is empty.
func (v *Vector) dotTail(y *Vector, from, length int) int {
	if from < 0 || length <= 0 {
		return -1
	}
	tail := min(v.size, y.size)
	if length < tail-from {
		tail = from + length
	}
	if tail <= from {
		return -1
	}
	return tail
}

// DotProductRange returns the sum of x[i]*y[i] for i in [from, from+length), clipped to the sizes
// of both vectors. It returns 0 if from < 0, length <= 0 or the clipped range is empty.
func (v *Vector) DotProductRange(y *Vector, from, length int) (float64, error) {
	tail := v.dotTail(y, from, length)
	if tail < 0 {
		return 0, nil
	}
	sum, err := parallel.Reduce(v.exec, tail-from, func(start, end int) float64 {
		var sum float64
		for i := from + start; i < from+end; i++ {
			sum += v.GetFast(i) * y.GetFast(i)
		}
		return sum
	}, Plus)
	return sum, errors.WithMessage(err, "DotProductRange")
}

// DotProductIndices is the sparse version of DotProductRange: only the indices in nonZeroIndices
// are visited, all others are taken to contribute zero (without checking).
//
// The list may be unsorted and have repetitions: it is sorted and deduplicated (on a copy) before
// use, and indices outside the clipped range are ignored.
func (v *Vector) DotProductIndices(y *Vector, from, length int, nonZeroIndices []int) (float64, error) {
	tail := v.dotTail(y, from, length)
	if tail < 0 {
		return 0, nil
	}
	indices := xslices.SortedUnique(nonZeroIndices)
	first, last := lowerBound(indices, from), lowerBound(indices, tail)
	indices = indices[first:last]
	if len(indices) == 0 {
		return 0, nil
	}
	sum, err := parallel.Reduce(v.exec, len(indices), func(start, end int) float64 {
		var sum float64
		for _, i := range indices[start:end] {
			sum += v.GetFast(i) * y.GetFast(i)
		}
		return sum
	}, Plus)
	return sum, errors.WithMessage(err, "DotProductIndices")
}
