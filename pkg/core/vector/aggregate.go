// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import (
	"math"

	"github.com/gomlx/vector1d/pkg/core/cells"
	"github.com/gomlx/vector1d/pkg/core/parallel"
	"github.com/pkg/errors"
)

// Aggregate applies f to each cell and folds the results with aggr, in index order:
// aggr(...aggr(aggr(f(x[0]), f(x[1])), f(x[2]))..., f(x[n-1])).
//
// For large vectors each partition is folded separately and the partial results are combined with
// aggr in partition order. It returns NaN for an empty vector.
//
// Example: for x = [0, 1, 2, 3], x.Aggregate(Plus, Square) == 14.
func (v *Vector) Aggregate(aggr BinaryFunc, f UnaryFunc) (float64, error) {
	if v.size == 0 {
		return math.NaN(), nil
	}
	result, err := parallel.Reduce(v.exec, v.size, func(start, end int) float64 {
		a := f(v.GetFast(start))
		for i := start + 1; i < end; i++ {
			a = aggr(a, f(v.GetFast(i)))
		}
		return a
	}, aggr)
	return result, errors.WithMessage(err, "Aggregate")
}

// AggregateWith applies f to each pair of corresponding cells of v and other, and folds the results
// with aggr, as Aggregate does.
//
// It fails with ErrSizeMismatch if the sizes differ, and returns NaN for empty vectors.
//
// Example: for x = y = [0, 1, 2, 3], x.AggregateWith(y, Plus, Mult) == 14.
func (v *Vector) AggregateWith(other *Vector, aggr BinaryFunc, f BinaryFunc) (float64, error) {
	if err := cells.CheckSizes(v.size, other.size); err != nil {
		return math.NaN(), errors.WithMessage(err, "AggregateWith")
	}
	if v.size == 0 {
		return math.NaN(), nil
	}
	result, err := parallel.Reduce(v.exec, v.size, func(start, end int) float64 {
		a := f(v.GetFast(start), other.GetFast(start))
		for i := start + 1; i < end; i++ {
			a = aggr(a, f(v.GetFast(i), other.GetFast(i)))
		}
		return a
	}, aggr)
	return result, errors.WithMessage(err, "AggregateWith")
}

// AggregateIndices is like Aggregate, but only visits the cells listed in indices, in the order
// given (the list is what gets partitioned for large inputs).
//
// It fails with ErrIndex if any index is out of range, and returns NaN if the vector or the list
// are empty.
func (v *Vector) AggregateIndices(aggr BinaryFunc, f UnaryFunc, indices []int) (float64, error) {
	if v.size == 0 || len(indices) == 0 {
		return math.NaN(), nil
	}
	for j, i := range indices {
		if err := cells.CheckIndex(i, v.size); err != nil {
			return math.NaN(), errors.WithMessagef(err, "AggregateIndices: position %d of the index list", j)
		}
	}
	result, err := parallel.Reduce(v.exec, len(indices), func(start, end int) float64 {
		a := f(v.GetFast(indices[start]))
		for j := start + 1; j < end; j++ {
			a = aggr(a, f(v.GetFast(indices[j])))
		}
		return a
	}, aggr)
	return result, errors.WithMessage(err, "AggregateIndices")
}

// Sum returns the sum of all cells, 0 for an empty vector.
func (v *Vector) Sum() (float64, error) {
	if v.size == 0 {
		return 0, nil
	}
	return v.Aggregate(Plus, Identity)
}
