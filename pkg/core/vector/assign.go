// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import (
	"github.com/gomlx/vector1d/pkg/core/cells"
	"github.com/gomlx/vector1d/pkg/support/xslices"
	"github.com/pkg/errors"
)

// forEach runs body over all cells, split in partitions by the executor.
func (v *Vector) forEach(body func(start, end int)) error {
	return v.exec.For(v.size, body)
}

// AssignValue sets every cell to value.
func (v *Vector) AssignValue(value float64) error {
	err := v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			v.SetFast(i, value)
		}
	})
	return errors.WithMessage(err, "AssignValue")
}

// AssignValues copies values into the cells. It fails with ErrSizeMismatch if len(values) != Size().
func (v *Vector) AssignValues(values []float64) error {
	if err := cells.CheckSizes(v.size, len(values)); err != nil {
		return errors.WithMessage(err, "AssignValues")
	}
	err := v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			v.SetFast(i, values[i])
		}
	})
	return errors.WithMessage(err, "AssignValues")
}

// AssignFunc sets every cell to f(x[i]).
func (v *Vector) AssignFunc(f UnaryFunc) error {
	err := v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			v.SetFast(i, f(v.GetFast(i)))
		}
	})
	return errors.WithMessage(err, "AssignFunc")
}

// AssignIf sets x[i] = f(x[i]) for the cells where condition(x[i]) holds.
func (v *Vector) AssignIf(condition Predicate, f UnaryFunc) error {
	err := v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			x := v.GetFast(i)
			if condition(x) {
				v.SetFast(i, f(x))
			}
		}
	})
	return errors.WithMessage(err, "AssignIf")
}

// AssignValueIf sets x[i] = value for the cells where condition(x[i]) holds.
func (v *Vector) AssignValueIf(condition Predicate, value float64) error {
	err := v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			if condition(v.GetFast(i)) {
				v.SetFast(i, value)
			}
		}
	})
	return errors.WithMessage(err, "AssignValueIf")
}

// Assign copies the cells of other into v. It fails with ErrSizeMismatch if the sizes differ.
//
// It is safe for v and other to share cells (e.g. v.Assign(v.ViewFlip())): in that case other is
// first copied to independent storage.
func (v *Vector) Assign(other *Vector) error {
	if err := cells.CheckSizes(v.size, other.size); err != nil {
		return errors.WithMessage(err, "Assign")
	}
	if v.sameAddressing(other) {
		return nil
	}
	source, err := v.independentSource(other)
	if err != nil {
		return errors.WithMessage(err, "Assign")
	}
	err = v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			v.SetFast(i, source.GetFast(i))
		}
	})
	return errors.WithMessage(err, "Assign")
}

// independentSource returns other, or a deep copy of it if it shares cells with v with a different
// addressing, in which case reading other while writing v would interfere.
func (v *Vector) independentSource(other *Vector) (*Vector, error) {
	if v.sameAddressing(other) || !v.HaveSharedCells(other) {
		return other, nil
	}
	return other.WithExecutor(v.exec).Copy()
}

// AssignWith sets x[i] = fn(x[i], y[i]). It fails with ErrSizeMismatch if the sizes differ.
//
// If y shares cells with v through a different addressing, y is copied first, so every fn call sees
// the original values of y.
func (v *Vector) AssignWith(y *Vector, fn BinaryFunc) error {
	if err := cells.CheckSizes(v.size, y.size); err != nil {
		return errors.WithMessage(err, "AssignWith")
	}
	source, err := v.independentSource(y)
	if err != nil {
		return errors.WithMessage(err, "AssignWith")
	}
	err = v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			v.SetFast(i, fn(v.GetFast(i), source.GetFast(i)))
		}
	})
	return errors.WithMessage(err, "AssignWith")
}

// AssignWithIndices sets x[i] = fn(x[i], y[i]), where nonZeroIndices lists the positions where y
// may be non-zero; every other position of y is taken to be zero, without checking.
//
// Fast paths, visiting only the listed positions:
//
//   - MultCombiner: x[i] = x[i]*y[i] on the listed positions, and x[i] = 0 on all others.
//   - PlusMultCombiner{c}: x[i] = x[i] + c*y[i] on the listed positions (nothing to do for c == 0),
//     with dedicated loops for c == 1 and c == -1. Other positions are unchanged, since x+c*0 == x.
//
// Any other Combiner is applied to every cell, as in AssignWith.
//
// The list may be unsorted and have repetitions. It fails with ErrSizeMismatch if the sizes differ
// and ErrIndex if a listed position is out of range.
func (v *Vector) AssignWithIndices(y *Vector, fn Combiner, nonZeroIndices []int) error {
	if err := cells.CheckSizes(v.size, y.size); err != nil {
		return errors.WithMessage(err, "AssignWithIndices")
	}
	var indices []int
	switch fn.(type) {
	case MultCombiner, PlusMultCombiner:
		indices = xslices.SortedUnique(nonZeroIndices)
		for _, i := range indices {
			if err := cells.CheckIndex(i, v.size); err != nil {
				return errors.WithMessage(err, "AssignWithIndices")
			}
		}
	default:
		return v.AssignWith(y, fn.Combine)
	}
	source, err := v.independentSource(y)
	if err != nil {
		return errors.WithMessage(err, "AssignWithIndices")
	}

	switch c := fn.(type) {
	case MultCombiner:
		// Walks all cells: listed ones are multiplied, the gaps zero-filled.
		err = v.forEach(func(start, end int) {
			next := lowerBound(indices, start)
			for i := start; i < end; i++ {
				if next < len(indices) && indices[next] == i {
					v.SetFast(i, v.GetFast(i)*source.GetFast(i))
					next++
				} else {
					v.SetFast(i, 0)
				}
			}
		})
	case PlusMultCombiner:
		var update func(x, y float64) float64
		switch c.Multiplicator {
		case 0:
			return nil
		case 1:
			update = func(x, y float64) float64 { return x + y }
		case -1:
			update = func(x, y float64) float64 { return x - y }
		default:
			update = c.Combine
		}
		err = v.exec.For(len(indices), func(start, end int) {
			for _, i := range indices[start:end] {
				v.SetFast(i, update(v.GetFast(i), source.GetFast(i)))
			}
		})
	}
	return errors.WithMessage(err, "AssignWithIndices")
}

// lowerBound returns the position of the first element of the sorted slice that is >= value.
func lowerBound(sorted []int, value int) int {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if sorted[mid] < value {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Swap exchanges the cells of v and other. It fails with ErrSizeMismatch if the sizes differ.
//
// v and other must not share cells, unless they have the same addressing (in which case Swap does
// nothing): the result of swapping overlapping vectors is undefined.
func (v *Vector) Swap(other *Vector) error {
	if err := cells.CheckSizes(v.size, other.size); err != nil {
		return errors.WithMessage(err, "Swap")
	}
	if v.sameAddressing(other) {
		return nil
	}
	err := v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			tmp := v.GetFast(i)
			v.SetFast(i, other.GetFast(i))
			other.SetFast(i, tmp)
		}
	})
	return errors.WithMessage(err, "Swap")
}

// Copy returns a deep copy of v: a new vector of the same storage family (see Like) with the same
// values, that shares no cells with v.
func (v *Vector) Copy() (*Vector, error) {
	c, err := v.Like()
	if err != nil {
		return nil, err
	}
	if err = c.Assign(v); err != nil {
		return nil, err
	}
	return c, nil
}

// ToArray returns the values of the cells in a new slice.
func (v *Vector) ToArray() ([]float64, error) {
	values := make([]float64, v.size)
	if err := v.ToArrayInto(values); err != nil {
		return nil, err
	}
	return values, nil
}

// ToArrayInto copies the values of the cells to the first Size() elements of values.
// It fails with ErrRange if values is too short.
func (v *Vector) ToArrayInto(values []float64) error {
	if len(values) < v.size {
		return errors.Wrapf(ErrRange, "ToArrayInto: destination of length %d for vector of size %d", len(values), v.size)
	}
	err := v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			values[i] = v.GetFast(i)
		}
	})
	return errors.WithMessage(err, "ToArrayInto")
}
