// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import (
	"slices"

	"github.com/gomlx/vector1d/pkg/support/xslices"
	"github.com/pkg/errors"
)

// view returns a shallow copy of v marked as a view, to be changed by the caller.
func (v *Vector) view() *Vector {
	v2 := *v
	v2.isView = true
	return &v2
}

// ViewFlip returns a view with the cells in reverse order: cell i of the view is cell Size()-1-i.
func (v *Vector) ViewFlip() *Vector {
	flipped := v.view()
	if v.size == 0 {
		return flipped
	}
	if v.indices != nil {
		flipped.indices = slices.Clone(v.indices)
		slices.Reverse(flipped.indices)
		return flipped
	}
	flipped.offset = v.physical(v.size - 1)
	flipped.stride = -v.stride
	return flipped
}

// ViewPart returns a view of the length cells starting at offset.
// It fails with ErrRange if offset < 0, length < 0 or offset+length > Size().
func (v *Vector) ViewPart(offset, length int) (*Vector, error) {
	if offset < 0 || length < 0 || offset > v.size-length {
		return nil, errors.Wrapf(ErrRange, "ViewPart(offset=%d, length=%d) of vector of size %d", offset, length, v.size)
	}
	part := v.view()
	part.size = length
	if v.indices != nil {
		part.indices = v.indices[offset : offset+length : offset+length]
		return part, nil
	}
	part.offset = v.offset + v.stride*offset
	return part, nil
}

// ViewStrides returns a view of every stride-th cell: cells 0, stride, 2*stride, ...
// It fails with ErrRange if stride <= 0.
func (v *Vector) ViewStrides(stride int) (*Vector, error) {
	if stride <= 0 {
		return nil, errors.Wrapf(ErrRange, "ViewStrides(%d): stride must be positive", stride)
	}
	strided := v.view()
	strided.size = (v.size + stride - 1) / stride
	if v.indices != nil {
		strided.indices = make([]int, strided.size)
		for i := range strided.indices {
			strided.indices[i] = v.indices[i*stride]
		}
		return strided, nil
	}
	strided.stride = v.stride * stride
	return strided, nil
}

// ViewSelection returns a view of the cells at the given indices, in the given order. Indices may
// be repeated. If indices is nil, all cells are selected.
// It fails with ErrIndex if any index is outside [0, Size()).
func (v *Vector) ViewSelection(indices []int) (*Vector, error) {
	if indices == nil {
		indices = xslices.Iota(0, v.size)
	}
	physical := make([]int, len(indices))
	for j, i := range indices {
		if i < 0 || i >= v.size {
			return nil, errors.Wrapf(ErrIndex, "ViewSelection: index #%d is %d, vector size is %d", j, i, v.size)
		}
		physical[j] = v.physical(i)
	}
	selection := v.view()
	selection.size = len(indices)
	selection.indices = physical
	selection.offset, selection.stride = 0, 1
	return selection, nil
}

// ViewSelectionFunc returns a view of the cells whose values satisfy condition, in ascending index
// order. It is equivalent to ViewSelection with the list of matching indices.
func (v *Vector) ViewSelectionFunc(condition Predicate) (*Vector, error) {
	matches, err := v.matchingIndices(condition)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []int{}
	}
	return v.ViewSelection(matches)
}

// ViewSorted returns a view of the cells sorted in ascending order, using DefaultSorter.
// The sort is stable, so equal values keep their relative order.
func (v *Vector) ViewSorted() (*Vector, error) {
	indices, err := DefaultSorter.SortedIndices(v)
	if err != nil {
		return nil, errors.WithMessage(err, "ViewSorted")
	}
	return v.ViewSelection(indices)
}
