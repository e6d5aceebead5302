// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import (
	"math"

	"github.com/gomlx/vector1d/pkg/support/xslices"
	"golang.org/x/exp/slices"
)

// Sorter orders the cells of a vector.
type Sorter interface {
	// SortedIndices returns the indices of v's cells ordered by ascending value.
	SortedIndices(v *Vector) ([]int, error)
}

// DefaultSorter is used by Vector.ViewSorted.
var DefaultSorter Sorter = StableSorter{}

// StableSorter is a stable merge sort in natural float64 order, with NaN values placed last.
type StableSorter struct{}

// SortedIndices implements Sorter.
func (StableSorter) SortedIndices(v *Vector) ([]int, error) {
	values, err := v.ToArray()
	if err != nil {
		return nil, err
	}
	indices := xslices.Iota(0, v.size)
	slices.SortStableFunc(indices, func(a, b int) int {
		return compareNaNLast(values[a], values[b])
	})
	return indices, nil
}

func compareNaNLast(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	}
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	default:
		return -1
	}
}
