// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package xslices provide small slice helpers missing from the standard slices package.
package xslices

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Copy creates a new (shallow) copy of slice. A short cut to a call to `make` and then `copy`.
func Copy[T any](slice []T) []T {
	if len(slice) == 0 {
		return nil
	}
	slice2 := make([]T, len(slice))
	copy(slice2, slice)
	return slice2
}

// Iota returns a slice of incremental values, starting with start and of length len.
// Eg: Iota(3.0, 2) -> []float64{3.0, 4.0}
func Iota[T constraints.Integer | constraints.Float](start T, len int) (slice []T) {
	slice = make([]T, len)
	for ii := range slice {
		slice[ii] = start + T(ii)
	}
	return
}

// SortedUnique returns a sorted copy of slice without repeated values. The input is not modified.
func SortedUnique[T constraints.Ordered](slice []T) []T {
	sorted := Copy(slice)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// IsSortedUnique returns whether slice is strictly increasing.
func IsSortedUnique[T constraints.Ordered](slice []T) bool {
	for ii := 1; ii < len(slice); ii++ {
		if !(slice[ii-1] < slice[ii]) {
			return false
		}
	}
	return true
}
