// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package cells defines the physical storage of vectors and matrices: a Store is a flat, zero-based
// array of float64 cells, and this package provides the concrete representations (Dense, Float16Dense
// and Sparse) together with the error taxonomy used across the module.
//
// Stores know nothing about views: logical addressing (offsets, strides, index maps) is the job
// of the vector package. A Store only has to provide unchecked cell access and a factory for new
// stores of the same family.
package cells

import "github.com/pkg/errors"

// Store is the physical backing of a vector or matrix.
//
// At and SetAt are unchecked: calling them with an index outside [0, Len()) has undefined behavior
// (it may panic). Callers validate indices before reaching the store.
//
// Concurrent calls to SetAt on distinct indices must be safe, since parallel bulk operations write
// disjoint partitions of the same store at the same time.
type Store interface {
	// Len returns the number of physical cells.
	Len() int

	// At returns the value of cell i.
	At(i int) float64

	// SetAt sets the value of cell i.
	SetAt(i int, value float64)

	// Like returns a new zero-filled store with n cells, of the same family as the receiver.
	// So a sparse store creates a sparse store, a float16 store a float16 store, etc.
	Like(n int) (Store, error)
}

// Resizable is implemented by stores that can change their number of cells.
// Growing zero-fills the new cells, shrinking discards the tail.
type Resizable interface {
	Store
	Resize(n int) error
}

// NonZeroIndexer is implemented by stores that track which cells are non-zero, and can list them
// without scanning every cell.
type NonZeroIndexer interface {
	Store

	// NonZeroIndices returns the indices of the non-zero cells, in ascending order.
	NonZeroIndices() []int
}

// checkAllocation validates a requested number of cells.
func checkAllocation(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrAllocation, "negative number of cells %d", n)
	}
	return nil
}
