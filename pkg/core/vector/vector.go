// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package vector implements Vector, a fixed-size, zero-based sequence of float64 cells, and the
// bulk operations over it: elementwise assignments, aggregations (reductions), dot products,
// extraction of non-zeros and extreme values, and views.
//
// A Vector is an addressing scheme over a cells.Store: the store holds the physical cells, and the
// vector maps each logical index i in [0, Size()) to one physical cell, either with an affine
// transform (offset + stride*i) or with an explicit index map. Views (ViewFlip, ViewPart,
// ViewStrides, ViewSelection, ...) are vectors over the same store with a derived addressing, so
// mutations through a view are visible through its source and vice versa. Use Copy to get an
// independent vector.
//
// Bulk operations are executed by a parallel.Executor: large vectors are split in contiguous
// partitions processed concurrently, and partial results are combined in partition order. By
// default the process-wide configuration is used (see package parallel), use WithExecutor to
// override it:
//
//	v, _ := vector.NewDense(1_000_000)
//	sum, err := v.WithExecutor(parallel.Sequential()).Sum()
//
// Concurrency: a Vector is not safe for concurrent mutation. It is a caller error to run two
// mutating operations at the same time over vectors that share cells.
package vector

import (
	"fmt"

	"github.com/gomlx/vector1d/pkg/core/cells"
	"github.com/gomlx/vector1d/pkg/core/matrix"
	"github.com/gomlx/vector1d/pkg/core/parallel"
	"github.com/pkg/errors"
)

// Errors re-exported from package cells, for convenience.
var (
	ErrIndex        = cells.ErrIndex
	ErrRange        = cells.ErrRange
	ErrSizeMismatch = cells.ErrSizeMismatch
	ErrAllocation   = cells.ErrAllocation
)

// Vector is a one-dimensional view of float64 cells over a cells.Store.
//
// The zero value is not valid, use one of the constructors (New, NewDense, NewSparse, NewFloat16,
// FromValues) or a view of an existing vector.
type Vector struct {
	store cells.Store
	size  int

	// Affine addressing, used when indices is nil: physical(i) = offset + stride*i.
	offset, stride int

	// indices is the explicit physical index of each logical cell, for selection views.
	indices []int

	isView bool
	exec   *parallel.Executor
}

// New returns a vector over all the cells of store.
func New(store cells.Store) *Vector {
	return &Vector{store: store, size: store.Len(), stride: 1}
}

// NewDense returns a zero-filled vector of size n with contiguous storage.
func NewDense(n int) (*Vector, error) {
	store, err := cells.NewDense(n)
	if err != nil {
		return nil, err
	}
	return New(store), nil
}

// NewSparse returns a zero-filled vector of size n that only stores its non-zero cells.
func NewSparse(n int) (*Vector, error) {
	store, err := cells.NewSparse(n)
	if err != nil {
		return nil, err
	}
	return New(store), nil
}

// NewFloat16 returns a zero-filled vector of size n that stores its cells as half-precision floats.
func NewFloat16(n int) (*Vector, error) {
	store, err := cells.NewFloat16Dense(n)
	if err != nil {
		return nil, err
	}
	return New(store), nil
}

// FromValues returns a dense vector with a copy of values.
func FromValues(values []float64) *Vector {
	flat := make([]float64, len(values))
	copy(flat, values)
	return New(cells.DenseFromFlat(flat))
}

// Size returns the number of cells.
func (v *Vector) Size() int { return v.size }

// Store returns the physical storage of the vector, shared with all its views.
func (v *Vector) Store() cells.Store { return v.store }

// IsView returns whether the vector was created as a view of another vector.
func (v *Vector) IsView() bool { return v.isView }

// Executor returns the executor bound to the vector with WithExecutor, or nil if it uses the
// process-wide default.
func (v *Vector) Executor() *parallel.Executor { return v.exec }

// WithExecutor returns a vector over the same cells (same addressing) whose bulk operations run with
// the given executor. The receiver is not changed.
func (v *Vector) WithExecutor(exec *parallel.Executor) *Vector {
	v2 := *v
	v2.exec = exec
	return &v2
}

// physical maps a logical index to its cell in the store.
func (v *Vector) physical(i int) int {
	if v.indices != nil {
		return v.indices[i]
	}
	return v.offset + v.stride*i
}

// Get returns the value of cell i, or an error wrapping ErrIndex if i is not in [0, Size()).
func (v *Vector) Get(i int) (float64, error) {
	if err := cells.CheckIndex(i, v.size); err != nil {
		return 0, err
	}
	return v.GetFast(i), nil
}

// Set sets the value of cell i, or returns an error wrapping ErrIndex if i is not in [0, Size()).
func (v *Vector) Set(i int, value float64) error {
	if err := cells.CheckIndex(i, v.size); err != nil {
		return err
	}
	v.SetFast(i, value)
	return nil
}

// GetFast returns the value of cell i without checking bounds.
// The behavior for i outside [0, Size()) is undefined.
func (v *Vector) GetFast(i int) float64 {
	return v.store.At(v.physical(i))
}

// SetFast sets the value of cell i without checking bounds.
// The behavior for i outside [0, Size()) is undefined.
func (v *Vector) SetFast(i int, value float64) {
	v.store.SetAt(v.physical(i), value)
}

// Like returns a new zero-filled vector of the same size and the same storage family (a sparse
// vector creates a sparse vector, etc.). It inherits the executor of the receiver.
func (v *Vector) Like() (*Vector, error) {
	return v.LikeSize(v.size)
}

// LikeSize returns a new zero-filled vector of size n and the same storage family as the receiver.
func (v *Vector) LikeSize(n int) (*Vector, error) {
	store, err := v.store.Like(n)
	if err != nil {
		return nil, errors.WithMessagef(err, "creating vector like %T of size %d", v.store, n)
	}
	like := New(store)
	like.exec = v.exec
	return like, nil
}

// Like2D returns a new zero-filled rows x columns matrix of the same storage family as the vector.
func (v *Vector) Like2D(rows, columns int) (*matrix.Matrix2D, error) {
	return matrix.New2D(v.store, rows, columns)
}

// Like3D returns a new zero-filled slices x rows x columns matrix of the same storage family.
func (v *Vector) Like3D(slices, rows, columns int) (*matrix.Matrix3D, error) {
	return matrix.New3D(v.store, slices, rows, columns)
}

// SetSize changes the size of a vector that is not a view, growing (with zeros) or shrinking its
// storage. The store must implement cells.Resizable.
//
// Views created before the resize are not updated and must not be used afterward.
func (v *Vector) SetSize(n int) error {
	if v.isView {
		return errors.Wrapf(ErrRange, "cannot resize a view (size %d) to %d", v.size, n)
	}
	resizable, ok := v.store.(cells.Resizable)
	if !ok {
		return errors.Wrapf(ErrAllocation, "store %T is not resizable", v.store)
	}
	if err := resizable.Resize(n); err != nil {
		return err
	}
	v.size = n
	return nil
}

// String implements fmt.Stringer.
func (v *Vector) String() string {
	values := make([]float64, v.size)
	for i := range values {
		values[i] = v.GetFast(i)
	}
	return fmt.Sprintf("Vector[%d]%v", v.size, values)
}
