// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package matrix implements the 2D and 3D structures a vector can be reshaped into.
//
// Only construction and cell access are provided: a matrix is a row-major addressing over a
// cells.Store, and it is always created from a "family" store, so that reshaping a sparse vector
// yields a sparse matrix, a float16 vector a float16 matrix, etc.
package matrix

import (
	"math"

	"github.com/gomlx/vector1d/pkg/core/cells"
	"github.com/pkg/errors"
)

// Matrix2D is a rows x columns matrix stored row-major in a cells.Store.
type Matrix2D struct {
	rows, columns int
	store         cells.Store
}

// New2D creates a zero-filled rows x columns matrix using a new store of the same family as family.
func New2D(family cells.Store, rows, columns int) (*Matrix2D, error) {
	n, err := numCells(rows, columns)
	if err != nil {
		return nil, err
	}
	store, err := family.Like(n)
	if err != nil {
		return nil, errors.WithMessagef(err, "matrix.New2D(%d, %d)", rows, columns)
	}
	return &Matrix2D{rows: rows, columns: columns, store: store}, nil
}

// Rows returns the number of rows.
func (m *Matrix2D) Rows() int { return m.rows }

// Columns returns the number of columns.
func (m *Matrix2D) Columns() int { return m.columns }

// Size returns the total number of cells.
func (m *Matrix2D) Size() int { return m.rows * m.columns }

// Store returns the backing store.
func (m *Matrix2D) Store() cells.Store { return m.store }

// Get returns the value at (row, column), or an error wrapping cells.ErrIndex.
func (m *Matrix2D) Get(row, column int) (float64, error) {
	if err := m.checkIndex(row, column); err != nil {
		return 0, err
	}
	return m.GetFast(row, column), nil
}

// Set sets the value at (row, column), or returns an error wrapping cells.ErrIndex.
func (m *Matrix2D) Set(row, column int, value float64) error {
	if err := m.checkIndex(row, column); err != nil {
		return err
	}
	m.SetFast(row, column, value)
	return nil
}

// GetFast is the unchecked version of Get.
func (m *Matrix2D) GetFast(row, column int) float64 {
	return m.store.At(row*m.columns + column)
}

// SetFast is the unchecked version of Set.
func (m *Matrix2D) SetFast(row, column int, value float64) {
	m.store.SetAt(row*m.columns+column, value)
}

func (m *Matrix2D) checkIndex(row, column int) error {
	if row < 0 || row >= m.rows || column < 0 || column >= m.columns {
		return errors.Wrapf(cells.ErrIndex, "index (%d, %d) for matrix %dx%d", row, column, m.rows, m.columns)
	}
	return nil
}

// Matrix3D is a slices x rows x columns structure stored row-major in a cells.Store.
type Matrix3D struct {
	slices, rows, columns int
	store                 cells.Store
}

// New3D creates a zero-filled slices x rows x columns structure using a new store of the same family
// as family.
func New3D(family cells.Store, slices, rows, columns int) (*Matrix3D, error) {
	n, err := numCells(slices, rows, columns)
	if err != nil {
		return nil, err
	}
	store, err := family.Like(n)
	if err != nil {
		return nil, errors.WithMessagef(err, "matrix.New3D(%d, %d, %d)", slices, rows, columns)
	}
	return &Matrix3D{slices: slices, rows: rows, columns: columns, store: store}, nil
}

// Slices returns the number of slices.
func (m *Matrix3D) Slices() int { return m.slices }

// Rows returns the number of rows.
func (m *Matrix3D) Rows() int { return m.rows }

// Columns returns the number of columns.
func (m *Matrix3D) Columns() int { return m.columns }

// Size returns the total number of cells.
func (m *Matrix3D) Size() int { return m.slices * m.rows * m.columns }

// Store returns the backing store.
func (m *Matrix3D) Store() cells.Store { return m.store }

// Get returns the value at (slice, row, column), or an error wrapping cells.ErrIndex.
func (m *Matrix3D) Get(slice, row, column int) (float64, error) {
	if err := m.checkIndex(slice, row, column); err != nil {
		return 0, err
	}
	return m.GetFast(slice, row, column), nil
}

// Set sets the value at (slice, row, column), or returns an error wrapping cells.ErrIndex.
func (m *Matrix3D) Set(slice, row, column int, value float64) error {
	if err := m.checkIndex(slice, row, column); err != nil {
		return err
	}
	m.SetFast(slice, row, column, value)
	return nil
}

// GetFast is the unchecked version of Get.
func (m *Matrix3D) GetFast(slice, row, column int) float64 {
	return m.store.At((slice*m.rows+row)*m.columns + column)
}

// SetFast is the unchecked version of Set.
func (m *Matrix3D) SetFast(slice, row, column int, value float64) {
	m.store.SetAt((slice*m.rows+row)*m.columns+column, value)
}

func (m *Matrix3D) checkIndex(slice, row, column int) error {
	if slice < 0 || slice >= m.slices || row < 0 || row >= m.rows || column < 0 || column >= m.columns {
		return errors.Wrapf(cells.ErrIndex, "index (%d, %d, %d) for matrix %dx%dx%d",
			slice, row, column, m.slices, m.rows, m.columns)
	}
	return nil
}

// numCells multiplies the dimensions, failing with cells.ErrAllocation on negative values or overflow.
func numCells(dims ...int) (int, error) {
	n := 1
	for _, dim := range dims {
		if dim < 0 {
			return 0, errors.Wrapf(cells.ErrAllocation, "negative dimension in %v", dims)
		}
		if dim != 0 && n > math.MaxInt/dim {
			return 0, errors.Wrapf(cells.ErrAllocation, "dimensions %v overflow", dims)
		}
		n *= dim
	}
	return n, nil
}
