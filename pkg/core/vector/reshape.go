// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import (
	"github.com/gomlx/vector1d/pkg/core/cells"
	"github.com/gomlx/vector1d/pkg/core/matrix"
	"github.com/pkg/errors"
)

// Reshape returns a new rows x columns matrix of the same storage family, filled column by column
// with the values of v: cell i goes to row i%rows, column i/rows.
//
// It fails with ErrAllocation for negative dimensions and ErrSizeMismatch if rows*columns != Size().
func (v *Vector) Reshape(rows, columns int) (*matrix.Matrix2D, error) {
	m, err := v.Like2D(rows, columns)
	if err != nil {
		return nil, errors.WithMessage(err, "Reshape")
	}
	if err = cells.CheckSizes(m.Size(), v.size); err != nil {
		return nil, errors.WithMessagef(err, "Reshape(%d, %d)", rows, columns)
	}
	err = v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			m.SetFast(i%rows, i/rows, v.GetFast(i))
		}
	})
	if err != nil {
		return nil, errors.WithMessage(err, "Reshape")
	}
	return m, nil
}

// Reshape3D returns a new slices x rows x columns matrix of the same storage family, filled slice by
// slice, and within each slice column by column, with the values of v.
//
// It fails with ErrAllocation for negative dimensions and ErrSizeMismatch if
// slices*rows*columns != Size().
func (v *Vector) Reshape3D(slices, rows, columns int) (*matrix.Matrix3D, error) {
	m, err := v.Like3D(slices, rows, columns)
	if err != nil {
		return nil, errors.WithMessage(err, "Reshape3D")
	}
	if err = cells.CheckSizes(m.Size(), v.size); err != nil {
		return nil, errors.WithMessagef(err, "Reshape3D(%d, %d, %d)", slices, rows, columns)
	}
	sliceSize := rows * columns
	err = v.forEach(func(start, end int) {
		for i := start; i < end; i++ {
			inSlice := i % sliceSize
			m.SetFast(i/sliceSize, inSlice%rows, inSlice/rows, v.GetFast(i))
		}
	})
	if err != nil {
		return nil, errors.WithMessage(err, "Reshape3D")
	}
	return m, nil
}
