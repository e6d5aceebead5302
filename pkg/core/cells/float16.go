// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package cells

import (
	"github.com/x448/float16"
)

// Float16Dense is a contiguous store that keeps its cells as IEEE half-precision floats, using a
// quarter of the memory of Dense.
//
// Values are rounded to the nearest float16 when written, so only values representable as float16
// read back exactly.
type Float16Dense struct {
	flat []float16.Float16
}

// Compile-time check that Float16Dense implements Resizable.
var _ Resizable = (*Float16Dense)(nil)

// NewFloat16Dense returns a zero-filled float16 store with n cells.
func NewFloat16Dense(n int) (*Float16Dense, error) {
	if err := checkAllocation(n); err != nil {
		return nil, err
	}
	return &Float16Dense{flat: make([]float16.Float16, n)}, nil
}

// Len implements Store.
func (h *Float16Dense) Len() int { return len(h.flat) }

// At implements Store.
func (h *Float16Dense) At(i int) float64 { return float64(h.flat[i].Float32()) }

// SetAt implements Store.
func (h *Float16Dense) SetAt(i int, value float64) { h.flat[i] = float16.Fromfloat32(float32(value)) }

// Like implements Store.
func (h *Float16Dense) Like(n int) (Store, error) {
	return NewFloat16Dense(n)
}

// Resize implements Resizable.
func (h *Float16Dense) Resize(n int) error {
	if err := checkAllocation(n); err != nil {
		return err
	}
	flat := make([]float16.Float16, n)
	copy(flat, h.flat)
	h.flat = flat
	return nil
}
