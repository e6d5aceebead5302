// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package cells

// Dense is a contiguous float64 store backed by a Go slice.
type Dense struct {
	flat []float64
}

// Compile-time check that Dense implements Resizable.
var _ Resizable = (*Dense)(nil)

// NewDense returns a zero-filled dense store with n cells.
func NewDense(n int) (*Dense, error) {
	if err := checkAllocation(n); err != nil {
		return nil, err
	}
	return &Dense{flat: make([]float64, n)}, nil
}

// DenseFromFlat returns a dense store that uses flat as its storage: no copy is made.
func DenseFromFlat(flat []float64) *Dense {
	return &Dense{flat: flat}
}

// Flat returns the underlying storage. Changes to it are reflected in the store.
func (d *Dense) Flat() []float64 { return d.flat }

// Len implements Store.
func (d *Dense) Len() int { return len(d.flat) }

// At implements Store.
func (d *Dense) At(i int) float64 { return d.flat[i] }

// SetAt implements Store.
func (d *Dense) SetAt(i int, value float64) { d.flat[i] = value }

// Like implements Store.
func (d *Dense) Like(n int) (Store, error) {
	return NewDense(n)
}

// Resize implements Resizable.
func (d *Dense) Resize(n int) error {
	if err := checkAllocation(n); err != nil {
		return err
	}
	if n <= cap(d.flat) {
		old := len(d.flat)
		d.flat = d.flat[:n]
		for i := old; i < n; i++ {
			d.flat[i] = 0
		}
		return nil
	}
	flat := make([]float64, n)
	copy(flat, d.flat)
	d.flat = flat
	return nil
}
