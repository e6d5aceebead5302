// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import "math"

// Property holds the tolerance policy used to compare vectors.
type Property struct {
	// Tolerance is the maximum absolute difference for two values to be considered equal.
	// 0 means exact comparison.
	Tolerance float64
}

// DefaultProperty is used by Vector.Equal and Vector.EqualValue: exact comparison.
var DefaultProperty = Property{}

// ValuesEqual compares two values: NaN equals NaN, infinities equal themselves, and other values
// are equal if they differ by at most p.Tolerance.
func (p Property) ValuesEqual(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= p.Tolerance
}

// Equal returns whether a and b have the same size and all corresponding values are equal.
func (p Property) Equal(a, b *Vector) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.size != b.size {
		return false
	}
	for i := range a.size {
		if !p.ValuesEqual(a.GetFast(i), b.GetFast(i)) {
			return false
		}
	}
	return true
}

// EqualValue returns whether all values of v equal value.
func (p Property) EqualValue(v *Vector, value float64) bool {
	if v == nil {
		return false
	}
	for i := range v.size {
		if !p.ValuesEqual(v.GetFast(i), value) {
			return false
		}
	}
	return true
}

// Equal returns whether v and other have the same size and values, according to DefaultProperty.
func (v *Vector) Equal(other *Vector) bool {
	return DefaultProperty.Equal(v, other)
}

// EqualValue returns whether every cell equals value, according to DefaultProperty.
func (v *Vector) EqualValue(value float64) bool {
	return DefaultProperty.EqualValue(v, value)
}
