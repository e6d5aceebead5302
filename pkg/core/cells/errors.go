// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package cells

import "github.com/pkg/errors"

// Error taxonomy shared by stores, matrices and vectors.
//
// Errors returned by this module wrap one of these sentinels (with github.com/pkg/errors), so callers
// should test them with errors.Is.
var (
	// ErrIndex is returned by checked accessors when an index is outside [0, size).
	ErrIndex = errors.New("index out of range")

	// ErrRange is returned for invalid sub-range, stride or destination parameters.
	ErrRange = errors.New("invalid range")

	// ErrSizeMismatch is returned by operations between vectors (or arrays) that require equal sizes.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrAllocation is returned when storage cannot be constructed, e.g. negative dimensions.
	ErrAllocation = errors.New("allocation failure")
)

// CheckIndex returns an error wrapping ErrIndex if index is not in [0, size).
func CheckIndex(index, size int) error {
	if index < 0 || index >= size {
		return errors.Wrapf(ErrIndex, "index %d for size %d", index, size)
	}
	return nil
}

// CheckSizes returns an error wrapping ErrSizeMismatch if the sizes differ.
func CheckSizes(size, otherSize int) error {
	if size != otherSize {
		return errors.Wrapf(ErrSizeMismatch, "sizes %d and %d", size, otherSize)
	}
	return nil
}
