// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import (
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// HaveSharedCells returns whether any physical cell is reachable from both v and other.
//
// Vectors over different stores never share cells. For vectors over the same store the test
// compares their addressing: two affine addressings with the same stride are checked
// arithmetically, anything else by intersecting the sets of physical cells. The answer is exact,
// except for stores larger than 2^32 cells, where non-trivial cases are conservatively reported
// as shared.
func (v *Vector) HaveSharedCells(other *Vector) bool {
	if other == nil {
		return false
	}
	if v == other {
		return true
	}
	if v.store != other.store || v.size == 0 || other.size == 0 {
		return false
	}
	if v.indices == nil && other.indices == nil {
		a, b := v.affine(), other.affine()
		if a.last < b.first || b.last < a.first {
			return false
		}
		if a.stride == b.stride {
			return (b.first-a.first)%a.stride == 0
		}
	}
	if v.store.Len() > math.MaxUint32 {
		return true
	}
	return v.cellSet().Intersects(other.cellSet())
}

// sameAddressing returns whether v and other map every logical index to the same physical cell.
func (v *Vector) sameAddressing(other *Vector) bool {
	if v == other {
		return true
	}
	if v.store != other.store || v.size != other.size {
		return false
	}
	if v.size == 0 {
		return true
	}
	if v.indices == nil && other.indices == nil {
		return v.offset == other.offset && (v.size == 1 || v.stride == other.stride)
	}
	for i := range v.size {
		if v.physical(i) != other.physical(i) {
			return false
		}
	}
	return true
}

// affineRange describes the physical cells of an affine addressing with a positive stride:
// first, first+stride, ..., last.
type affineRange struct {
	first, last, stride int
}

// affine normalizes the affine addressing of a non-empty vector to a positive stride.
func (v *Vector) affine() affineRange {
	first, last := v.physical(0), v.physical(v.size-1)
	stride := v.stride
	if v.size == 1 {
		stride = 1
	}
	if stride < 0 {
		first, last, stride = last, first, -stride
	}
	return affineRange{first: first, last: last, stride: stride}
}

// cellSet returns the set of physical cells addressed by v.
func (v *Vector) cellSet() *roaring.Bitmap {
	set := roaring.New()
	if v.indices != nil {
		sorted := make([]uint32, len(v.indices))
		for i, p := range v.indices {
			sorted[i] = uint32(p)
		}
		slices.Sort(sorted)
		set.AddMany(slices.Compact(sorted))
		return set
	}
	r := v.affine()
	if r.stride == 1 {
		set.AddRange(uint64(r.first), uint64(r.last)+1)
		return set
	}
	for p := r.first; p <= r.last; p += r.stride {
		set.Add(uint32(p))
	}
	return set
}
