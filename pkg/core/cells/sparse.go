// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package cells

import (
	"math"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// MaxSparseLen is the largest number of cells a Sparse store can address.
const MaxSparseLen = math.MaxUint32

// Sparse is a store that only keeps its non-zero cells: values are held in a map, and the set of
// non-zero indices in a roaring bitmap, so they can be listed in order without scanning.
//
// Writing 0 to a cell removes it. Unlike Dense, a Go map doesn't support concurrent writes even
// to distinct keys, so Sparse guards its state with a read-write mutex.
type Sparse struct {
	mu      sync.RWMutex
	n       int
	values  map[int]float64
	nonZero *roaring.Bitmap
}

// Compile-time checks.
var (
	_ Resizable      = (*Sparse)(nil)
	_ NonZeroIndexer = (*Sparse)(nil)
)

// NewSparse returns an all-zeros sparse store with n cells.
func NewSparse(n int) (*Sparse, error) {
	if err := checkAllocation(n); err != nil {
		return nil, err
	}
	if n > MaxSparseLen {
		return nil, errors.Wrapf(ErrAllocation, "sparse store limited to %d cells, %d requested", MaxSparseLen, n)
	}
	return &Sparse{
		n:       n,
		values:  make(map[int]float64),
		nonZero: roaring.New(),
	}, nil
}

// Len implements Store.
func (s *Sparse) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.n
}

// At implements Store.
func (s *Sparse) At(i int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[i]
}

// SetAt implements Store.
func (s *Sparse) SetAt(i int, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == 0 {
		if _, found := s.values[i]; found {
			delete(s.values, i)
			s.nonZero.Remove(uint32(i))
		}
		return
	}
	s.values[i] = value
	s.nonZero.Add(uint32(i))
}

// Like implements Store.
func (s *Sparse) Like(n int) (Store, error) {
	return NewSparse(n)
}

// Resize implements Resizable.
func (s *Sparse) Resize(n int) error {
	if err := checkAllocation(n); err != nil {
		return err
	}
	if n > MaxSparseLen {
		return errors.Wrapf(ErrAllocation, "sparse store limited to %d cells, %d requested", MaxSparseLen, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < s.n {
		maps.DeleteFunc(s.values, func(i int, _ float64) bool { return i >= n })
		s.nonZero.RemoveRange(uint64(n), uint64(s.n))
	}
	s.n = n
	return nil
}

// NonZeroIndices implements NonZeroIndexer.
func (s *Sparse) NonZeroIndices() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	indices := make([]int, 0, s.nonZero.GetCardinality())
	it := s.nonZero.Iterator()
	for it.HasNext() {
		indices = append(indices, int(it.Next()))
	}
	return indices
}

// NumNonZeros returns the number of cells currently stored.
func (s *Sparse) NumNonZeros() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(s.nonZero.GetCardinality())
}
