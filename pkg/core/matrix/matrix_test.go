// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"math"
	"testing"

	"github.com/gomlx/vector1d/pkg/core/cells"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew2D(t *testing.T) {
	family, err := cells.NewSparse(0)
	require.NoError(t, err)
	m, err := New2D(family, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Columns())
	assert.Equal(t, 6, m.Size())
	assert.IsType(t, &cells.Sparse{}, m.Store())

	require.NoError(t, m.Set(1, 2, 7))
	v, err := m.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
	assert.Equal(t, 7.0, m.Store().At(5))

	_, err = m.Get(2, 0)
	assert.True(t, errors.Is(err, cells.ErrIndex))
	assert.True(t, errors.Is(m.Set(0, -1, 1), cells.ErrIndex))

	_, err = New2D(family, -1, 3)
	assert.True(t, errors.Is(err, cells.ErrAllocation))
	_, err = New2D(family, math.MaxInt, 3)
	assert.True(t, errors.Is(err, cells.ErrAllocation))
}

func TestNew3D(t *testing.T) {
	family, err := cells.NewDense(0)
	require.NoError(t, err)
	m, err := New3D(family, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 24, m.Size())
	require.NoError(t, m.Set(1, 2, 3, 5))
	assert.Equal(t, 5.0, m.Store().At(23))
	assert.Equal(t, 5.0, m.GetFast(1, 2, 3))

	_, err = m.Get(0, 3, 0)
	assert.True(t, errors.Is(err, cells.ErrIndex))
	_, err = New3D(family, 1, 1, -2)
	assert.True(t, errors.Is(err, cells.ErrAllocation))
}
