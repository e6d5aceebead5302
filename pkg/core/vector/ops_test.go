// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import (
	"fmt"
	"math"
	"testing"

	"github.com/gomlx/vector1d/pkg/core/parallel"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executors used to run each test both sequentially and split in partitions.
var executors = map[string]*parallel.Executor{
	"sequential": parallel.Sequential(),
	"parallel4":  parallel4,
}

func TestAggregate(t *testing.T) {
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			x := FromValues([]float64{0, 1, 2, 3}).WithExecutor(exec)
			assert.Equal(t, 14.0, must.M1(x.Aggregate(Plus, Square)))
			assert.Equal(t, 14.0, must.M1(x.AggregateWith(x.ViewFlip().ViewFlip(), Plus, Mult)))
			assert.Equal(t, 6.0, must.M1(x.Sum()))
			assert.Equal(t, 3.0, must.M1(x.Aggregate(Max, Identity)))
			assert.Equal(t, 22.0, must.M1(x.AggregateIndices(Plus, Square, []int{3, 2, 3, 0})))

			empty := must.M1(NewDense(0)).WithExecutor(exec)
			assert.True(t, math.IsNaN(must.M1(empty.Aggregate(Plus, Identity))))
			assert.Equal(t, 0.0, must.M1(empty.Sum()))
			assert.True(t, math.IsNaN(must.M1(x.AggregateIndices(Plus, Identity, nil))))

			_, err := x.AggregateWith(must.M1(NewDense(3)), Plus, Mult)
			assert.True(t, errors.Is(err, ErrSizeMismatch))
			_, err = x.AggregateIndices(Plus, Identity, []int{0, 4})
			assert.True(t, errors.Is(err, ErrIndex))
		})
	}
}

func TestAssign(t *testing.T) {
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			x := must.M1(NewDense(5)).WithExecutor(exec)
			values := []float64{1, 2, 3, 4, 5}
			require.NoError(t, x.AssignValues(values))
			assert.Equal(t, values, toArray(t, x))
			assert.True(t, errors.Is(x.AssignValues(values[:4]), ErrSizeMismatch))

			require.NoError(t, x.AssignFunc(Scale(2)))
			assert.Equal(t, []float64{2, 4, 6, 8, 10}, toArray(t, x))
			require.NoError(t, x.AssignIf(func(x float64) bool { return x > 5 }, Shift(-5)))
			assert.Equal(t, []float64{2, 4, 1, 3, 5}, toArray(t, x))
			require.NoError(t, x.AssignValueIf(func(x float64) bool { return x < 3 }, 0))
			assert.Equal(t, []float64{0, 4, 0, 3, 5}, toArray(t, x))
			require.NoError(t, x.AssignValue(7))
			assert.True(t, x.EqualValue(7))

			y := FromValues([]float64{1, 2, 3, 4, 5})
			require.NoError(t, x.AssignWith(y, Minus))
			assert.Equal(t, []float64{6, 5, 4, 3, 2}, toArray(t, x))
			assert.True(t, errors.Is(x.AssignWith(must.M1(NewDense(2)), Plus), ErrSizeMismatch))

			require.NoError(t, x.Assign(y))
			assert.True(t, x.Equal(y))
			assert.False(t, x.HaveSharedCells(y))
			assert.True(t, errors.Is(x.Assign(must.M1(NewDense(4))), ErrSizeMismatch))
		})
	}
}

func TestAssignAliased(t *testing.T) {
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			v := FromValues([]float64{1, 2, 3, 4, 5, 6}).WithExecutor(exec)
			require.NoError(t, v.Assign(v.ViewFlip()))
			assert.Equal(t, []float64{6, 5, 4, 3, 2, 1}, toArray(t, v))

			// Shifted overlapping parts: every cell must see the value before the assignment.
			v = FromValues([]float64{1, 2, 3, 4, 5, 6}).WithExecutor(exec)
			head, tail := must.M1(v.ViewPart(0, 5)), must.M1(v.ViewPart(1, 5))
			require.NoError(t, tail.Assign(head))
			assert.Equal(t, []float64{1, 1, 2, 3, 4, 5}, toArray(t, v))

			v = FromValues([]float64{1, 2, 3, 4}).WithExecutor(exec)
			require.NoError(t, v.AssignWith(v.ViewFlip(), Plus))
			assert.Equal(t, []float64{5, 5, 5, 5}, toArray(t, v))

			// Same addressing is a no-op for Assign, and reads the cell itself for AssignWith.
			v = FromValues([]float64{1, 2, 3}).WithExecutor(exec)
			require.NoError(t, v.Assign(must.M1(v.ViewPart(0, 3))))
			assert.Equal(t, []float64{1, 2, 3}, toArray(t, v))
			require.NoError(t, v.AssignWith(v, Mult))
			assert.Equal(t, []float64{1, 4, 9}, toArray(t, v))
		})
	}
}

func TestAssignWithIndices(t *testing.T) {
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			y := FromValues([]float64{0, 10, 0, 20, 0})
			indices := []int{3, 1}
			newX := func() *Vector { return FromValues([]float64{1, 2, 3, 4, 5}).WithExecutor(exec) }

			testCases := []struct {
				fn   Combiner
				want []float64
			}{
				{MultCombiner{}, []float64{0, 20, 0, 80, 0}},
				{PlusMult(1), []float64{1, 12, 3, 24, 5}},
				{PlusMult(-1), []float64{1, -8, 3, -16, 5}},
				{PlusMult(2), []float64{1, 22, 3, 44, 5}},
				{PlusMult(0), []float64{1, 2, 3, 4, 5}},
				{CombinerFunc(Max), []float64{1, 10, 3, 20, 5}},
			}
			for _, tc := range testCases {
				x := newX()
				require.NoError(t, x.AssignWithIndices(y, tc.fn, indices))
				assert.Equal(t, tc.want, toArray(t, x), "combiner %#v", tc.fn)

				// The result must match the general elementwise assignment.
				want := newX()
				require.NoError(t, want.AssignWith(y, tc.fn.Combine))
				assert.Equal(t, toArray(t, want), toArray(t, x), "combiner %#v", tc.fn)
			}

			// Repeated and unsorted indices are only applied once.
			x := newX()
			require.NoError(t, x.AssignWithIndices(y, PlusMult(1), []int{3, 1, 3, 1}))
			assert.Equal(t, []float64{1, 12, 3, 24, 5}, toArray(t, x))

			// Empty list: Mult zeroes everything, PlusMult changes nothing.
			x = newX()
			require.NoError(t, x.AssignWithIndices(y, MultCombiner{}, nil))
			assert.True(t, x.EqualValue(0))

			x = newX()
			assert.True(t, errors.Is(x.AssignWithIndices(y, PlusMult(1), []int{5}), ErrIndex))
			assert.True(t, errors.Is(x.AssignWithIndices(must.M1(NewDense(4)), PlusMult(1), indices), ErrSizeMismatch))
		})
	}
}

func TestSwapAndCopy(t *testing.T) {
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			a := FromValues([]float64{1, 2, 3}).WithExecutor(exec)
			b := FromValues([]float64{4, 5, 6})
			require.NoError(t, a.Swap(b))
			assert.Equal(t, []float64{4, 5, 6}, toArray(t, a))
			assert.Equal(t, []float64{1, 2, 3}, toArray(t, b))
			assert.True(t, errors.Is(a.Swap(must.M1(NewDense(2))), ErrSizeMismatch))

			// Disjoint views of the same store.
			v := FromValues([]float64{1, 2, 3, 4}).WithExecutor(exec)
			require.NoError(t, must.M1(v.ViewPart(0, 2)).Swap(must.M1(v.ViewPart(2, 2))))
			assert.Equal(t, []float64{3, 4, 1, 2}, toArray(t, v))

			c := must.M1(a.Copy())
			assert.True(t, c.Equal(a))
			assert.False(t, c.HaveSharedCells(a))
			require.NoError(t, c.Set(0, 100))
			assert.Equal(t, 4.0, must.M1(a.Get(0)))

			// Copy of a view is a root vector with the view's values.
			c = must.M1(v.ViewFlip().Copy())
			assert.False(t, c.IsView())
			assert.Equal(t, []float64{2, 1, 4, 3}, toArray(t, c))
		})
	}
}

func TestToArrayInto(t *testing.T) {
	v := FromValues([]float64{1, 2, 3})
	values := make([]float64, 5)
	require.NoError(t, v.ToArrayInto(values))
	assert.Equal(t, []float64{1, 2, 3, 0, 0}, values)
	assert.True(t, errors.Is(v.ToArrayInto(make([]float64, 2)), ErrRange))
}

func TestMinMaxLocation(t *testing.T) {
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			v := FromValues([]float64{3, 1, 4, 1, 5, 9, 2, 6}).WithExecutor(exec)
			value, index := must.M2(v.MaxLocation())
			assert.Equal(t, 9.0, value)
			assert.Equal(t, 5, index)
			value, index = must.M2(v.MinLocation())
			assert.Equal(t, 1.0, value)
			assert.Equal(t, 1, index, "ties resolve to the smallest index")

			// Ties across partitions.
			v = FromValues([]float64{7, 0, 0, 7, 7, 0, 0, 7}).WithExecutor(exec)
			value, index = must.M2(v.MaxLocation())
			assert.Equal(t, 7.0, value)
			assert.Equal(t, 0, index)
			_, index = must.M2(v.MinLocation())
			assert.Equal(t, 1, index)

			value, index = must.M2(must.M1(NewDense(0)).MaxLocation())
			assert.True(t, math.IsNaN(value))
			assert.Equal(t, -1, index)
		})
	}
}

func TestNormalize(t *testing.T) {
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			v := FromValues([]float64{-1, 1, 3}).WithExecutor(exec)
			require.NoError(t, v.Normalize())
			assert.InDeltaSlice(t, []float64{0, 1.0 / 3, 2.0 / 3}, toArray(t, v), 1e-12)
			assert.InDelta(t, 1.0, must.M1(v.Sum()), 1e-12)

			v = FromValues([]float64{0, 0, 0, 0}).WithExecutor(exec)
			require.NoError(t, v.Normalize())
			assert.True(t, v.EqualValue(0.25))

			v = FromValues([]float64{1, 3}).WithExecutor(exec)
			require.NoError(t, v.Normalize())
			assert.Equal(t, []float64{0.25, 0.75}, toArray(t, v))

			require.NoError(t, must.M1(NewDense(0)).Normalize())
		})
	}
}

func TestDotProduct(t *testing.T) {
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			x := FromValues([]float64{1, 2, 3}).WithExecutor(exec)
			y := FromValues([]float64{4, 5, 6}).WithExecutor(exec)
			assert.Equal(t, 32.0, must.M1(x.DotProduct(y)))
			assert.Equal(t, must.M1(y.DotProduct(x)), must.M1(x.DotProduct(y)))
			assert.Equal(t, 28.0, must.M1(x.DotProductRange(y, 1, 2)))
			assert.Equal(t, 22.0, must.M1(x.DotProductIndices(y, 0, 3, []int{2, 0, 2})))
			assert.Equal(t, 18.0, must.M1(x.DotProductIndices(y, 1, 10, []int{0, 2, 7})))

			// Clipping to the shorter vector, and degenerate ranges.
			long := FromValues([]float64{1, 1, 1, 1, 1})
			assert.Equal(t, 15.0, must.M1(y.DotProduct(long)))
			assert.Equal(t, 6.0, must.M1(long.DotProduct(x)))
			assert.Equal(t, 0.0, must.M1(x.DotProductRange(y, -1, 2)))
			assert.Equal(t, 0.0, must.M1(x.DotProductRange(y, 0, 0)))
			assert.Equal(t, 0.0, must.M1(x.DotProductRange(y, 3, 2)))
			assert.Equal(t, 0.0, must.M1(x.DotProductIndices(y, 0, 3, nil)))
		})
	}
}

func TestNonZeros(t *testing.T) {
	for name, newVector := range constructors {
		t.Run(name, func(t *testing.T) {
			v := must.M1(newVector(5)).WithExecutor(parallel4)
			require.NoError(t, v.AssignValues([]float64{0, 0, 8, 0, 7}))
			indices, values := v.NonZeros()
			assert.Equal(t, []int{2, 4}, indices)
			assert.Equal(t, []float64{8, 7}, values)
			assert.Equal(t, 2, must.M1(v.Cardinality()))

			indices, values = v.NonZerosUpTo(1)
			assert.Equal(t, []int{2}, indices)
			assert.Equal(t, []float64{8}, values)
			indices, _ = v.NonZerosUpTo(0)
			assert.Empty(t, indices)

			// Through a view the indices are the view's.
			indices, values = v.ViewFlip().NonZeros()
			assert.Equal(t, []int{0, 2}, indices)
			assert.Equal(t, []float64{7, 8}, values)

			require.NoError(t, v.AssignValues([]float64{-1, 0, 2, -3, 0}))
			indices, values = v.PositiveValues()
			assert.Equal(t, []int{2}, indices)
			assert.Equal(t, []float64{2}, values)
			indices, values = v.NegativeValues()
			assert.Equal(t, []int{0, 3}, indices)
			assert.Equal(t, []float64{-1, -3}, values)

			indices, values = must.M1(newVector(3)).NonZeros()
			assert.Empty(t, indices)
			assert.Empty(t, values)
		})
	}
}

func TestCardinalityNaN(t *testing.T) {
	v := FromValues([]float64{math.NaN(), 0, 1})
	assert.Equal(t, 2, must.M1(v.Cardinality()))
}

func TestFailurePropagation(t *testing.T) {
	v := FromValues([]float64{1, 2, 3, 4, 5, 6, 7, 8}).WithExecutor(parallel4)
	failOnLarge := func(x float64) float64 {
		if x > 6 {
			panic(errors.Errorf("value %g too large", x))
		}
		return x
	}

	_, err := v.Aggregate(Plus, failOnLarge)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parallel.ErrTaskFailed))
	var taskErr *parallel.TaskError
	require.True(t, errors.As(err, &taskErr))
	assert.Equal(t, 3, taskErr.Partition)
	assert.Contains(t, err.Error(), "too large")

	err = v.AssignFunc(failOnLarge)
	assert.True(t, errors.Is(err, parallel.ErrTaskFailed))

	_, err = v.AggregateWith(v, func(a, b float64) float64 {
		panic(fmt.Sprintf("combining %g and %g", a, b))
	}, Mult)
	assert.True(t, errors.Is(err, parallel.ErrTaskFailed))
}
