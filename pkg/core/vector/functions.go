// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package vector

import "math"

// UnaryFunc transforms the value of a cell.
type UnaryFunc func(x float64) float64

// BinaryFunc combines two values: the current aggregation and a transformed cell, or two
// corresponding cells of different vectors.
type BinaryFunc func(a, b float64) float64

// Predicate tests the value of a cell.
type Predicate func(x float64) bool

// Commonly used functions.
var (
	Identity UnaryFunc = func(x float64) float64 { return x }
	Square   UnaryFunc = func(x float64) float64 { return x * x }
	Abs      UnaryFunc = math.Abs

	Plus  BinaryFunc = func(a, b float64) float64 { return a + b }
	Minus BinaryFunc = func(a, b float64) float64 { return a - b }
	Mult  BinaryFunc = func(a, b float64) float64 { return a * b }
	Max   BinaryFunc = math.Max
	Min   BinaryFunc = math.Min

	IsZero     Predicate = func(x float64) bool { return x == 0 }
	IsPositive Predicate = func(x float64) bool { return x > 0 }
	IsNegative Predicate = func(x float64) bool { return x < 0 }
	IsNonZero  Predicate = func(x float64) bool { return x != 0 }
)

// Scale returns the function x -> factor*x.
func Scale(factor float64) UnaryFunc {
	return func(x float64) float64 { return x * factor }
}

// Shift returns the function x -> x+delta.
func Shift(delta float64) UnaryFunc {
	return func(x float64) float64 { return x + delta }
}

// Chain returns the function x -> outer(inner(x)).
func Chain(outer, inner UnaryFunc) UnaryFunc {
	return func(x float64) float64 { return outer(inner(x)) }
}

// ChainBinary returns the function (a, b) -> outer(inner(a, b)).
func ChainBinary(outer UnaryFunc, inner BinaryFunc) BinaryFunc {
	return func(a, b float64) float64 { return outer(inner(a, b)) }
}

// Combiner is a function of two corresponding cells x and y, used by AssignWithIndices.
//
// The combiners MultCombiner and PlusMultCombiner are recognized by AssignWithIndices, which then
// only visits the listed indices. Any other Combiner (e.g. a CombinerFunc) is applied to every cell.
type Combiner interface {
	Combine(x, y float64) float64
}

// CombinerFunc adapts a BinaryFunc to a Combiner.
type CombinerFunc BinaryFunc

// Combine implements Combiner.
func (fn CombinerFunc) Combine(x, y float64) float64 { return fn(x, y) }

// MultCombiner is the Combiner x*y.
type MultCombiner struct{}

// Combine implements Combiner.
func (MultCombiner) Combine(x, y float64) float64 { return x * y }

// PlusMultCombiner is the Combiner x + Multiplicator*y.
type PlusMultCombiner struct {
	Multiplicator float64
}

// Combine implements Combiner.
func (c PlusMultCombiner) Combine(x, y float64) float64 { return x + c.Multiplicator*y }

// PlusMult returns the Combiner x + multiplicator*y.
func PlusMult(multiplicator float64) PlusMultCombiner {
	return PlusMultCombiner{Multiplicator: multiplicator}
}
