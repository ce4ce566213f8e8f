// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality of numbers
// with tolerance (ie: assert.InDelta with defaults).
package tolassert

import (
	"github.com/stretchr/testify/assert"
)

// Equal asserts that the two numbers are equal within a tolerance of 0.001.
func Equal[T float32 | float64](t assert.TestingT, expected, actual T, args ...any) bool {
	return EqualTol(t, expected, actual, 0.001, args...)
}

// EqualTol asserts that the two numbers are equal within the given tolerance.
func EqualTol[T float32 | float64](t assert.TestingT, expected, actual, tol T, args ...any) bool {
	return assert.InDelta(t, expected, actual, float64(tol), args...)
}
