// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox2Empty(t *testing.T) {
	b := B2Empty()
	assert.True(t, b.IsEmpty())

	b.ExpandByPoint(Vec2(1, 2))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, B2(1, 2, 1, 2), b)

	b.ExpandByPoint(Vec2(-1, 4))
	assert.Equal(t, B2(-1, 2, 1, 4), b)
}

func TestBox2Union(t *testing.T) {
	a := B2(0, 0, 10, 10)
	b := B2(5, 5, 20, 15)
	assert.Equal(t, B2(0, 0, 20, 15), a.Union(b))
	assert.Equal(t, B2(5, 5, 10, 10), a.Intersect(b))

	// union with empty is a no-op
	assert.Equal(t, a, a.Union(B2Empty()))
}

func TestBox2Contains(t *testing.T) {
	b := B2(0, 0, 10, 10)
	assert.True(t, b.ContainsPoint(Vec2(5, 5)))
	assert.True(t, b.ContainsPoint(Vec2(0, 10)))
	assert.False(t, b.ContainsPoint(Vec2(-0.001, 5)))
	assert.False(t, b.ContainsPoint(Vec2(5, 10.001)))

	assert.True(t, b.ContainsBox(B2(1, 1, 9, 9)))
	assert.False(t, b.ContainsBox(B2(1, 1, 11, 9)))
}

func TestBox2MulMatrix2(t *testing.T) {
	b := B2(0, 0, 2, 1)

	assert.Equal(t, B2(3, 4, 5, 5), b.MulMatrix2(Translate2D(3, 4)))
	assert.Equal(t, B2(0, 0, 4, 3), b.MulMatrix2(Scale2D(2, 3)))

	// empty boxes stay empty instead of spanning transformed infinities
	assert.True(t, B2Empty().MulMatrix2(Rotate2D(DegToRad(45))).IsEmpty())

	// rotation by 90 degrees maps (2,1) extents onto (-1..0, 0..2)
	r := b.MulMatrix2(Rotate2D(DegToRad(90)))
	assert.True(t, r.AlmostEqual(B2(-1, 0, 0, 2), 1.0e-6))
}

func TestBox2AlmostEqual(t *testing.T) {
	a := B2(0, 0, 1, 1)
	assert.True(t, a.AlmostEqual(B2(0, 0, 1, 1.0000001), 1.0e-5))
	assert.False(t, a.AlmostEqual(B2(0, 0, 1, 1.1), 1.0e-5))
	assert.True(t, B2Empty().AlmostEqual(B2Empty(), 1.0e-5))
	assert.False(t, a.AlmostEqual(B2Empty(), 1.0e-5))
}
