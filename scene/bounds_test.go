// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scenic-ui/scenic/base/tolassert"
	"github.com/scenic-ui/scenic/math32"
)

func box(x0, y0, x1, y1 float32) *math32.Box2 {
	b := math32.B2(x0, y0, x1, y1)
	return &b
}

func assertBox(t *testing.T, expected, actual math32.Box2) {
	t.Helper()
	tolassert.Equal(t, expected.Min.X, actual.Min.X)
	tolassert.Equal(t, expected.Min.Y, actual.Min.Y)
	tolassert.Equal(t, expected.Max.X, actual.Max.X)
	tolassert.Equal(t, expected.Max.Y, actual.Max.Y)
}

func TestBoundsUnion(t *testing.T) {
	parent := NewNode()
	a := NewNode()
	b := NewNode()
	parent.AddChild(a)
	parent.AddChild(b)

	a.InvalidateSelf(box(0, 0, 10, 10))
	b.InvalidateSelf(box(0, 0, 4, 4))
	b.SetTransform(math32.Translate2D(20, 20))

	assertBox(t, math32.B2(0, 0, 10, 10), a.Bounds())
	assertBox(t, math32.B2(20, 20, 24, 24), b.Bounds())
	assertBox(t, math32.B2(0, 0, 24, 24), parent.ChildBounds())
	assertBox(t, math32.B2(0, 0, 24, 24), parent.LocalBounds())
	assertBox(t, math32.B2(0, 0, 24, 24), parent.Bounds())

	// local == self ∪ child once the parent paints something itself.
	parent.InvalidateSelf(box(-5, -5, 1, 1))
	assertBox(t, math32.B2(-5, -5, 24, 24), parent.LocalBounds())
}

func TestBoundsLaziness(t *testing.T) {
	parent := NewNode()
	child := NewNode()
	parent.AddChild(child)

	notified := 0
	parent.LocalBoundsChanged.Listen(func(math32.Box2) { notified++ })

	child.InvalidateSelf(box(0, 0, 10, 10))
	assert.Equal(t, 0, notified, "invalidation must not recompute or notify")

	parent.ValidateBounds()
	assert.Equal(t, 1, notified)

	// Re-validating with nothing dirty is a no-op.
	parent.ValidateBounds()
	assert.Equal(t, 1, notified)
}

func TestBoundsNotificationCarriesOldBox(t *testing.T) {
	n := NewNode()
	n.InvalidateSelf(box(0, 0, 10, 10))
	n.ValidateBounds()

	var old math32.Box2
	fired := 0
	n.BoundsChanged.Listen(func(b math32.Box2) { old = b; fired++ })

	n.InvalidateSelf(box(0, 0, 20, 20))
	n.ValidateBounds()
	assert.Equal(t, 1, fired)
	assertBox(t, math32.B2(0, 0, 10, 10), old)
	assertBox(t, math32.B2(0, 0, 20, 20), n.Bounds())
}

func TestBoundsEpsilonSuppression(t *testing.T) {
	n := NewNode()
	n.InvalidateSelf(box(0, 0, 10, 10))
	n.ValidateBounds()

	fired := 0
	n.BoundsChanged.Listen(func(math32.Box2) { fired++ })

	n.InvalidateSelf(box(0, 0, 10+BoundsEpsilon/2, 10))
	n.ValidateBounds()
	assert.Equal(t, 0, fired, "sub-epsilon changes must not notify")
}

func TestSubEpsilonChangesLatch(t *testing.T) {
	n := NewNode()
	n.InvalidateSelf(box(0, 0, 10, 10))
	n.ValidateBounds()

	fired := 0
	n.SelfBoundsChanged.Listen(func(math32.Box2) { fired++ })

	// Each update is below the notification epsilon, but the cache must
	// still track the latest box exactly rather than discarding it, or
	// repeated sub-epsilon updates would drift away from the cache.
	last := math32.B2(0, 0, 10, 10)
	for i := 0; i < 4; i++ {
		last.Max.X += BoundsEpsilon / 2
		n.InvalidateSelf(&last)
	}
	assert.Equal(t, 0, fired)
	assert.Equal(t, last, n.SelfBounds())

	// The next real change reports the latched box as the old value.
	var old math32.Box2
	n.SelfBoundsChanged.Listen(func(b math32.Box2) { old = b })
	n.InvalidateSelf(box(0, 0, 20, 10))
	assert.Equal(t, 1, fired)
	assert.Equal(t, last, old)
}

func TestBoundsReentrantMutation(t *testing.T) {
	parent := NewNode()
	child := NewNode()
	parent.AddChild(child)
	child.InvalidateSelf(box(0, 0, 10, 10))

	// The first notification grows the child again; validation must run to
	// a fixed point within the same ValidateBounds call.
	reacted := false
	parent.BoundsChanged.Listen(func(math32.Box2) {
		if !reacted {
			reacted = true
			child.InvalidateSelf(box(0, 0, 30, 30))
		}
	})

	parent.ValidateBounds()
	assertBox(t, math32.B2(0, 0, 30, 30), parent.Bounds())

	// The second call must be a no-op producing identical boxes.
	before := parent.Bounds()
	parent.ValidateBounds()
	assertBox(t, before, parent.Bounds())
}

func TestMaxDimensionIdempotence(t *testing.T) {
	n := NewNode()
	n.InvalidateSelf(box(0, 0, 200, 50))
	n.SetMaxWidth(100)

	n.ValidateBounds()
	tolassert.Equal(t, 0.5, n.AppliedScale())
	assertBox(t, math32.B2(0, 0, 100, 25), n.Bounds())

	// Repeated validation must not compound the corrective scale.
	n.ValidateBounds()
	n.InvalidateSelf(nil)
	n.ValidateBounds()
	tolassert.Equal(t, 0.5, n.AppliedScale())
	assertBox(t, math32.B2(0, 0, 100, 25), n.Bounds())
}

func TestExcludeInvisibleChildren(t *testing.T) {
	parent := NewNode()
	shown := NewNode()
	hidden := NewNode()
	parent.AddChild(shown)
	parent.AddChild(hidden)
	shown.InvalidateSelf(box(0, 0, 10, 10))
	hidden.InvalidateSelf(box(0, 0, 100, 100))
	hidden.SetVisible(false)

	assertBox(t, math32.B2(0, 0, 100, 100), parent.Bounds())

	parent.SetExcludeInvisibleChildrenFromBounds(true)
	assertBox(t, math32.B2(0, 0, 10, 10), parent.Bounds())
}

func TestClipBounds(t *testing.T) {
	n := NewNode()
	n.InvalidateSelf(box(0, 0, 100, 100))
	n.SetClipArea(NewRect(0, 0, 30, 30))
	assertBox(t, math32.B2(0, 0, 30, 30), n.LocalBounds())
}

func TestLocalBoundsOverride(t *testing.T) {
	n := NewNode()
	n.InvalidateSelf(box(0, 0, 10, 10))
	n.SetLocalBoundsOverride(box(0, 0, 50, 50))
	assertBox(t, math32.B2(0, 0, 50, 50), n.LocalBounds())
	assertBox(t, math32.B2(0, 0, 50, 50), n.Bounds())

	// Content changes do not leak through the override.
	n.InvalidateSelf(box(0, 0, 99, 99))
	assertBox(t, math32.B2(0, 0, 50, 50), n.LocalBounds())

	n.SetLocalBoundsOverride(nil)
	assertBox(t, math32.B2(0, 0, 99, 99), n.LocalBounds())
}

func TestPreciseTransformedBounds(t *testing.T) {
	// A rotation and its inverse cancel exactly under the precise path;
	// the axis-aligned fast path would inflate the box at each level.
	parent := NewNode()
	child := NewNode()
	parent.AddChild(child)
	child.SetPainted(true)
	child.InvalidateSelf(box(0, 0, 10, 10))
	child.SetTransform(math32.Rotate2D(math32.Pi / 4))
	parent.SetTransform(math32.Rotate2D(-math32.Pi / 4))

	fast := parent.Bounds()
	assert.Greater(t, fast.Size().X, float32(10.1))

	parent.SetTransformBoundsPrecise(true)
	precise := parent.Bounds()
	tolassert.EqualTol(t, 10, precise.Size().X, 1.0e-3)
	tolassert.EqualTol(t, 10, precise.Size().Y, 1.0e-3)
}

func TestSelfBoundsFn(t *testing.T) {
	n := NewNode()
	extent := math32.B2(0, 0, 5, 5)
	n.SelfBoundsFn = func(*Node) math32.Box2 { return extent }

	n.InvalidateSelf(nil)
	assertBox(t, math32.B2(0, 0, 5, 5), n.SelfBounds())

	extent = math32.B2(0, 0, 8, 8)
	n.InvalidateSelf(nil)
	assertBox(t, math32.B2(0, 0, 8, 8), n.SelfBounds())
}
