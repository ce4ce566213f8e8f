// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/scenic-ui/scenic/math32"

// Shape is a hit region in a node's local coordinates. Shapes serve as
// custom mouse/touch hit areas (overriding self-bounds for hit-testing
// only), as clip regions, and as precise self-containment tests for
// painted content.
type Shape interface {
	// Contains reports whether the given local-coordinate point
	// lies inside the shape.
	Contains(p math32.Vector2) bool

	// Bounds returns the axis-aligned bounding box of the shape.
	Bounds() math32.Box2
}

// Rect is an axis-aligned rectangular [Shape].
type Rect struct {
	Box math32.Box2
}

// NewRect returns a rectangular shape spanning the given coordinates.
func NewRect(x0, y0, x1, y1 float32) Rect {
	return Rect{Box: math32.B2(x0, y0, x1, y1)}
}

func (r Rect) Contains(p math32.Vector2) bool {
	return r.Box.ContainsPoint(p)
}

func (r Rect) Bounds() math32.Box2 {
	return r.Box
}

// Circle is a circular [Shape].
type Circle struct {
	Center math32.Vector2
	Radius float32
}

func (c Circle) Contains(p math32.Vector2) bool {
	d := p.Sub(c.Center)
	return d.LengthSquared() <= c.Radius*c.Radius
}

func (c Circle) Bounds() math32.Box2 {
	return math32.B2(c.Center.X-c.Radius, c.Center.Y-c.Radius,
		c.Center.X+c.Radius, c.Center.Y+c.Radius)
}

// Polygon is a convex polygon [Shape]. Points must define a convex polygon
// in either winding order.
type Polygon struct {
	Points []math32.Vector2
}

// Contains uses the cross-product sign test: the point must be on the same
// side of every edge.
func (pg Polygon) Contains(p math32.Vector2) bool {
	n := len(pg.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := pg.Points[i]
		b := pg.Points[(i+1)%n]
		cross := b.Sub(a).Cross(p.Sub(a))
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

func (pg Polygon) Bounds() math32.Box2 {
	b := math32.B2Empty()
	b.SetFromPoints(pg.Points)
	return b
}
