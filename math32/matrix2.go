// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix2 is a 3x2 affine transformation matrix in standard graphics
// (SVG-style) order, mapping local coordinates into parent coordinates:
//
//	x' = XX*x + XY*y + X0
//	y' = YX*x + YY*y + Y0
//
// Note that multiplication order is the *reverse* of "logical" order:
// Translate2D(1, 1).Mul(Rotate2D(a)) first rotates, then translates.
type Matrix2 struct {
	XX, YX, XY, YY, X0, Y0 float32
}

// Identity2 returns a new identity [Matrix2].
func Identity2() Matrix2 {
	return Matrix2{
		1, 0,
		0, 1,
		0, 0,
	}
}

// IsIdentity returns whether this matrix is the identity matrix.
func (m Matrix2) IsIdentity() bool {
	return m == Identity2()
}

// Translate2D returns a new [Matrix2] that translates by the given offsets.
func Translate2D(x, y float32) Matrix2 {
	return Matrix2{
		1, 0,
		0, 1,
		x, y,
	}
}

// Scale2D returns a new [Matrix2] that scales by the given factors.
func Scale2D(x, y float32) Matrix2 {
	return Matrix2{
		x, 0,
		0, y,
		0, 0,
	}
}

// Rotate2D returns a new [Matrix2] that rotates by the given angle in radians.
func Rotate2D(angle float32) Matrix2 {
	c := Cos(angle)
	s := Sin(angle)
	return Matrix2{
		c, s,
		-s, c,
		0, 0,
	}
}

// Mul returns this matrix multiplied by the other matrix, such that the
// resulting transform applies the other transform first and this one second.
func (m Matrix2) Mul(other Matrix2) Matrix2 {
	return Matrix2{
		XX: m.XX*other.XX + m.XY*other.YX,
		YX: m.YX*other.XX + m.YY*other.YX,
		XY: m.XX*other.XY + m.XY*other.YY,
		YY: m.YX*other.XY + m.YY*other.YY,
		X0: m.XX*other.X0 + m.XY*other.Y0 + m.X0,
		Y0: m.YX*other.X0 + m.YY*other.Y0 + m.Y0,
	}
}

// MulVector2AsPoint multiplies the given [Vector2] as a point by this matrix,
// including the translation factors.
func (m Matrix2) MulVector2AsPoint(v Vector2) Vector2 {
	return Vec2(m.XX*v.X+m.XY*v.Y+m.X0, m.YX*v.X+m.YY*v.Y+m.Y0)
}

// MulVector2AsVector multiplies the given [Vector2] as a vector by this
// matrix, without the translation factors.
func (m Matrix2) MulVector2AsVector(v Vector2) Vector2 {
	return Vec2(m.XX*v.X+m.XY*v.Y, m.YX*v.X+m.YY*v.Y)
}

// Translate returns this matrix with an additional translation applied first.
func (m Matrix2) Translate(x, y float32) Matrix2 {
	return m.Mul(Translate2D(x, y))
}

// Scale returns this matrix with an additional scale applied first.
func (m Matrix2) Scale(x, y float32) Matrix2 {
	return m.Mul(Scale2D(x, y))
}

// Rotate returns this matrix with an additional rotation applied first.
func (m Matrix2) Rotate(angle float32) Matrix2 {
	return m.Mul(Rotate2D(angle))
}

// Det returns the determinant of this matrix.
func (m Matrix2) Det() float32 {
	return m.XX*m.YY - m.XY*m.YX
}

// Inverse returns the inverse of this matrix. If the matrix is singular,
// it returns the identity.
func (m Matrix2) Inverse() Matrix2 {
	det := m.Det()
	if det == 0 {
		return Identity2()
	}
	inv := 1 / det
	return Matrix2{
		XX: m.YY * inv,
		YX: -m.YX * inv,
		XY: -m.XY * inv,
		YY: m.XX * inv,
		X0: (m.XY*m.Y0 - m.YY*m.X0) * inv,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) * inv,
	}
}

// ExtractRot extracts the rotation component from this matrix, in radians.
func (m Matrix2) ExtractRot() float32 {
	return Atan2(m.YX, m.XX)
}

// ExtractScale extracts the X and Y scale factors from this matrix.
func (m Matrix2) ExtractScale() (scx, scy float32) {
	scx = Hypot(m.XX, m.YX)
	scy = m.Det() / scx
	return
}

// IsAxisAligned returns whether this matrix has no rotation or shear
// component, so that transforming an axis-aligned box by it produces an
// exact axis-aligned box (no overshoot).
func (m Matrix2) IsAxisAligned() bool {
	return m.XY == 0 && m.YX == 0
}
