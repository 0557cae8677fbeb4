// Package geom provides 2D vector math and the shape primitives used by the
// collision and particle packages.
package geom

import "math"

// normalizeEpsilon is the length below which a vector has no defined direction.
const normalizeEpsilon = 1e-8

// Vec2 is an immutable 2D vector. All operations return new values.
type Vec2 struct {
	X, Y float32
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float32 {
	return v.X*o.Y - v.Y*o.X
}

// Len2 returns the squared length. Use it when comparing distances to avoid the sqrt.
func (v Vec2) Len2() float32 {
	return v.Dot(v)
}

// Len returns the length (magnitude) of v.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.Len2())))
}

// Normalize returns the unit vector parallel to v, or the zero vector when
// |v| < 1e-8. Callers must treat a zero result as "no direction".
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < normalizeEpsilon {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Distance returns the distance between v and o.
func (v Vec2) Distance(o Vec2) float32 {
	return v.Sub(o).Len()
}

// Rotate rotates v counter-clockwise by angle radians about the origin.
//
//	x' = x*cos(a) - y*sin(a)
//	y' = x*sin(a) + y*cos(a)
func (v Vec2) Rotate(angle float32) Vec2 {
	s, c := sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// WorldToLocal converts p from world space into the frame centred on origin
// and rotated by rotation.
func WorldToLocal(p, origin Vec2, rotation float32) Vec2 {
	return p.Sub(origin).Rotate(-rotation)
}

// LocalToWorld converts p from the frame centred on origin and rotated by
// rotation back into world space. It is the inverse of WorldToLocal.
func LocalToWorld(p, origin Vec2, rotation float32) Vec2 {
	return p.Rotate(rotation).Add(origin)
}

func sincos(angle float32) (sin, cos float32) {
	s, c := math.Sincos(float64(angle))
	return float32(s), float32(c)
}

// Abs32 returns |x|.
func Abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

// Clamp32 limits x to [lo, hi].
func Clamp32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
