// Package physics provides boolean overlap tests between circles, oriented
// boxes, segments and points.
//
// Every test treats shape boundaries as closed: exactly touching shapes
// overlap. Epsilon is added to each threshold to absorb float jitter.
package physics

import (
	"math"

	"github.com/tomz197/particles/internal/geom"
)

// Epsilon is the tolerance added to every comparison threshold.
const Epsilon = 1e-6

// CircleCircle reports whether two circles overlap.
func CircleCircle(a, b geom.Circle) bool {
	dist2 := a.Origin.Sub(b.Origin).Len2()
	radii := a.Radius + b.Radius
	return dist2 <= radii*radii+Epsilon
}

// CirclePoint reports whether p lies inside or on c.
func CirclePoint(c geom.Circle, p geom.Vec2) bool {
	return c.Origin.Distance(p) <= c.Radius+Epsilon
}

// CircleBox reports whether a circle and an oriented box overlap.
// The circle centre is moved into the box frame, where the box is an AABB,
// and clamped to it to find the closest point.
func CircleBox(c geom.Circle, b geom.OrientedBox) bool {
	local := geom.WorldToLocal(c.Origin, b.Origin, b.Rotation)
	half := b.HalfExtents()

	closest := geom.Vec2{
		X: geom.Clamp32(local.X, -half.X, half.X),
		Y: geom.Clamp32(local.Y, -half.Y, half.Y),
	}
	return local.Sub(closest).Len2() <= c.Radius*c.Radius+Epsilon
}

// BoxPoint reports whether p lies inside or on b.
func BoxPoint(b geom.OrientedBox, p geom.Vec2) bool {
	local := geom.WorldToLocal(p, b.Origin, b.Rotation)
	half := b.HalfExtents()

	// Box is centred on the local origin, so two abs checks cover all four sides.
	return geom.Abs32(local.X) <= half.X+Epsilon &&
		geom.Abs32(local.Y) <= half.Y+Epsilon
}

// BoxBox reports whether two oriented boxes overlap.
//
// Boxes sharing an orientation are compared as AABBs in a's frame.
// Otherwise the separating axis theorem is applied over the four face
// normals (two per box, since opposite edges are parallel).
func BoxBox(a, b geom.OrientedBox) bool {
	if geom.Abs32(a.Rotation-b.Rotation) < Epsilon {
		return alignedBoxBox(a, b)
	}
	return satBoxBox(a, b)
}

// alignedBoxBox is the Minkowski-sum interval test for boxes with equal rotation.
func alignedBoxBox(a, b geom.OrientedBox) bool {
	d := geom.WorldToLocal(b.Origin, a.Origin, a.Rotation)
	hw := (a.Width + b.Width) * 0.5
	hh := (a.Height + b.Height) * 0.5
	return geom.Abs32(d.X) <= hw+Epsilon && geom.Abs32(d.Y) <= hh+Epsilon
}

func satBoxBox(a, b geom.OrientedBox) bool {
	ca := a.WorldCorners()
	cb := b.WorldCorners()

	ax, ay := a.Axes()
	bx, by := b.Axes()

	for _, axis := range [4]geom.Vec2{ax, ay, bx, by} {
		if !AxisOverlaps(ca, cb, axis) {
			return false
		}
	}
	return true
}

// AxisOverlaps projects both corner sets onto axis and reports whether the
// resulting intervals overlap.
func AxisOverlaps(a, b [4]geom.Vec2, axis geom.Vec2) bool {
	aMin, aMax := project(a, axis)
	bMin, bMax := project(b, axis)
	return aMax >= bMin-Epsilon && bMax >= aMin-Epsilon
}

func project(corners [4]geom.Vec2, axis geom.Vec2) (lo, hi float32) {
	lo = float32(math.Inf(1))
	hi = float32(math.Inf(-1))
	for _, c := range corners {
		p := c.Dot(axis)
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return lo, hi
}

// Orientation returns the cross product of (b-a) and (c-a): positive when c
// is to the left of a->b, negative to the right, zero when collinear.
func Orientation(a, b, c geom.Vec2) float32 {
	return b.Sub(a).Cross(c.Sub(a))
}

// inBounds reports whether p lies in the bounding box of segment s.
func inBounds(s geom.Segment, p geom.Vec2) bool {
	minX, maxX := minMax(s.Start.X, s.End.X)
	minY, maxY := minMax(s.Start.Y, s.End.Y)
	return minX-Epsilon <= p.X && p.X <= maxX+Epsilon &&
		minY-Epsilon <= p.Y && p.Y <= maxY+Epsilon
}

func minMax(a, b float32) (float32, float32) {
	if a < b {
		return a, b
	}
	return b, a
}

// SegmentSegment reports whether two segments intersect.
//
// Non-parallel segments are solved parametrically. Parallel or collinear
// segments (including degenerate ones) fall back to checking whether any
// endpoint of one lies in the bounding box of the other.
func SegmentSegment(a, b geom.Segment) bool {
	d1 := a.Delta()
	d2 := b.Delta()
	cross := d1.Cross(d2)

	if geom.Abs32(cross) < Epsilon {
		return inBounds(a, b.Start) || inBounds(a, b.End) ||
			inBounds(b, a.Start) || inBounds(b, a.End)
	}

	d := b.Start.Sub(a.Start)
	t := d.Cross(d2) / cross
	u := d.Cross(d1) / cross

	return t >= -Epsilon && t <= 1+Epsilon &&
		u >= -Epsilon && u <= 1+Epsilon
}

// SegmentCircle reports whether a segment touches a circle. The closest
// point is clamped to the segment, not its infinite extension.
func SegmentCircle(s geom.Segment, c geom.Circle) bool {
	ab := s.Delta()
	abLen2 := ab.Len2()

	if abLen2 < Epsilon {
		return CirclePoint(c, s.Start)
	}

	t := c.Origin.Sub(s.Start).Dot(ab) / abLen2
	t = geom.Clamp32(t, 0, 1)

	closest := s.Start.Add(ab.Scale(t))
	return c.Origin.Sub(closest).Len2() <= c.Radius*c.Radius+Epsilon
}

// SegmentBox reports whether a segment touches an oriented box: either an
// endpoint is inside, or the segment crosses one of the four edges.
func SegmentBox(s geom.Segment, b geom.OrientedBox) bool {
	if BoxPoint(b, s.Start) || BoxPoint(b, s.End) {
		return true
	}
	for _, edge := range b.Edges() {
		if SegmentSegment(s, edge) {
			return true
		}
	}
	return false
}
