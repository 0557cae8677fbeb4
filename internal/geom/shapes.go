package geom

// Circle is a disc with a centre and radius >= 0.
type Circle struct {
	Origin Vec2
	Radius float32
}

// OrientedBox is a rectangle centred on Origin, rotated counter-clockwise by
// Rotation radians.
type OrientedBox struct {
	Origin        Vec2
	Rotation      float32
	Width, Height float32
}

// Segment is a line segment. Start == End is a valid, degenerate segment.
type Segment struct {
	Start, End Vec2
}

// Corner indices, in local space before rotation.
const (
	CornerTL = iota
	CornerTR
	CornerBR
	CornerBL
)

// HalfExtents returns (w/2, h/2).
func (b OrientedBox) HalfExtents() Vec2 {
	return Vec2{b.Width * 0.5, b.Height * 0.5}
}

// LocalCorners returns the unrotated half-extent corners (±w/2, ±h/2) in the
// box's local frame, ordered TL, TR, BR, BL.
func (b OrientedBox) LocalCorners() [4]Vec2 {
	hw := b.Width * 0.5
	hh := b.Height * 0.5
	return [4]Vec2{
		{-hw, -hh}, // TL
		{hw, -hh},  // TR
		{hw, hh},   // BR
		{-hw, hh},  // BL
	}
}

// Corners returns LocalCorners rotated by the box rotation but not translated.
// A rotation of exactly zero skips the trig entirely.
func (b OrientedBox) Corners() [4]Vec2 {
	corners := b.LocalCorners()
	if b.Rotation == 0 {
		return corners
	}

	s, c := sincos(b.Rotation)
	for i, p := range corners {
		corners[i] = Vec2{p.X*c - p.Y*s, p.X*s + p.Y*c}
	}
	return corners
}

// WorldCorners returns the corners in world space: rotated, then translated
// by the box origin.
func (b OrientedBox) WorldCorners() [4]Vec2 {
	corners := b.Corners()
	for i := range corners {
		corners[i] = corners[i].Add(b.Origin)
	}
	return corners
}

// Edges returns the four world-space edges, each running from corner i to i+1.
func (b OrientedBox) Edges() [4]Segment {
	c := b.WorldCorners()
	var edges [4]Segment
	for i := range c {
		edges[i] = Segment{Start: c[i], End: c[(i+1)%4]}
	}
	return edges
}

// Axes returns the box's two local unit axes in world space.
func (b OrientedBox) Axes() (x, y Vec2) {
	s, c := sincos(b.Rotation)
	return Vec2{c, s}, Vec2{-s, c}
}

// Delta returns End - Start.
func (s Segment) Delta() Vec2 {
	return s.End.Sub(s.Start)
}

// Len returns the segment length.
func (s Segment) Len() float32 {
	return s.Delta().Len()
}

// IsDegenerate reports whether both endpoints coincide.
func (s Segment) IsDegenerate() bool {
	return s.Start == s.End
}

// Arrow head wing geometry.
const (
	arrowWingAngle = 0.4
	arrowWingRatio = 0.25
)

// Arrow returns the shaft and the two wings of an arrow of the given length
// pointing along dir from origin. A zero dir yields degenerate segments at origin.
func Arrow(origin, dir Vec2, length float32) (shaft, left, right Segment) {
	d := dir.Normalize()
	tip := origin.Add(d.Scale(length))
	back := d.Scale(-length * arrowWingRatio)

	shaft = Segment{Start: origin, End: tip}
	left = Segment{Start: tip, End: tip.Add(back.Rotate(arrowWingAngle))}
	right = Segment{Start: tip, End: tip.Add(back.Rotate(-arrowWingAngle))}
	return shaft, left, right
}
