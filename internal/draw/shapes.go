package draw

import (
	"math"
	"sort"

	"github.com/tomz197/particles/internal/geom"
)

// DrawSegment draws a segment using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawSegment(s geom.Segment, color uint8) {
	x1, y1 := c.LogicalToPixel(s.Start.X, s.Start.Y)
	x2, y2 := c.LogicalToPixel(s.End.X, s.End.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, color)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillCircle fills a circle. Because the axes scale differently it is drawn
// as an ellipse in pixel space. The centre pixel is always set so tiny
// circles stay visible.
func (c *Canvas) FillCircle(circle geom.Circle, color uint8) {
	cx := float64(circle.Origin.X) * c.scaleX
	cy := float64(circle.Origin.Y) * c.scaleY
	rx := float64(circle.Radius) * c.scaleX
	ry := float64(circle.Radius) * c.scaleY

	c.setPixel(int(math.Round(cx)), int(math.Round(cy)), color)
	if rx <= 0 || ry <= 0 {
		return
	}

	for py := int(math.Floor(cy - ry)); py <= int(math.Ceil(cy+ry)); py++ {
		ny := (float64(py) - cy) / ry
		for px := int(math.Floor(cx - rx)); px <= int(math.Ceil(cx+rx)); px++ {
			nx := (float64(px) - cx) / rx
			if nx*nx+ny*ny <= 1 {
				c.setPixel(px, py, color)
			}
		}
	}
}

// DrawCircle draws a circle outline as a closed polygon.
func (c *Canvas) DrawCircle(circle geom.Circle, color uint8) {
	const steps = 32
	prev := circle.Origin.Add(geom.V(circle.Radius, 0))
	for i := 1; i <= steps; i++ {
		angle := float32(i) * 2 * math.Pi / steps
		next := circle.Origin.Add(geom.V(circle.Radius, 0).Rotate(angle))
		c.DrawSegment(geom.Segment{Start: prev, End: next}, color)
		prev = next
	}
}

// DrawBox draws an oriented box, filled or as an outline.
func (c *Canvas) DrawBox(b geom.OrientedBox, color uint8, filled bool) {
	corners := b.WorldCorners()
	c.DrawPolygon(corners[:], color, filled)
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []geom.Vec2, color uint8, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, color)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawSegment(geom.Segment{Start: points[i], End: points[(i+1)%n]}, color)
	}
}

// fillPolygon fills a polygon using scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []geom.Vec2, color uint8) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		y := float64(p.Y) * c.scaleY
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	n := len(points)
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.polyBuf[:0]

		for i := 0; i < n; i++ {
			x1, y1 := float64(points[i].X)*c.scaleX, float64(points[i].Y)*c.scaleY
			j := (i + 1) % n
			x2, y2 := float64(points[j].X)*c.scaleX, float64(points[j].Y)*c.scaleY

			if (y1 <= scanY && y2 > scanY) || (y2 <= scanY && y1 > scanY) {
				t := (scanY - y1) / (y2 - y1)
				xs = append(xs, x1+t*(x2-x1))
			}
		}
		c.polyBuf = xs

		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y, color)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
