package sim

import (
	"math"
	"math/rand"

	"github.com/tomz197/particles/internal/geom"
	"github.com/tomz197/particles/internal/object"
)

// palette holds the ANSI-256 colours particles cycle through. 0 is reserved
// by the canvas for "unset".
var palette = []uint8{39, 45, 51, 87, 123, 159, 117, 81}

// gridColumns returns ceil(sqrt(n)), at least 1.
func gridColumns(n int) int {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}
	return cols
}

// layout places the particles at the centres of a ceil(sqrt(n))-column grid
// spanning the viewport, each offset by up to Jitter per axis.
func (s *State) layout(rng *rand.Rand) {
	n := len(s.particles)
	if n == 0 {
		return
	}
	cols := gridColumns(n)
	rows := (n + cols - 1) / cols

	cellW := s.cfg.Width / float32(cols)
	cellH := s.cfg.Height / float32(rows)

	for i := range s.particles {
		col := i % cols
		row := i / cols
		pos := geom.Vec2{
			X: (float32(col)+0.5)*cellW + jitter(rng, s.cfg.Jitter),
			Y: (float32(row)+0.5)*cellH + jitter(rng, s.cfg.Jitter),
		}
		s.particles[i] = object.Particle{
			Position: pos,
			Mass:     s.cfg.Mass,
			Radius:   s.cfg.Radius,
			Color:    palette[i%len(palette)],
		}
	}
}

// jitter returns a value in [-limit, limit).
func jitter(rng *rand.Rand, limit float32) float32 {
	if limit == 0 {
		return 0
	}
	return (rng.Float32()*2 - 1) * limit
}
