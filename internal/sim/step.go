package sim

import "github.com/tomz197/particles/internal/geom"

// minPairDistance guards the pair direction against coincident particles.
const minPairDistance = 1e-4

// pairPass applies a spring force G*(d-rest) between every pair within the
// cutoff. The loop does not allocate.
func (s *State) pairPass() {
	cutoff2 := s.cfg.Cutoff * s.cfg.Cutoff
	g := s.cfg.G
	rest := s.cfg.RestDistance
	ps := s.particles

	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := ps[j].Position.Sub(ps[i].Position)
			if d.Len2() > cutoff2 {
				continue
			}
			f, ok := pairForce(d, g, rest)
			if !ok {
				continue
			}
			ps[i].ApplyForce(f)
			if s.cfg.Reciprocal {
				ps[j].ApplyForce(f.Neg())
			}
		}
	}
}

// pairForce returns the spring force on the first particle of a pair
// separated by d (pointing from it to the second).
func pairForce(d geom.Vec2, g, rest float32) (geom.Vec2, bool) {
	dist := d.Len()
	if dist < minPairDistance {
		return geom.Vec2{}, false
	}
	return d.Scale((dist - rest) * g / dist), true
}

// fieldPass applies, per particle: the centering spring, the ring, the
// attractor, uniform gravity, then drag.
func (s *State) fieldPass() {
	c := s.cfg
	center := s.Center()

	for i := range s.particles {
		p := &s.particles[i]

		if c.CenterPull != 0 {
			p.ApplyForce(center.Sub(p.Position).Scale(c.CenterPull))
		}
		if c.RingRadius > 0 {
			p.GravitateToDistance(center, c.RingMass, c.G, c.RingRadius)
		}
		switch s.attractor {
		case AttractorPull:
			p.AttractTo(center, c.PointStrength)
		case AttractorPush:
			p.RepelFrom(center, c.PointStrength)
		}
		if !c.Gravity.IsZero() {
			p.ApplyGravity(c.Gravity)
		}
		p.ApplyDrag(c.Drag)
	}
}

// integratePass moves every particle by its velocity.
func (s *State) integratePass(dt float32) {
	for i := range s.particles {
		p := &s.particles[i]
		p.Integrate(dt)
		if s.cfg.Wrap {
			p.WrapScreen(s.cfg.Width, s.cfg.Height)
		}
	}
}
