// Package object holds the simulated point-mass entities and their drawing.
package object

import (
	"github.com/tomz197/particles/internal/geom"
	"github.com/tomz197/particles/internal/physics"
)

// singularityDistance is the distance below which point forces are skipped.
const singularityDistance = 1e-4

// Particle is a point mass with a display radius.
//
// Mass must be > 0. It is not checked here: force application divides by
// mass, and a zero mass silently produces Inf/NaN. sim.New validates it.
type Particle struct {
	Position geom.Vec2
	Velocity geom.Vec2
	Mass     float32
	Radius   float32
	Color    uint8 // ANSI-256 index, display only
}

// Circle returns the particle's extent.
func (p *Particle) Circle() geom.Circle {
	return geom.Circle{Origin: p.Position, Radius: p.Radius}
}

// ApplyForce adds f / mass to the velocity. Position is untouched until Integrate.
func (p *Particle) ApplyForce(f geom.Vec2) {
	p.Velocity = p.Velocity.Add(f.Scale(1 / p.Mass))
}

// ApplyGravity applies a uniform field g; the resulting acceleration does not
// depend on mass.
func (p *Particle) ApplyGravity(g geom.Vec2) {
	p.ApplyForce(g.Scale(p.Mass))
}

// ApplyDrag applies linear viscous drag -k*v. Heavier particles slow down
// more slowly under the same coefficient.
func (p *Particle) ApplyDrag(k float32) {
	p.ApplyForce(p.Velocity.Scale(-k))
}

// AttractTo pulls the particle towards point with magnitude strength/distance.
// Nothing happens when the particle sits on the point.
func (p *Particle) AttractTo(point geom.Vec2, strength float32) {
	dir := point.Sub(p.Position)
	dist := dir.Len()
	if dist < singularityDistance {
		return
	}
	p.ApplyForce(dir.Normalize().Scale(strength / dist))
}

// RepelFrom is AttractTo with the strength negated.
func (p *Particle) RepelFrom(point geom.Vec2, strength float32) {
	p.AttractTo(point, -strength)
}

// TargetDistanceForce returns the force G*m*M*(d-target)/d² acting on a
// particle of mass m at pos towards a point of mass M. It attracts beyond
// target, repels inside it and vanishes on the ring d == target.
// ok is false when pos is on the point.
func TargetDistanceForce(pos, point geom.Vec2, mass, pointMass, g, target float32) (f geom.Vec2, ok bool) {
	dir := point.Sub(pos)
	dist := dir.Len()
	if dist < singularityDistance {
		return geom.Vec2{}, false
	}
	norm := dir.Scale(1 / dist)
	magnitude := g * mass * pointMass * (dist - target) / (dist * dist)
	return norm.Scale(magnitude), true
}

// GravitateToDistance applies TargetDistanceForce towards point.
func (p *Particle) GravitateToDistance(point geom.Vec2, pointMass, g, target float32) {
	if f, ok := TargetDistanceForce(p.Position, point, p.Mass, pointMass, g, target); ok {
		p.ApplyForce(f)
	}
}

// Integrate advances the position by velocity*dt (explicit Euler).
func (p *Particle) Integrate(dt float32) {
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
}

// WrapScreen moves a particle that fully left the screen to the opposite side.
func (p *Particle) WrapScreen(width, height float32) {
	r := p.Radius
	switch {
	case p.Position.X < -r:
		p.Position.X = width + r
	case p.Position.X > width+r:
		p.Position.X = -r
	}
	switch {
	case p.Position.Y < -r:
		p.Position.Y = height + r
	case p.Position.Y > height+r:
		p.Position.Y = -r
	}
}

// Draw renders the particle as a filled disc, plus a velocity arrow when
// enabled. Particles and arrows outside the view are skipped.
func (p *Particle) Draw(ctx DrawContext) {
	if ctx.Canvas == nil {
		return
	}
	view := ctx.View.Box()
	body := p.Circle()

	if physics.CircleBox(body, view) {
		color := p.Color
		if ctx.Marker.Radius > 0 && physics.CircleCircle(body, ctx.Marker) {
			color = ctx.HighlightColor
		}
		ctx.Canvas.FillCircle(body, color)
	}

	if !ctx.Arrows || p.Velocity.IsZero() {
		return
	}
	shaft, left, right := geom.Arrow(p.Position, p.Velocity, ctx.ArrowLength)
	if !physics.SegmentBox(shaft, view) {
		return
	}
	ctx.Canvas.DrawSegment(shaft, p.Color)
	ctx.Canvas.DrawSegment(left, p.Color)
	ctx.Canvas.DrawSegment(right, p.Color)
}

var _ Drawable = (*Particle)(nil)
