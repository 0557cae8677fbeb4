package object

import (
	"math"
	"testing"

	"github.com/tomz197/particles/internal/draw"
	"github.com/tomz197/particles/internal/geom"
)

func approx(a, b, eps float32) bool {
	return geom.Abs32(a-b) <= eps
}

func TestApplyForceDividesByMass(t *testing.T) {
	p := &Particle{Mass: 2}
	p.ApplyForce(geom.V(4, -2))
	if p.Velocity != geom.V(2, -1) {
		t.Fatalf("velocity = %v, want (2,-1)", p.Velocity)
	}
	if p.Position != (geom.Vec2{}) {
		t.Fatalf("ApplyForce moved the particle to %v", p.Position)
	}
}

func TestApplyGravityIsMassIndependent(t *testing.T) {
	light := &Particle{Mass: 1}
	heavy := &Particle{Mass: 50}
	g := geom.V(0, 9.8)

	light.ApplyGravity(g)
	heavy.ApplyGravity(g)

	if light.Velocity != g || !approx(heavy.Velocity.Y, 9.8, 1e-5) {
		t.Fatalf("light=%v heavy=%v, want both %v", light.Velocity, heavy.Velocity, g)
	}
}

func TestApplyDragOpposesVelocity(t *testing.T) {
	tests := []struct {
		name string
		mass float32
		want geom.Vec2
	}{
		{"unit mass", 1, geom.V(9, -4.5)},
		{"heavy slows less", 10, geom.V(9.9, -4.95)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Particle{Mass: tt.mass, Velocity: geom.V(10, -5)}
			p.ApplyDrag(0.1)
			if !approx(p.Velocity.X, tt.want.X, 1e-5) || !approx(p.Velocity.Y, tt.want.Y, 1e-5) {
				t.Errorf("velocity = %v, want %v", p.Velocity, tt.want)
			}
		})
	}
}

func TestAttractTo(t *testing.T) {
	p := &Particle{Mass: 1, Position: geom.V(0, 0)}
	p.AttractTo(geom.V(10, 0), 20)
	// strength/distance = 2 along +x
	if !approx(p.Velocity.X, 2, 1e-6) || p.Velocity.Y != 0 {
		t.Fatalf("velocity = %v, want (2,0)", p.Velocity)
	}

	p.Velocity = geom.Vec2{}
	p.RepelFrom(geom.V(10, 0), 20)
	if !approx(p.Velocity.X, -2, 1e-6) {
		t.Fatalf("repel velocity = %v, want (-2,0)", p.Velocity)
	}
}

func TestAttractToSkipsSingularity(t *testing.T) {
	p := &Particle{Mass: 1, Position: geom.V(5, 5)}
	p.AttractTo(geom.V(5, 5.00001), 1000)
	if p.Velocity != (geom.Vec2{}) {
		t.Fatalf("velocity = %v, want zero", p.Velocity)
	}
}

func TestTargetDistanceForce(t *testing.T) {
	point := geom.V(0, 0)

	tests := []struct {
		name string
		pos  geom.Vec2
		sign float32 // +1 towards point, -1 away, 0 none
	}{
		{"on ring", geom.V(50, 0), 0},
		{"outside ring", geom.V(80, 0), 1},
		{"inside ring", geom.V(20, 0), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := TargetDistanceForce(tt.pos, point, 2, 3, 0.5, 50)
			if !ok {
				t.Fatal("force should be defined")
			}
			towards := f.Dot(point.Sub(tt.pos).Normalize())
			switch {
			case tt.sign == 0 && f.Len() > 1e-6:
				t.Errorf("force magnitude on ring = %v, want 0", f.Len())
			case tt.sign > 0 && towards <= 0:
				t.Errorf("force %v should attract", f)
			case tt.sign < 0 && towards >= 0:
				t.Errorf("force %v should repel", f)
			}
		})
	}

	// G*m*M*(d-t)/d^2 = 0.5*2*3*30/6400
	f, _ := TargetDistanceForce(geom.V(80, 0), point, 2, 3, 0.5, 50)
	if !approx(f.Len(), 90.0/6400, 1e-6) {
		t.Fatalf("magnitude = %v, want %v", f.Len(), 90.0/6400)
	}

	if _, ok := TargetDistanceForce(point, point, 1, 1, 1, 10); ok {
		t.Fatal("force on the point itself should be undefined")
	}
}

func TestGravitateToDistanceAtEquilibrium(t *testing.T) {
	p := &Particle{Mass: 1, Position: geom.V(0, 30)}
	p.GravitateToDistance(geom.V(0, 0), 100, 1, 30)
	if p.Velocity.Len() > 1e-6 {
		t.Fatalf("velocity = %v, want zero on the equilibrium ring", p.Velocity)
	}
}

func TestForcesAccumulateBeforeIntegrate(t *testing.T) {
	p := &Particle{Mass: 1, Position: geom.V(1, 1)}
	p.ApplyForce(geom.V(6, 0))
	p.ApplyForce(geom.V(0, 12))
	if p.Position != geom.V(1, 1) {
		t.Fatalf("position changed before Integrate: %v", p.Position)
	}

	p.Integrate(0.5)
	if p.Position != geom.V(4, 7) {
		t.Fatalf("position = %v, want (4,7)", p.Position)
	}
}

func TestWrapScreen(t *testing.T) {
	tests := []struct {
		name string
		in   geom.Vec2
		want geom.Vec2
	}{
		{"inside", geom.V(50, 50), geom.V(50, 50)},
		{"left", geom.V(-3, 50), geom.V(102, 50)},
		{"right", geom.V(103, 50), geom.V(-2, 50)},
		{"top", geom.V(50, -2.5), geom.V(50, 82)},
		{"bottom", geom.V(50, 83), geom.V(50, -2)},
		{"on the edge stays", geom.V(-2, 50), geom.V(-2, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Particle{Mass: 1, Radius: 2, Position: tt.in}
			p.WrapScreen(100, 80)
			if p.Position != tt.want {
				t.Errorf("position = %v, want %v", p.Position, tt.want)
			}
		})
	}
}

func TestZeroMassPropagatesInf(t *testing.T) {
	p := &Particle{}
	p.ApplyForce(geom.V(1, 0))
	if !math.IsInf(float64(p.Velocity.X), 1) {
		t.Fatalf("velocity = %v, want +Inf", p.Velocity)
	}
}

func TestDrawCullsOutsideView(t *testing.T) {
	canvas := draw.NewScaledCanvas(10, 5, 100, 100)
	ctx := DrawContext{Canvas: canvas, View: NewScreen(100, 100)}

	outside := &Particle{Mass: 1, Radius: 3, Position: geom.V(200, 200), Color: 9}
	outside.Draw(ctx)
	if canvas.Count() != 0 {
		t.Fatalf("particle outside view set %d pixels", canvas.Count())
	}

	inside := &Particle{Mass: 1, Radius: 10, Position: geom.V(50, 50), Color: 9}
	inside.Draw(ctx)
	if canvas.Count() == 0 {
		t.Fatal("particle inside view drew nothing")
	}
}

func TestDrawHighlightsMarkerOverlap(t *testing.T) {
	canvas := draw.NewScaledCanvas(10, 5, 100, 100)
	ctx := DrawContext{
		Canvas:         canvas,
		View:           NewScreen(100, 100),
		Marker:         geom.Circle{Origin: geom.V(50, 50), Radius: 5},
		HighlightColor: 200,
	}

	p := &Particle{Mass: 1, Radius: 10, Position: geom.V(55, 50), Color: 9}
	p.Draw(ctx)

	x, y := canvas.LogicalToPixel(55, 50)
	if got := canvas.At(x, y); got != 200 {
		t.Fatalf("pixel colour = %d, want highlight 200", got)
	}
}
