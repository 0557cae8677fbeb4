// Package scene renders a particle swarm and its heads-up display, and wraps a
// sim.State as a simulation the terminal loop can drive.
package scene

import (
	"github.com/tomz197/particles/internal/draw"
	"github.com/tomz197/particles/internal/geom"
	"github.com/tomz197/particles/internal/loop/config"
	"github.com/tomz197/particles/internal/object"
	"github.com/tomz197/particles/internal/physics"
	"github.com/tomz197/particles/internal/sim"
)

// Frame is everything needed to draw one picture of the swarm. It never
// aliases live simulation state.
type Frame struct {
	Particles []object.Particle
	Tick      uint64
	Attractor sim.Attractor
	Viewers   int
	Paused    bool
}

// Options describes the fixed parts of the picture.
type Options struct {
	View   object.Screen
	Ring   geom.Circle // Zero radius hides the ring
	Arrows bool
}

// OptionsFor derives render options from a simulation config.
func OptionsFor(cfg sim.Config) Options {
	view := object.NewScreen(cfg.Width, cfg.Height)
	return Options{
		View: view,
		Ring: geom.Circle{Origin: view.Center(), Radius: cfg.RingRadius},
	}
}

// Marker returns the rotating box drawn at the view centre for tick.
func Marker(view object.Screen, tick uint64) geom.OrientedBox {
	return geom.OrientedBox{
		Origin:   view.Center(),
		Rotation: float32(tick) * config.MarkerSpin,
		Width:    config.MarkerSize,
		Height:   config.MarkerSize,
	}
}

// Draw paints the ring, the centre marker and all particles onto canvas.
// The canvas is not cleared first.
func Draw(canvas *draw.Canvas, f Frame, opts Options) {
	if opts.Ring.Radius > 0 {
		canvas.DrawCircle(opts.Ring, config.RingColor)
	}

	marker := Marker(opts.View, f.Tick)
	if physics.BoxBox(marker, opts.View.Box()) {
		canvas.DrawBox(marker, config.MarkerColor, false)
	}

	ctx := object.DrawContext{
		Canvas:         canvas,
		View:           opts.View,
		Arrows:         opts.Arrows,
		ArrowLength:    config.ArrowLength,
		Marker:         geom.Circle{Origin: marker.Origin, Radius: config.MarkerSize / 2},
		HighlightColor: config.HighlightColor,
	}
	for i := range f.Particles {
		f.Particles[i].Draw(ctx)
	}
}

// CountInside returns how many particle centres lie within c.
func CountInside(particles []object.Particle, c geom.Circle) int {
	n := 0
	for i := range particles {
		if physics.CirclePoint(c, particles[i].Position) {
			n++
		}
	}
	return n
}
