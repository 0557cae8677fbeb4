package object

import (
	"github.com/tomz197/particles/internal/draw"
	"github.com/tomz197/particles/internal/geom"
)

// Screen is the simulation viewport in world units.
type Screen struct {
	Width  float32
	Height float32
}

// NewScreen returns a viewport of the given size.
func NewScreen(width, height float32) Screen {
	return Screen{Width: width, Height: height}
}

// Center returns the middle of the viewport.
func (s Screen) Center() geom.Vec2 {
	return geom.Vec2{X: s.Width / 2, Y: s.Height / 2}
}

// Box returns the viewport as an unrotated box in world space.
func (s Screen) Box() geom.OrientedBox {
	return geom.OrientedBox{Origin: s.Center(), Width: s.Width, Height: s.Height}
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // Scaled canvas in world units
	View   Screen       // Visible area; anything outside is culled

	Arrows      bool    // Draw velocity arrows
	ArrowLength float32 // World units per arrow

	Marker         geom.Circle // Particles touching the marker are highlighted
	HighlightColor uint8
}

// Drawable is anything that can render itself onto a DrawContext.
type Drawable interface {
	Draw(ctx DrawContext)
}
