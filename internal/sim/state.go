// Package sim runs a fixed set of particles through pairwise spring forces,
// field forces and explicit Euler integration, one fixed tick at a time.
package sim

import (
	"math/rand"

	"github.com/tomz197/particles/internal/geom"
	"github.com/tomz197/particles/internal/object"
)

// Attractor selects the point force applied around the viewport centre.
type Attractor int

const (
	AttractorOff Attractor = iota
	AttractorPull
	AttractorPush
)

func (a Attractor) String() string {
	switch a {
	case AttractorPull:
		return "attract"
	case AttractorPush:
		return "repel"
	default:
		return "off"
	}
}

// State owns the particles of one simulation. It has a single writer: Tick
// must not run concurrently with Particles or any other method.
type State struct {
	cfg       Config
	screen    object.Screen
	particles []object.Particle
	attractor Attractor
	ticks     uint64
}

// New validates cfg and lays out cfg.Count particles on a jittered grid.
func New(cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &State{
		cfg:       cfg,
		screen:    object.NewScreen(cfg.Width, cfg.Height),
		particles: make([]object.Particle, cfg.Count),
	}
	s.layout(rand.New(rand.NewSource(cfg.Seed)))
	return s, nil
}

// Init builds a state with DefaultConfig for the given viewport and count.
func Init(width, height float32, count int) (*State, error) {
	cfg := DefaultConfig(width, height)
	cfg.Count = count
	return New(cfg)
}

// Config returns the configuration the state was built with.
func (s *State) Config() Config {
	return s.cfg
}

// Screen returns the viewport.
func (s *State) Screen() object.Screen {
	return s.screen
}

// Center returns the point the field forces act around.
func (s *State) Center() geom.Vec2 {
	return s.screen.Center()
}

// Len returns the number of particles.
func (s *State) Len() int {
	return len(s.particles)
}

// Ticks returns the number of completed ticks.
func (s *State) Ticks() uint64 {
	return s.ticks
}

// Particles returns a copy of the particles in their fixed order.
func (s *State) Particles() []object.Particle {
	return s.AppendParticles(make([]object.Particle, 0, len(s.particles)))
}

// AppendParticles appends the particles to dst and returns the extended slice.
func (s *State) AppendParticles(dst []object.Particle) []object.Particle {
	return append(dst, s.particles...)
}

// SetAttractor switches the point force at the centre.
func (s *State) SetAttractor(a Attractor) {
	s.attractor = a
}

// Attractor returns the current point force mode.
func (s *State) Attractor() Attractor {
	return s.attractor
}

// Reseed lays the particles out again with a new seed, clearing velocities.
func (s *State) Reseed(seed int64) {
	s.cfg.Seed = seed
	s.layout(rand.New(rand.NewSource(seed)))
}

// Tick advances the simulation by dt. All velocity changes of the tick are
// accumulated before any position moves, so every force sees the same
// positions.
func (s *State) Tick(dt float32) {
	s.pairPass()
	s.fieldPass()
	s.integratePass(dt)
	s.ticks++
}
