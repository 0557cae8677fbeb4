package scene

import (
	"github.com/tomz197/particles/internal/draw"
	"github.com/tomz197/particles/internal/input"
	"github.com/tomz197/particles/internal/loop"
	"github.com/tomz197/particles/internal/object"
	"github.com/tomz197/particles/internal/sim"
)

// Swarm drives a single sim.State for a local terminal.
type Swarm struct {
	cfg    sim.Config
	state  *sim.State
	hud    *HUD
	opts   Options
	paused bool
	buf    []object.Particle
}

var (
	_ loop.Simulation = (*Swarm)(nil)
	_ loop.Controller = (*Swarm)(nil)
)

// NewSwarm returns a swarm for cfg. Init must be called before use.
func NewSwarm(cfg sim.Config, hud *HUD) *Swarm {
	return &Swarm{cfg: cfg, hud: hud, opts: OptionsFor(cfg)}
}

// Init builds the simulation state.
func (s *Swarm) Init() error {
	state, err := sim.New(s.cfg)
	if err != nil {
		return err
	}
	s.state = state
	s.paused = false
	return nil
}

// Physics advances the simulation by one fixed step unless paused.
func (s *Swarm) Physics(dt float32) {
	if s.paused {
		return
	}
	s.state.Tick(dt)
}

// HandleInput applies keyboard commands.
func (s *Swarm) HandleInput(in input.Input) {
	switch {
	case in.Attract:
		s.state.SetAttractor(sim.AttractorPull)
	case in.Repel:
		s.state.SetAttractor(sim.AttractorPush)
	default:
		s.state.SetAttractor(sim.AttractorOff)
	}
	if in.Reset {
		s.state.Reseed(s.state.Config().Seed + 1)
	}
	if in.Arrows {
		s.opts.Arrows = !s.opts.Arrows
	}
	if in.Pause {
		s.paused = !s.paused
	}
}

// Render draws the current state and HUD.
func (s *Swarm) Render(canvas *draw.Canvas, out *draw.ChunkWriter) error {
	s.buf = s.state.AppendParticles(s.buf[:0])
	f := s.frame()
	Draw(canvas, f, s.opts)
	if err := canvas.Render(out); err != nil {
		return err
	}
	if err := canvas.RenderBorder(out); err != nil {
		return err
	}
	if s.hud != nil {
		s.hud.Write(out, canvas, f, s.ringCount())
	}
	return nil
}

func (s *Swarm) frame() Frame {
	return Frame{
		Particles: s.buf,
		Tick:      s.state.Ticks(),
		Attractor: s.state.Attractor(),
		Viewers:   1,
		Paused:    s.paused,
	}
}

func (s *Swarm) ringCount() int {
	if s.opts.Ring.Radius <= 0 {
		return -1
	}
	return CountInside(s.buf, s.opts.Ring)
}

// State exposes the underlying simulation.
func (s *Swarm) State() *sim.State {
	return s.state
}
