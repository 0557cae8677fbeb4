// Package server runs one shared simulation for many viewers. A single
// goroutine owns the simulation state; viewers only ever see snapshots
// published between ticks.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/particles/internal/loop"
	"github.com/tomz197/particles/internal/loop/config"
	"github.com/tomz197/particles/internal/sim"
)

// SwarmServer is the interface viewers use to talk to the server.
type SwarmServer interface {
	RegisterViewer(name string) *ViewerHandle
	UnregisterViewer(viewerID int)
	Send(cmd Command)
	Snapshot() *Snapshot
}

// Server owns the shared simulation and applies viewer commands between ticks.
type Server struct {
	state        *sim.State
	logger       *log.Logger
	snapshot     atomic.Pointer[Snapshot]
	viewers      map[int]*ViewerHandle
	nextViewerID int
	commandCh    chan Command
	registerCh   chan *ViewerHandle
	unregisterCh chan int
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	modeSeq      uint64
}

var _ SwarmServer = (*Server)(nil)

// NewServer validates cfg and builds the shared simulation.
func NewServer(cfg sim.Config, logger *log.Logger) (*Server, error) {
	state, err := sim.New(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		state:        state,
		logger:       logger,
		viewers:      make(map[int]*ViewerHandle),
		nextViewerID: 1,
		commandCh:    make(chan Command, config.CommandBuffer),
		registerCh:   make(chan *ViewerHandle, 16),
		unregisterCh: make(chan int, 16),
		shutdownCh:   make(chan struct{}),
	}
	s.publish()
	return s, nil
}

// Run ticks the simulation at the fixed rate until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	acc := loop.NewAccumulator(config.FixedDT, config.MaxStepsPerFrame)
	ticker := time.NewTicker(config.TickTime)
	defer ticker.Stop()

	s.logger.Info("simulation started", "particles", s.state.Len(), "tick", config.TickTime)
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("simulation stopped", "ticks", s.state.Ticks())
			return
		case now := <-ticker.C:
			steps := acc.Advance(float32(now.Sub(lastTime).Seconds()))
			lastTime = now
			s.step(steps, acc.Step())
		}
	}
}

// step applies pending registrations and commands, advances the simulation
// and publishes a snapshot.
func (s *Server) step(steps int, dt float32) {
	s.processRegistrations()
	s.processCommands()
	for ; steps > 0; steps-- {
		s.state.Tick(dt)
	}
	s.publish()
}

// Shutdown notifies all viewers and waits for them to disconnect, up to
// timeout. The caller should cancel the Run context afterwards.
func (s *Server) Shutdown(timeout time.Duration) {
	s.shutdownOnce.Do(func() { close(s.shutdownCh) })

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "viewers", s.viewerCount())
			return
		case <-ticker.C:
			if s.viewerCount() == 0 {
				return
			}
		}
	}
}

// RegisterViewer registers a viewer and returns its handle. The viewer shows
// up in snapshots after the next tick. Control characters are stripped from
// name.
func (s *Server) RegisterViewer(name string) *ViewerHandle {
	s.mu.Lock()
	id := s.nextViewerID
	s.nextViewerID++
	s.mu.Unlock()

	handle := &ViewerHandle{
		ID:       id,
		Name:     SanitizeName(name),
		EventsCh: make(chan Event, 16),
		Shutdown: s.shutdownCh,
	}
	s.registerCh <- handle
	return handle
}

// UnregisterViewer removes a viewer. Its events channel is closed on the next tick.
func (s *Server) UnregisterViewer(viewerID int) {
	s.unregisterCh <- viewerID
}

// Send queues a command for the next tick. Commands are dropped when the
// queue is full.
func (s *Server) Send(cmd Command) {
	select {
	case s.commandCh <- cmd:
	default:
	}
}

// Snapshot returns the most recently published snapshot.
func (s *Server) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

func (s *Server) viewerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.viewers)
}

// processRegistrations handles pending viewer registrations and removals.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.viewers[handle.ID] = handle
			n := len(s.viewers)
			s.mu.Unlock()
			s.logger.Info("viewer joined", "id", handle.ID, "name", handle.Name, "viewers", n)
		case id := <-s.unregisterCh:
			s.mu.Lock()
			handle, ok := s.viewers[id]
			if ok {
				close(handle.EventsCh)
				delete(s.viewers, id)
			}
			n := len(s.viewers)
			s.mu.Unlock()
			if ok {
				s.logger.Info("viewer left", "id", id, "name", handle.Name, "viewers", n)
				s.updateAttractor()
			}
		default:
			return
		}
	}
}

// processCommands drains the command queue.
func (s *Server) processCommands() {
	for {
		select {
		case cmd := <-s.commandCh:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *Server) apply(cmd Command) {
	s.mu.RLock()
	handle, ok := s.viewers[cmd.ViewerID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	switch cmd.Kind {
	case CommandReseed:
		seed := s.state.Config().Seed + 1
		s.state.Reseed(seed)
		s.logger.Info("reseeded", "seed", seed, "by", handle.Name)
		s.broadcast(Event{Type: EventReseeded, Seed: seed, By: handle.Name})
	case CommandAttract, CommandRepel, CommandRelease:
		s.modeSeq++
		handle.mode = attractorFor(cmd.Kind)
		handle.modeSeq = s.modeSeq
		s.updateAttractor()
	}
}

// updateAttractor sets the point force to the newest non-off viewer mode.
func (s *Server) updateAttractor() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mode := sim.AttractorOff
	var newest uint64
	for _, handle := range s.viewers {
		if handle.mode != sim.AttractorOff && handle.modeSeq > newest {
			mode = handle.mode
			newest = handle.modeSeq
		}
	}
	s.state.SetAttractor(mode)
}

func attractorFor(kind CommandKind) sim.Attractor {
	switch kind {
	case CommandAttract:
		return sim.AttractorPull
	case CommandRepel:
		return sim.AttractorPush
	default:
		return sim.AttractorOff
	}
}

func (s *Server) broadcast(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.viewers {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// publish stores a fresh snapshot of the simulation.
func (s *Server) publish() {
	cfg := s.state.Config()
	s.snapshot.Store(&Snapshot{
		Particles: s.state.Particles(),
		Tick:      s.state.Ticks(),
		Seed:      cfg.Seed,
		Viewers:   s.viewerCount(),
		Attractor: s.state.Attractor(),
		Config:    cfg,
	})
}
