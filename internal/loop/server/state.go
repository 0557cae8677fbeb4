package server

import (
	"strings"
	"unicode"

	"github.com/tomz197/particles/internal/object"
	"github.com/tomz197/particles/internal/sim"
)

// Snapshot is an immutable picture of the simulation taken between ticks.
// Each snapshot owns its particle slice, so a viewer may keep one for as
// long as it likes.
type Snapshot struct {
	Particles []object.Particle
	Tick      uint64
	Seed      int64
	Viewers   int
	Attractor sim.Attractor
	Config    sim.Config
}

// CommandKind identifies what a viewer asks the server to do.
type CommandKind int

const (
	CommandRelease CommandKind = iota // Stop attracting or repelling
	CommandAttract
	CommandRepel
	CommandReseed
)

func (k CommandKind) String() string {
	switch k {
	case CommandAttract:
		return "attract"
	case CommandRepel:
		return "repel"
	case CommandReseed:
		return "reseed"
	default:
		return "release"
	}
}

// Command is a viewer request applied by the server between ticks.
type Command struct {
	ViewerID int
	Kind     CommandKind
}

// ViewerHandle represents a viewer's connection to the server.
type ViewerHandle struct {
	ID       int
	Name     string
	EventsCh chan Event
	Shutdown <-chan struct{} // Closed once when the server begins shutting down

	mode    sim.Attractor
	modeSeq uint64 // When mode was last set; the newest non-off mode wins
}

// EventType identifies the type of viewer event.
type EventType int

const (
	EventReseeded EventType = iota
)

// Event is sent from the server to one viewer.
type Event struct {
	Type EventType
	Seed int64
	By   string
}

// SanitizeName drops control characters from a viewer name so it can be
// written to other viewers' terminals.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
}
