package client

import (
	"time"

	"github.com/tomz197/particles/internal/input"
	"github.com/tomz197/particles/internal/sim"
)

// ViewState represents what a viewer is currently shown.
type ViewState int

const (
	ViewWatching ViewState = iota // Live simulation
	ViewShutdown                  // Server is shutting down
)

// ClientState holds per-viewer state. Each client has its own instance.
type ClientState struct {
	Input         input.Input
	ViewState     ViewState
	Arrows        bool          // Draw velocity arrows for this viewer
	Running       bool          // Client loop running
	sentMode      sim.Attractor // Last attractor mode sent to the server
	notice        string        // Short message shown under the status line
	noticeTimer   float64       // Seconds the notice stays visible
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the viewer is in the inactivity warning
	prevViewState ViewState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		ViewState: ViewWatching,
		Running:   true,
	}
}
