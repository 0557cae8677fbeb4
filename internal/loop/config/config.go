// Package config centralizes the driver parameters shared by the local
// terminal loop, the SSH server and its clients.
package config

import "time"

// View resolution - the simulated area in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 800
	ViewHeight = 600
)

// Max render resolution in terminal cells. Larger terminals get a centred,
// bordered render area.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Physics runs at a fixed step regardless of frame time.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
	FixedDT  = float32(1.0 / TickRate)

	// MaxStepsPerFrame bounds catch-up after a stall.
	MaxStepsPerFrame = 5
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Rendering
const (
	ArrowLength    = 24 // World units per velocity arrow
	MarkerSize     = 40 // Side of the rotating centre marker
	MarkerSpin     = 0.01
	HighlightColor = 214
	RingColor      = 240
	MarkerColor    = 203
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0
	ShutdownTimeout        = 10 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 240 // Seconds
	InactivityDisconnectUser = 300 // Seconds
)

// Commands buffered between server ticks.
const CommandBuffer = 64
