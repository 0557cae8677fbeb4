package client

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/particles/internal/loop/config"
	"github.com/tomz197/particles/internal/scene"
)

// drawFrame draws the latest server snapshot and the overlays for the
// current view state.
func (c *Client) drawFrame() error {
	// Overlays disappear without a trace only after a full clear.
	stateChanged := c.state.ViewState != c.state.prevViewState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevViewState = c.state.ViewState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snap := c.server.Snapshot()
	frame := scene.Frame{
		Particles: snap.Particles,
		Tick:      snap.Tick,
		Attractor: snap.Attractor,
		Viewers:   snap.Viewers,
	}
	opts := scene.OptionsFor(snap.Config)
	opts.Arrows = c.state.Arrows

	scene.Draw(c.canvas, frame, opts)
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	inRing := -1
	if opts.Ring.Radius > 0 {
		inRing = scene.CountInside(snap.Particles, opts.Ring)
	}
	c.drawUI(frame, inRing)

	return c.chunkWriter.Flush()
}

// drawUI draws the HUD and any full-screen notice.
func (c *Client) drawUI(frame scene.Frame, inRing int) {
	switch {
	case c.state.ViewState == ViewShutdown:
		c.drawShutdownScreen()
	case c.state.isInactive:
		c.drawInactivityScreen()
	default:
		c.hud.Write(c.chunkWriter, c.canvas, frame, inRing)
		if c.state.notice != "" {
			c.chunkWriter.WriteAt(2, 2, c.state.notice)
			c.canvas.MarkTextDirty(2, 2, lipgloss.Width(c.state.notice))
		}
	}
}

// drawInactivityScreen draws the inactivity warning.
func (c *Client) drawInactivityScreen() {
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	box := c.hud.Notice("INACTIVITY WARNING",
		fmt.Sprintf("You will be disconnected in %3d seconds.", remaining),
		"Press any key to continue")
	scene.WriteCentered(c.chunkWriter, c.canvas, box)
}

// drawShutdownScreen draws the server shutdown notification.
func (c *Client) drawShutdownScreen() {
	box := c.hud.Notice("SERVER SHUTTING DOWN",
		"Please reconnect in a moment.",
		fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1),
		"Press Q to disconnect now")
	scene.WriteCentered(c.chunkWriter, c.canvas, box)
}
