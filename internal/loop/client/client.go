// Package client renders the shared simulation for one connection and turns
// its keyboard input into server commands.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/particles/internal/draw"
	"github.com/tomz197/particles/internal/input"
	"github.com/tomz197/particles/internal/loop/config"
	"github.com/tomz197/particles/internal/loop/server"
	"github.com/tomz197/particles/internal/scene"
	"github.com/tomz197/particles/internal/sim"
)

// noticeSeconds is how long a reseed notice stays on screen.
const noticeSeconds = 3.0

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.SwarmServer
	handle       *server.ViewerHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	hud          *scene.HUD
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Name         string
	Renderer     *lipgloss.Renderer // Nil means scene.NewRenderer on the output
}

// NewClient creates a new client registered with the given server.
func NewClient(ss server.SwarmServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = scene.NewRenderer(w)
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTerminal(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	hud := scene.NewHUD(renderer)
	hud.SetLegend(scene.SharedLegend)

	return &Client{
		server:       ss,
		handle:       ss.RegisterViewer(opts.Name),
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		hud:          hud,
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the client loop. Blocks until the viewer quits, idles out, or
// the server goes away.
func (c *Client) Run() error {
	draw.EnterScreen(c.writer)
	defer draw.LeaveScreen(c.writer)
	defer c.server.UnregisterViewer(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.ViewState {
		case ViewWatching:
			c.updateWatchingState()
		case ViewShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// processInput reads input and forwards commands to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)
	c.applyInput(c.state.Input)
}

func (c *Client) applyInput(in input.Input) {
	if in.Any() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}
	if c.state.ViewState != ViewWatching {
		return
	}

	if mode := modeFor(in); mode != c.state.sentMode {
		c.server.Send(server.Command{ViewerID: c.handle.ID, Kind: commandFor(mode)})
		c.state.sentMode = mode
	}
	if in.Reset {
		c.server.Send(server.Command{ViewerID: c.handle.ID, Kind: server.CommandReseed})
	}
	if in.Arrows {
		c.state.Arrows = !c.state.Arrows
	}
}

func modeFor(in input.Input) sim.Attractor {
	switch {
	case in.Attract:
		return sim.AttractorPull
	case in.Repel:
		return sim.AttractorPush
	default:
		return sim.AttractorOff
	}
}

func commandFor(mode sim.Attractor) server.CommandKind {
	switch mode {
	case sim.AttractorPull:
		return server.CommandAttract
	case sim.AttractorPush:
		return server.CommandRepel
	default:
		return server.CommandRelease
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	if c.state.ViewState != ViewShutdown {
		select {
		case <-c.handle.Shutdown:
			c.state.ViewState = ViewShutdown
			c.state.shutdownTimer = config.ShutdownDisplaySeconds
		default:
		}
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventReseeded:
				c.state.notice = "reset by " + server.SanitizeName(event.By)
				c.state.noticeTimer = noticeSeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTerminal(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// updateWatchingState counts down the reseed notice.
func (c *Client) updateWatchingState() {
	if c.state.noticeTimer > 0 {
		c.state.noticeTimer -= c.state.delta.Seconds()
		if c.state.noticeTimer <= 0 {
			c.state.noticeTimer = 0
			c.state.notice = ""
		}
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
