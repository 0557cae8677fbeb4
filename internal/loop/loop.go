// Package loop drives a simulation in a local terminal with the standard
// Input → Physics → Render cycle and a fixed physics timestep.
package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/particles/internal/draw"
	"github.com/tomz197/particles/internal/input"
	"github.com/tomz197/particles/internal/loop/config"
)

// Simulation is anything the loop can drive.
type Simulation interface {
	// Init prepares the initial state. It is called once before the first step.
	Init() error
	// Physics advances the state by dt seconds.
	Physics(dt float32)
	// Render draws the state onto canvas and flushes it through out.
	Render(canvas *draw.Canvas, out *draw.ChunkWriter) error
}

// Controller is implemented by simulations that react to keyboard input.
type Controller interface {
	HandleInput(in input.Input)
}

// Options configures Run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	FrameTime    time.Duration // Zero means config.ClientTargetFrameTime
}

// Run initializes sim and drives it until the user quits or r is closed.
func Run(sim Simulation, r *bufio.Reader, w io.Writer, opts Options) error {
	if err := sim.Init(); err != nil {
		return err
	}

	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	frameTime := opts.FrameTime
	if frameTime <= 0 {
		frameTime = config.ClientTargetFrameTime
	}

	stream := input.StartStream(r)

	draw.EnterScreen(w)
	defer draw.LeaveScreen(w)

	termWidth, termHeight, _ := sizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTerminal(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	out := draw.NewChunkWriter(w, offsetCol, offsetRow)

	acc := NewAccumulator(config.FixedDT, config.MaxStepsPerFrame)
	lastTime := time.Now()

	for {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream)
		if in.Quit {
			return nil
		}
		if c, ok := sim.(Controller); ok {
			c.HandleInput(in)
		}

		// ===== PHYSICS PHASE =====
		for n := acc.Advance(float32(delta.Seconds())); n > 0; n-- {
			sim.Physics(acc.Step())
		}

		// ===== RENDER PHASE =====
		if tw, th, err := sizeFunc(); err == nil {
			resize(canvas, out, tw, th)
		}
		canvas.Clear()
		if err := sim.Render(canvas, out); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}

// resize fits canvas and out to a new terminal size, clearing the terminal
// when the render area moves.
func resize(canvas *draw.Canvas, out *draw.ChunkWriter, termWidth, termHeight int) {
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTerminal(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	if renderWidth != canvas.TerminalWidth() || renderHeight != canvas.TerminalHeight() ||
		offsetCol != canvas.OffsetCol() || offsetRow != canvas.OffsetRow() {
		draw.ClearScreen(out)
		canvas.ForceRedraw()
	}
	canvas.Resize(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	out.SetOffset(offsetCol, offsetRow)
}
