// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// It has to cover the terminal's initial auto-repeat delay.
const keyHoldDuration = 500 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool // q
	Attract bool // a, held
	Repel   bool // r, held
	Reset   bool // x, edge
	Arrows  bool // v, edge
	Pause   bool // space, edge
	Pressed []byte
}

// Any reports whether any byte arrived this frame.
func (i Input) Any() bool {
	return len(i.Pressed) > 0
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	attract time.Time
	repel   time.Time
}

// Stream delivers input bytes via a channel and tracks key state.
type Stream struct {
	ch    chan byte
	state keyState
	now   func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
}

// ReadInput drains all available bytes from the stream without blocking.
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	now := s.now()
	in := Input{Quit: closed, Pressed: buf}
	for i := 0; i < len(buf); i++ {
		// Skip CSI sequences (arrow keys etc.) so their final byte is not read as a key.
		if buf[i] == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			i += 2
			continue
		}
		applyByte(&in, &s.state, buf[i], now)
	}

	in.Attract = now.Sub(s.state.attract) < keyHoldDuration
	in.Repel = now.Sub(s.state.repel) < keyHoldDuration
	return in
}

// applyByte updates edge-triggered keys in in and held-key timestamps.
func applyByte(in *Input, state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A':
		state.attract = now
		state.repel = time.Time{}
	case 'r', 'R':
		state.repel = now
		state.attract = time.Time{}
	case 'x', 'X':
		in.Reset = true
	case 'v', 'V':
		in.Arrows = true
	case ' ':
		in.Pause = true
	}
}
