package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ChunkWriter accumulates one frame of terminal output and writes it in
// network-sized chunks on Flush. Canvas.Render and the HUD both write into it,
// so a frame reaches the terminal in a single burst.
type ChunkWriter struct {
	buf    []byte
	bufw   *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to every WriteAt position.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		buf:    make([]byte, 0, 8192),
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends a cursor position sequence for 1-based canvas coordinates.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = append(cw.buf, strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10)...)
	cw.buf = append(cw.buf, ';')
	cw.buf = append(cw.buf, strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10)...)
	cw.buf = append(cw.buf, 'H')
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

// WriteString appends s.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

// WriteAt writes s starting at a 1-based canvas position.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf = append(cw.buf, s...)
}

// WriteBlockAt writes a multi-line block (such as a rendered lipgloss
// style) with each line starting at col.
func (cw *ChunkWriter) WriteBlockAt(col, row int, block string) {
	for i, line := range strings.Split(block, "\n") {
		cw.WriteAt(col, row+i, line)
	}
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return len(cw.buf)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the buffered frame to the underlying writer and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	err := writeChunked(cw.bufw, cw.buf)
	cw.buf = cw.buf[:0]
	if err != nil {
		return err
	}
	return cw.bufw.Flush()
}

// writeChunked writes data in pieces no larger than maxChunkSize.
func writeChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedTermSize returns a TermSizeFunc that always reports width x height.
func FixedTermSize(width, height int) TermSizeFunc {
	return func() (int, int, error) {
		return width, height, nil
	}
}

// FitTerminal clamps a terminal size to maxWidth x maxHeight and returns the
// offsets that centre the clamped area inside the terminal.
func FitTerminal(termWidth, termHeight, maxWidth, maxHeight int) (width, height, offsetCol, offsetRow int) {
	width = min(termWidth, maxWidth)
	height = min(termHeight, maxHeight)
	offsetCol = (termWidth - width) / 2
	offsetRow = (termHeight - height) / 2
	return
}

// Terminal control sequences.
const (
	clearScreen = "\033[H\033[2J"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	altScreenOn = "\033[?1049h"
	altScreenOf = "\033[?1049l"
)

// ClearScreen clears the terminal and moves the cursor to the top left.
func ClearScreen(w io.Writer) {
	_, _ = io.WriteString(w, clearScreen)
}

// EnterScreen switches to the alternate screen with the cursor hidden.
func EnterScreen(w io.Writer) {
	_, _ = io.WriteString(w, altScreenOn+hideCursor+clearScreen)
}

// LeaveScreen restores the cursor and the primary screen.
func LeaveScreen(w io.Writer) {
	_, _ = io.WriteString(w, showCursor+altScreenOf)
}
