// Package draw renders to a terminal using half-block characters, giving
// each character cell two vertically stacked pixels.
package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Each pixel holds an ANSI-256 colour index; 0 means unset.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []uint8 // Flat slice: [y * termWidth + x]
	prev           []uint8 // Pixels as last rendered, for diffing
	dirty          bool    // Forces a full redraw on next Render
	text           []bool  // Cells overwritten by text: [row * termWidth + col]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
	polyBuf   []float64 // Reusable buffer for scanline intersections
}

// NewScaledCanvas creates a canvas that maps logicalWidth x logicalHeight
// world units onto termWidth x termHeight terminal cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]uint8, subPixelHeight*termWidth)
		c.prev = make([]uint8, subPixelHeight*termWidth)
		c.text = make([]bool, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.dirty = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.dirty = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.dirty = true
}

// MarkTextDirty records that width cells starting at the 1-based canvas
// position (col, row) were overwritten by text, so the next Render repaints
// them even if their pixels did not change.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	row--
	if row < 0 || row >= c.termHeight {
		return
	}
	start := max(col-1, 0)
	end := min(col-1+width, c.termWidth)
	for x := start; x < end; x++ {
		c.text[row*c.termWidth+x] = true
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color uint8) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// At returns the colour at pixel (x, y), or 0 when out of range.
func (c *Canvas) At(x, y int) uint8 {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0
	}
	return c.pixels[y*c.termWidth+x]
}

// Count returns the number of set pixels.
func (c *Canvas) Count() int {
	n := 0
	for _, p := range c.pixels {
		if p != 0 {
			n++
		}
	}
	return n
}

// LogicalToPixel converts logical coordinates to pixel coordinates.
func (c *Canvas) LogicalToPixel(x, y float32) (px, py int) {
	return int(math.Round(float64(x) * c.scaleX)), int(math.Round(float64(y) * c.scaleY))
}

// SetFloat sets a pixel using logical coordinates.
func (c *Canvas) SetFloat(x, y float32, color uint8) {
	px, py := c.LogicalToPixel(x, y)
	c.setPixel(px, py, color)
}

// maxChunkSize is the largest single write, kept under a typical MTU so SSH
// frames stream smoothly.
const maxChunkSize = 1400

// Render writes the cells that changed since the previous Render, or all
// cells after a resize or ForceRedraw.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	full := c.dirty
	c.dirty = false

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			cell := row*c.termWidth + col
			stale := c.text[cell]
			c.text[cell] = false
			if !full && !stale && top == c.prev[topOffset+col] && bottom == c.prev[bottomOffset+col] {
				continue
			}
			if full && !stale && top == 0 && bottom == 0 {
				continue
			}
			c.writeCell(row, col, top, bottom)
		}
	}
	copy(c.prev, c.pixels)

	return writeChunked(w, []byte(c.renderBuf.String()))
}

// writeCell appends the escape sequence for one character cell.
func (c *Canvas) writeCell(row, col int, top, bottom uint8) {
	b := &c.renderBuf
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	b.WriteByte('H')

	switch {
	case top == 0 && bottom == 0:
		b.WriteRune(BlockEmpty)
		return
	case top != 0 && bottom != 0 && top != bottom:
		c.writeColor(38, top)
		c.writeColor(48, bottom)
		b.WriteRune(BlockUpperHalf)
	case top != 0 && bottom != 0:
		c.writeColor(38, top)
		b.WriteRune(BlockFull)
	case top != 0:
		c.writeColor(38, top)
		b.WriteRune(BlockUpperHalf)
	default:
		c.writeColor(38, bottom)
		b.WriteRune(BlockLowerHalf)
	}
	b.WriteString("\033[0m")
}

// writeColor appends an SGR 256-colour sequence; layer is 38 (fg) or 48 (bg).
func (c *Canvas) writeColor(layer int, color uint8) {
	b := &c.renderBuf
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	b.WriteString(";5;")
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(color), 10))
	b.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			buf.WriteString(cursor(top, left) + "┌" + line + "┐")
			buf.WriteString(cursor(bottom, left) + "└" + line + "┘")
		} else {
			buf.WriteString(cursor(top, c.offsetCol+1) + line)
			buf.WriteString(cursor(bottom, c.offsetCol+1) + line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			buf.WriteString(cursor(row, left) + "│" + cursor(row, right) + "│")
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func cursor(row, col int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
