package scene

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tomz197/particles/internal/draw"
)

// statusWidth pads the status line so a shorter line overwrites a longer one.
const statusWidth = 80

// Key legends. Pause only exists in the local simulation.
const (
	LocalLegend  = "a attract  r repel  x reset  v arrows  space pause  q quit"
	SharedLegend = "a attract  r repel  x reset  v arrows  q quit"
)

// NewRenderer returns a lipgloss renderer for w using the 256-colour
// profile the canvas already assumes.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
}

// HUD formats the status and key legend lines drawn over the canvas.
type HUD struct {
	label  lipgloss.Style
	value  lipgloss.Style
	mode   map[string]lipgloss.Style
	status lipgloss.Style
	legend lipgloss.Style
	notice lipgloss.Style
	title  lipgloss.Style
	keys   string
	sb     strings.Builder
}

// NewHUD builds the HUD styles on r.
func NewHUD(r *lipgloss.Renderer) *HUD {
	return &HUD{
		label: r.NewStyle().Foreground(lipgloss.Color("245")),
		value: r.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		mode: map[string]lipgloss.Style{
			"off":     r.NewStyle().Foreground(lipgloss.Color("245")),
			"attract": r.NewStyle().Foreground(lipgloss.Color("45")).Bold(true),
			"repel":   r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		status: r.NewStyle().Width(statusWidth),
		legend: r.NewStyle().Foreground(lipgloss.Color("240")),
		notice: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("45")).
			Padding(0, 2).
			Align(lipgloss.Center),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		keys:  LocalLegend,
	}
}

// SetLegend replaces the key legend.
func (h *HUD) SetLegend(keys string) {
	h.keys = keys
}

// Status returns the one-line summary of f. inRing < 0 omits the ring count.
func (h *HUD) Status(f Frame, inRing int) string {
	h.sb.Reset()
	h.field("particles", strconv.Itoa(len(f.Particles)))
	h.field("tick", strconv.FormatUint(f.Tick, 10))
	if inRing >= 0 {
		h.field("ring", strconv.Itoa(inRing))
	}
	mode := f.Attractor.String()
	h.sb.WriteString(h.label.Render("mode"))
	h.sb.WriteByte(' ')
	h.sb.WriteString(h.mode[mode].Render(mode))
	if f.Viewers > 1 {
		h.sb.WriteString("  ")
		h.field("viewers", strconv.Itoa(f.Viewers))
	}
	if f.Paused {
		h.sb.WriteString("  ")
		h.sb.WriteString(h.value.Render("paused"))
	}
	return h.status.Render(h.sb.String())
}

func (h *HUD) field(name, value string) {
	h.sb.WriteString(h.label.Render(name))
	h.sb.WriteByte(' ')
	h.sb.WriteString(h.value.Render(value))
	h.sb.WriteString("  ")
}

// Legend returns the key legend line.
func (h *HUD) Legend() string {
	return h.legend.Render(h.keys)
}

// Notice returns a bordered message box.
func (h *HUD) Notice(title string, lines ...string) string {
	body := append([]string{h.title.Render(title), ""}, lines...)
	return h.notice.Render(strings.Join(body, "\n"))
}

// Write places the status on the first canvas row and the legend on the
// last, marking the covered cells so the canvas repaints them next frame.
func (h *HUD) Write(out *draw.ChunkWriter, canvas *draw.Canvas, f Frame, inRing int) {
	out.WriteAt(2, 1, h.Status(f, inRing))
	canvas.MarkTextDirty(2, 1, statusWidth)

	rows := canvas.TerminalHeight()
	if rows > 2 {
		out.WriteAt(2, rows, h.Legend())
		canvas.MarkTextDirty(2, rows, lipgloss.Width(h.keys))
	}
}

// WriteCentered draws block in the middle of the canvas.
func WriteCentered(out *draw.ChunkWriter, canvas *draw.Canvas, block string) {
	w, h := lipgloss.Width(block), lipgloss.Height(block)
	col := max((canvas.TerminalWidth()-w)/2+1, 1)
	row := max((canvas.TerminalHeight()-h)/2+1, 1)
	out.WriteBlockAt(col, row, block)
	for i := 0; i < h; i++ {
		canvas.MarkTextDirty(col, row+i, w)
	}
}
