package client

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tomz197/particles/internal/draw"
	"github.com/tomz197/particles/internal/input"
	"github.com/tomz197/particles/internal/loop/server"
	"github.com/tomz197/particles/internal/scene"
	"github.com/tomz197/particles/internal/sim"
)

type fakeServer struct {
	mu           sync.Mutex
	handle       *server.ViewerHandle
	shutdown     chan struct{}
	commands     []server.Command
	unregistered []int
	snap         *server.Snapshot
}

func newFakeServer() *fakeServer {
	cfg := sim.DefaultConfig(800, 600)
	cfg.Count = 4
	state, err := sim.New(cfg)
	if err != nil {
		panic(err)
	}
	return &fakeServer{shutdown: make(chan struct{}), snap: &server.Snapshot{
		Particles: state.Particles(),
		Tick:      7,
		Viewers:   2,
		Config:    cfg,
	}}
}

func (f *fakeServer) RegisterViewer(name string) *server.ViewerHandle {
	f.handle = &server.ViewerHandle{
		ID:       1,
		Name:     name,
		EventsCh: make(chan server.Event, 4),
		Shutdown: f.shutdown,
	}
	return f.handle
}

func (f *fakeServer) UnregisterViewer(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unregistered = append(f.unregistered, id)
}

func (f *fakeServer) Send(cmd server.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
}

func (f *fakeServer) Snapshot() *server.Snapshot {
	return f.snap
}

func newTestClient(t *testing.T, fs *fakeServer, in string, out io.Writer) *Client {
	t.Helper()
	return NewClient(fs, bufio.NewReader(strings.NewReader(in)), out, ClientOptions{
		TermSizeFunc: draw.FixedTermSize(80, 24),
		Name:         "alice",
		Renderer:     lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii)),
	})
}

func TestModeChangesSendOneCommand(t *testing.T) {
	fs := newFakeServer()
	c := newTestClient(t, fs, "", io.Discard)

	steps := []input.Input{
		{Attract: true},
		{Attract: true},
		{Repel: true},
		{},
		{},
	}
	for _, in := range steps {
		c.applyInput(in)
	}

	want := []server.CommandKind{server.CommandAttract, server.CommandRepel, server.CommandRelease}
	if len(fs.commands) != len(want) {
		t.Fatalf("sent %v, want kinds %v", fs.commands, want)
	}
	for i, k := range want {
		if fs.commands[i].Kind != k || fs.commands[i].ViewerID != 1 {
			t.Errorf("command %d = %+v, want %v", i, fs.commands[i], k)
		}
	}
}

func TestResetAndArrows(t *testing.T) {
	fs := newFakeServer()
	c := newTestClient(t, fs, "", io.Discard)

	c.applyInput(input.Input{Reset: true, Arrows: true})
	if len(fs.commands) != 1 || fs.commands[0].Kind != server.CommandReseed {
		t.Fatalf("commands = %+v, want one reseed", fs.commands)
	}
	if !c.state.Arrows {
		t.Error("arrows not toggled")
	}
}

func TestShutdownStopsCommands(t *testing.T) {
	fs := newFakeServer()
	c := newTestClient(t, fs, "", io.Discard)

	// A full events queue must not hide the shutdown.
	for i := 0; i < cap(fs.handle.EventsCh); i++ {
		fs.handle.EventsCh <- server.Event{Type: server.EventReseeded, By: "bob"}
	}
	close(fs.shutdown)
	c.processServerEvents()
	if c.state.ViewState != ViewShutdown {
		t.Fatalf("view state = %v, want shutdown", c.state.ViewState)
	}

	c.state.shutdownTimer = 1
	c.processServerEvents()
	if c.state.shutdownTimer != 1 {
		t.Error("shutdown countdown restarted")
	}

	c.applyInput(input.Input{Attract: true})
	if len(fs.commands) != 0 {
		t.Errorf("commands sent during shutdown: %+v", fs.commands)
	}
}

func TestReseedEventShowsNotice(t *testing.T) {
	fs := newFakeServer()
	var buf bytes.Buffer
	c := newTestClient(t, fs, "", &buf)

	fs.handle.EventsCh <- server.Event{Type: server.EventReseeded, Seed: 2, By: "bob"}
	c.processServerEvents()
	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "reset by bob") {
		t.Error("reseed notice not drawn")
	}
}

func TestReseedNoticeStripsControlCharacters(t *testing.T) {
	fs := newFakeServer()
	var buf bytes.Buffer
	c := newTestClient(t, fs, "", &buf)

	fs.handle.EventsCh <- server.Event{Type: server.EventReseeded, By: "evil\x1b]0;pwned\x07\x1b[2J"}
	c.processServerEvents()
	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b]0;") || strings.Contains(out, "\x07") {
		t.Errorf("viewer name escapes reached the terminal: %q", out)
	}
	if !strings.Contains(out, "reset by evil]0;pwned[2J") {
		t.Error("sanitized reseed notice not drawn")
	}
}

func TestReseedNoticeMarksCellWidth(t *testing.T) {
	fs := newFakeServer()
	c := newTestClient(t, fs, "", io.Discard)

	fs.handle.EventsCh <- server.Event{Type: server.EventReseeded, By: "名前"}
	c.processServerEvents()
	if got, want := lipgloss.Width(c.state.notice), len("reset by ")+4; got != want {
		t.Errorf("notice width = %d, want %d", got, want)
	}
	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
}

func TestClosedEventsStopClient(t *testing.T) {
	fs := newFakeServer()
	c := newTestClient(t, fs, "", io.Discard)
	close(fs.handle.EventsCh)
	c.processServerEvents()
	if c.state.Running {
		t.Error("client still running after server closed its events")
	}
}

func TestDrawFrameShowsHUD(t *testing.T) {
	fs := newFakeServer()
	var buf bytes.Buffer
	c := newTestClient(t, fs, "", &buf)

	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"particles 4", "tick 7", "viewers 2", scene.SharedLegend} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestRunUnregistersOnQuit(t *testing.T) {
	fs := newFakeServer()
	c := newTestClient(t, fs, "q", io.Discard)
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.unregistered) != 1 || fs.unregistered[0] != 1 {
		t.Errorf("unregistered = %v, want [1]", fs.unregistered)
	}
}
