package draw

import (
	"strings"
	"testing"

	"github.com/tomz197/particles/internal/geom"
)

func TestLogicalToPixelScales(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	x, y := c.LogicalToPixel(400, 300)
	if x != 40 || y != 30 {
		t.Fatalf("LogicalToPixel(400,300) = (%d,%d), want (40,30)", x, y)
	}
}

func TestFillCircleSetsCentreAndColour(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.FillCircle(geom.Circle{Origin: geom.V(10, 10), Radius: 3}, 42)

	if got := c.At(10, 10); got != 42 {
		t.Fatalf("centre colour = %d, want 42", got)
	}
	if got := c.At(13, 10); got != 42 {
		t.Fatalf("edge colour = %d, want 42", got)
	}
	if got := c.At(14, 10); got != 0 {
		t.Fatalf("outside colour = %d, want 0", got)
	}
}

func TestFillCircleZeroRadiusStillVisible(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.FillCircle(geom.Circle{Origin: geom.V(4, 4)}, 7)
	if c.Count() != 1 {
		t.Fatalf("set pixels = %d, want 1", c.Count())
	}
}

func TestDrawSegmentEndpoints(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.DrawSegment(geom.Segment{Start: geom.V(1, 1), End: geom.V(8, 5)}, 3)
	if c.At(1, 1) != 3 || c.At(8, 5) != 3 {
		t.Fatal("segment endpoints should be set")
	}
}

func TestDrawBoxFilled(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.DrawBox(geom.OrientedBox{Origin: geom.V(10, 10), Width: 6, Height: 6}, 5, true)
	if c.At(10, 10) != 5 {
		t.Fatal("filled box centre should be set")
	}
	if c.At(2, 2) != 0 {
		t.Fatal("pixel outside the box should be unset")
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.SetFloat(2, 2, 9)

	var first strings.Builder
	if err := c.Render(&first); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(first.String(), "38;5;9m") {
		t.Fatalf("first render missing colour: %q", first.String())
	}

	var second strings.Builder
	if err := c.Render(&second); err != nil {
		t.Fatal(err)
	}
	if second.Len() != 0 {
		t.Fatalf("unchanged canvas rendered %q", second.String())
	}

	c.Clear()
	var third strings.Builder
	if err := c.Render(&third); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(third.String(), " ") {
		t.Fatalf("cleared pixel should be blanked: %q", third.String())
	}
}

func TestRenderTwoColourCell(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.setPixel(0, 0, 11)
	c.setPixel(0, 1, 12)

	var out strings.Builder
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.Contains(s, "38;5;11m") || !strings.Contains(s, "48;5;12m") || !strings.ContainsRune(s, BlockUpperHalf) {
		t.Fatalf("two colour cell rendered as %q", s)
	}
}

func TestMarkTextDirtyRepaintsCells(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var out strings.Builder
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}

	c.MarkTextDirty(3, 2, 2)
	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.Contains(s, "\033[2;3H ") || !strings.Contains(s, "\033[2;4H ") {
		t.Fatalf("text cells not blanked: %q", s)
	}

	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("text cells repainted twice: %q", out.String())
	}
}

func TestMarkTextDirtyClipsToCanvas(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.MarkTextDirty(3, 1, 10)
	c.MarkTextDirty(1, 9, 3)
	c.MarkTextDirty(-2, 1, 3)
}
