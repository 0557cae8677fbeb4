package geom

import (
	"math"
	"testing"
)

func TestWorldCornersNoRotation(t *testing.T) {
	b := OrientedBox{Origin: V(10, 20), Width: 6, Height: 4}
	want := [4]Vec2{V(7, 18), V(13, 18), V(13, 22), V(7, 22)}

	got := b.WorldCorners()
	for i := range want {
		if !approxVec(got[i], want[i], 0.01) {
			t.Errorf("corner %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWorldCorners90Degrees(t *testing.T) {
	// 90-deg CCW maps (x,y) to (-y,x).
	b := OrientedBox{Rotation: math.Pi / 2, Width: 4, Height: 2}
	got := b.WorldCorners()

	if !approxVec(got[CornerTL], V(1, -2), 0.01) {
		t.Errorf("TL = %v, want (1,-2)", got[CornerTL])
	}
	if !approxVec(got[CornerTR], V(1, 2), 0.01) {
		t.Errorf("TR = %v, want (1,2)", got[CornerTR])
	}
}

func TestCornersZeroRotationMatchesRotatedPath(t *testing.T) {
	b := OrientedBox{Origin: V(3, -1), Width: 7, Height: 3}
	fast := b.Corners()

	// A full turn goes through the trig path and must land on the same corners.
	b.Rotation = 2 * math.Pi
	slow := b.Corners()

	for i := range fast {
		if !approxVec(fast[i], slow[i], 1e-4) {
			t.Errorf("corner %d: fast=%v slow=%v", i, fast[i], slow[i])
		}
	}
}

func TestLocalCornersIgnoreRotation(t *testing.T) {
	b := OrientedBox{Rotation: 1.2, Width: 2, Height: 8}
	got := b.LocalCorners()
	want := [4]Vec2{V(-1, -4), V(1, -4), V(1, 4), V(-1, 4)}
	if got != want {
		t.Fatalf("LocalCorners = %v, want %v", got, want)
	}
}

func TestEdgesAreClosed(t *testing.T) {
	b := OrientedBox{Origin: V(1, 1), Rotation: 0.3, Width: 5, Height: 2}
	edges := b.Edges()
	for i := range edges {
		next := edges[(i+1)%4]
		if edges[i].End != next.Start {
			t.Fatalf("edge %d end %v != edge %d start %v", i, edges[i].End, (i+1)%4, next.Start)
		}
	}
}

func TestArrow(t *testing.T) {
	shaft, left, right := Arrow(V(0, 0), V(5, 0), 8)
	if !approxVec(shaft.End, V(8, 0), 1e-5) {
		t.Fatalf("tip = %v, want (8,0)", shaft.End)
	}
	if left.Start != shaft.End || right.Start != shaft.End {
		t.Fatal("wings must start at the tip")
	}
	if !approx(left.Len(), 2, 1e-4) || !approx(right.Len(), 2, 1e-4) {
		t.Fatalf("wing lengths = %v, %v, want 2", left.Len(), right.Len())
	}
	// Wings point back towards the origin, on opposite sides of the shaft.
	if left.End.X >= 8 || right.End.X >= 8 {
		t.Fatalf("wings should point back: %v %v", left.End, right.End)
	}
	if left.End.Y*right.End.Y >= 0 {
		t.Fatalf("wings should straddle the shaft: %v %v", left.End, right.End)
	}
}

func TestArrowZeroDirection(t *testing.T) {
	shaft, left, right := Arrow(V(2, 3), Vec2{}, 10)
	if !shaft.IsDegenerate() || !left.IsDegenerate() || !right.IsDegenerate() {
		t.Fatalf("zero direction should give degenerate arrow: %v %v %v", shaft, left, right)
	}
}
