package footprint

import "testing"

func solidCells(w, h int) []Cell {
	cells := make([]Cell, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells = append(cells, Cell{X: x, Y: y, Stack: Stack{Filled: 1}})
		}
	}
	return cells
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New("empty", nil); err == nil {
		t.Fatal("expected error for footprint with no filled cells")
	}
	if _, err := New("all-hollow", []Cell{{X: 0, Y: 0, Stack: Stack{Filled: 0}}}); err == nil {
		t.Fatal("expected error when every cell has Filled == 0")
	}
}

func TestNewNormalizesOrigin(t *testing.T) {
	raw := []Cell{
		{X: 5, Y: 5, Stack: Stack{Filled: 1}},
		{X: 6, Y: 6, Stack: Stack{Filled: 1}},
	}
	fp, err := New("shifted", raw)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range fp.Cells(Rot0) {
		if c.X < 0 || c.Y < 0 {
			t.Fatalf("cell %v not normalized to non-negative origin", c)
		}
	}
	w, h := fp.Bounds(Rot0)
	if w != 2 || h != 2 {
		t.Fatalf("expected 2x2 bounds, got %dx%d", w, h)
	}
}

func TestRectangleRotationSwapsBounds(t *testing.T) {
	fp, err := New("rect", solidCells(5, 3))
	if err != nil {
		t.Fatal(err)
	}
	w0, h0 := fp.Bounds(Rot0)
	if w0 != 5 || h0 != 3 {
		t.Fatalf("expected 5x3, got %dx%d", w0, h0)
	}
	w90, h90 := fp.Bounds(Rot90)
	if w90 != 3 || h90 != 5 {
		t.Fatalf("expected rotated 3x5, got %dx%d", w90, h90)
	}
	if len(fp.DistinctRotations()) != 2 {
		t.Fatalf("expected 2 distinct rotations for a non-square footprint")
	}
}

func TestSquareSameAsRot0Dedup(t *testing.T) {
	fp, err := New("square", solidCells(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if len(fp.DistinctRotations()) != 1 {
		t.Fatalf("expected a solid square to dedup to a single rotation")
	}
}

func TestLShapeRotationIsDistinctFromSquareBounds(t *testing.T) {
	// An L-tromino-like shape in a 3x3 box: not symmetric under 90 degrees.
	raw := []Cell{
		{X: 0, Y: 0, Stack: Stack{Filled: 1}},
		{X: 0, Y: 1, Stack: Stack{Filled: 1}},
		{X: 0, Y: 2, Stack: Stack{Filled: 1}},
		{X: 1, Y: 0, Stack: Stack{Filled: 1}},
		{X: 2, Y: 0, Stack: Stack{Filled: 1}},
	}
	fp, err := New("L", raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(fp.DistinctRotations()) != 2 {
		t.Fatalf("expected L-shape to have 2 distinct rotations")
	}
	if fp.Area() != 5 {
		t.Fatalf("expected area 5, got %d", fp.Area())
	}
}

func TestStackMetadataPreservedThroughRotation(t *testing.T) {
	raw := []Cell{
		{X: 0, Y: 0, Stack: Stack{Filled: 1, BelowEmpty: 2, AboveEmpty: 3}},
		{X: 1, Y: 0, Stack: Stack{Filled: 1, BelowEmpty: 4, AboveEmpty: 5}},
	}
	fp, err := New("meta", raw)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[int]Stack{}
	for _, c := range fp.Cells(Rot90) {
		seen[c.Stack.BelowEmpty] = c.Stack
	}
	if _, ok := seen[2]; !ok {
		t.Fatal("expected original stack metadata to survive rotation")
	}
	if _, ok := seen[4]; !ok {
		t.Fatal("expected original stack metadata to survive rotation")
	}
}

func TestDensity(t *testing.T) {
	fp, err := New("sparse", []Cell{
		{X: 0, Y: 0, Stack: Stack{Filled: 1}},
		{X: 1, Y: 1, Stack: Stack{Filled: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if d := fp.Density(Rot0); d != 0.5 {
		t.Fatalf("expected density 0.5, got %f", d)
	}
}
