package carrier

import (
	"testing"

	"github.com/eng618/deck-packer/pkg/footprint"
)

func solid(id string, w, h int) *footprint.Footprint {
	cells := make([]footprint.Cell, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells = append(cells, footprint.Cell{X: x, Y: y, Stack: footprint.Stack{Filled: 1}})
		}
	}
	fp, err := footprint.New(id, cells)
	if err != nil {
		panic(err)
	}
	return fp
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := []Config{
		{Width: 0, Height: 5},
		{Width: 5, Height: 0},
		{Width: 5, Height: 5, BowMargin: -1},
		{Width: 5, Height: 5, BlockClearance: -1},
		{Width: 5, Height: 5, BowMargin: 3, SternMargin: 3},
		{Width: 5, Height: 5, SideMargin: 3},
	}
	for i, cfg := range cases {
		if _, err := New(cfg); err == nil {
			t.Fatalf("case %d: expected error for config %+v", i, cfg)
		}
	}
}

func TestPlaceAndRemoveRoundTrip(t *testing.T) {
	g, err := New(Config{Width: 10, Height: 10})
	if err != nil {
		t.Fatal(err)
	}
	fp := solid("A", 4, 3)

	if !g.Place(fp, footprint.Rot0, 0, 0) {
		t.Fatal("expected placement to succeed")
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			empty, err := g.IsEmpty(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if empty {
				t.Fatalf("expected (%d,%d) to be occupied", x, y)
			}
		}
	}

	if !g.Remove("A") {
		t.Fatal("expected remove to succeed")
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			empty, err := g.IsEmpty(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if !empty {
				t.Fatalf("expected grid to be fully empty after remove, found occupied (%d,%d)", x, y)
			}
		}
	}
	if g.Remove("A") {
		t.Fatal("expected second remove to be a no-op returning false")
	}
}

func TestPlaceRejectsOverlap(t *testing.T) {
	g, _ := New(Config{Width: 10, Height: 10})
	a := solid("A", 5, 5)
	b := solid("B", 5, 5)
	if !g.Place(a, footprint.Rot0, 0, 0) {
		t.Fatal("expected first placement to succeed")
	}
	if g.Place(b, footprint.Rot0, 2, 2) {
		t.Fatal("expected overlapping placement to fail")
	}
	// atomicity: failed placement must not have mutated state
	if owner, ok, _ := g.Owner(2, 2); !ok || owner != "A" {
		t.Fatalf("expected (2,2) still owned by A, got owner=%q ok=%v", owner, ok)
	}
}

func TestPlaceRejectsMarginViolation(t *testing.T) {
	g, _ := New(Config{Width: 10, Height: 5, SternMargin: 2, BowMargin: 2})
	fp := solid("A", 3, 3)
	if g.Place(fp, footprint.Rot0, 0, 0) {
		t.Fatal("expected placement inside stern margin to fail")
	}
	if !g.Place(fp, footprint.Rot0, 2, 0) {
		t.Fatal("expected placement inside usable interior to succeed")
	}
}

func TestOutOfBoundsQueryIsError(t *testing.T) {
	g, _ := New(Config{Width: 5, Height: 5})
	if _, err := g.IsEmpty(-1, 0); err == nil {
		t.Fatal("expected error for negative coordinate")
	}
	if _, err := g.IsEmpty(5, 0); err == nil {
		t.Fatal("expected error for coordinate at width bound")
	}
}

func TestBlockClearanceForbidsAdjacency(t *testing.T) {
	g, _ := New(Config{Width: 10, Height: 5, BlockClearance: 1})
	a := solid("A", 5, 5)
	b := solid("B", 5, 5)
	if !g.Place(a, footprint.Rot0, 0, 0) {
		t.Fatal("expected first placement to succeed")
	}
	if g.Place(b, footprint.Rot0, 5, 0) {
		t.Fatal("expected adjacent placement to be rejected under clearance 1")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, _ := New(Config{Width: 10, Height: 10})
	fp := solid("A", 3, 3)
	g.Place(fp, footprint.Rot0, 0, 0)

	snap := g.Clone()
	g.Remove("A")

	empty, _ := g.IsEmpty(0, 0)
	if !empty {
		t.Fatal("expected original grid to be empty after remove")
	}
	snapEmpty, _ := snap.IsEmpty(0, 0)
	if snapEmpty {
		t.Fatal("expected clone to retain the placement made before it was taken")
	}
}

func TestScoreUtilisation(t *testing.T) {
	g, _ := New(Config{Width: 10, Height: 10})
	fp := solid("A", 5, 5)
	g.Place(fp, footprint.Rot0, 0, 0)
	placed, util := g.Score()
	if placed != 1 {
		t.Fatalf("expected placed_count 1, got %d", placed)
	}
	if util != 0.25 {
		t.Fatalf("expected utilisation 0.25, got %f", util)
	}
}
