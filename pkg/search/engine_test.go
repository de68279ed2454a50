package search

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/eng618/deck-packer/pkg/candidate"
	"github.com/eng618/deck-packer/pkg/carrier"
	"github.com/eng618/deck-packer/pkg/footprint"
	"github.com/eng618/deck-packer/pkg/record"
)

func rect(t *testing.T, id string, w, h int) *footprint.Footprint {
	t.Helper()
	cells := make([]footprint.Cell, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells = append(cells, footprint.Cell{X: x, Y: y, Stack: footprint.Stack{Filled: 1}})
		}
	}
	fp, err := footprint.New(id, cells)
	if err != nil {
		t.Fatal(err)
	}
	return fp
}

func lshape(t *testing.T, id string) *footprint.Footprint {
	t.Helper()
	raw := []footprint.Cell{
		{X: 0, Y: 0, Stack: footprint.Stack{Filled: 1}},
		{X: 0, Y: 1, Stack: footprint.Stack{Filled: 1}},
		{X: 0, Y: 2, Stack: footprint.Stack{Filled: 1}},
		{X: 1, Y: 0, Stack: footprint.Stack{Filled: 1}},
		{X: 2, Y: 0, Stack: footprint.Stack{Filled: 1}},
	}
	fp, err := footprint.New(id, raw)
	if err != nil {
		t.Fatal(err)
	}
	return fp
}

func runPacking(t *testing.T, cfg carrier.Config, fps []*footprint.Footprint, budget time.Duration) record.Record {
	t.Helper()
	g, err := carrier.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.MaxTime = budget
	eng := New(g, fps, record.CarrierInfo{Width: cfg.Width, Height: cfg.Height}, opts)
	return eng.Run()
}

// S1: a single solid block exactly filling the carrier.
func TestScenarioS1SingleSolidFill(t *testing.T) {
	rec := runPacking(t, carrier.Config{Width: 10, Height: 10}, []*footprint.Footprint{rect(t, "A", 10, 10)}, time.Second)
	if rec.PlacedCount != 1 || !rec.Complete {
		t.Fatalf("expected 1 placed and complete, got %+v", rec)
	}
	if rec.Placed[0].X != 0 || rec.Placed[0].Y != 0 {
		t.Fatalf("expected placement at origin, got %+v", rec.Placed[0])
	}
}

// S2: two 5x5 blocks fit side by side in a 10x5 carrier.
func TestScenarioS2TwoBlocksNoClearance(t *testing.T) {
	rec := runPacking(t, carrier.Config{Width: 10, Height: 5}, []*footprint.Footprint{
		rect(t, "A", 5, 5), rect(t, "B", 5, 5),
	}, time.Second)
	if rec.PlacedCount != 2 || !rec.Complete {
		t.Fatalf("expected both blocks placed, got %+v", rec)
	}
}

// S3: clearance 1 forbids two 5x5 blocks from both fitting in a 10x5 carrier.
func TestScenarioS3ClearanceForbidsSecondBlock(t *testing.T) {
	rec := runPacking(t, carrier.Config{Width: 10, Height: 5, BlockClearance: 1}, []*footprint.Footprint{
		rect(t, "A", 5, 5), rect(t, "B", 5, 5),
	}, time.Second)
	if rec.PlacedCount != 1 {
		t.Fatalf("expected exactly 1 block placed under clearance 1, got %d", rec.PlacedCount)
	}
}

// S4: one block needs rotation to fit alongside the other in an 8x4 carrier.
func TestScenarioS4RotationRequired(t *testing.T) {
	rec := runPacking(t, carrier.Config{Width: 8, Height: 4}, []*footprint.Footprint{
		rect(t, "A", 5, 3), rect(t, "B", 3, 5),
	}, time.Second)
	if rec.PlacedCount != 2 || !rec.Complete {
		t.Fatalf("expected both blocks placed (one rotated), got %+v", rec)
	}
}

// S5: margins shrink the usable interior so only one of two 5x4 blocks fits.
func TestScenarioS5MarginsLimitCapacity(t *testing.T) {
	rec := runPacking(t, carrier.Config{Width: 12, Height: 4, SternMargin: 2, BowMargin: 2}, []*footprint.Footprint{
		rect(t, "A", 5, 4), rect(t, "B", 5, 4),
	}, time.Second)
	if rec.PlacedCount != 1 {
		t.Fatalf("expected exactly 1 block placed given an 8-wide usable interior, got %d", rec.PlacedCount)
	}
}

// S6: three L-shaped blocks pack into a 6x6 carrier via non-rectangular footprints.
func TestScenarioS6LShapedBlocks(t *testing.T) {
	rec := runPacking(t, carrier.Config{Width: 6, Height: 6}, []*footprint.Footprint{
		lshape(t, "A"), lshape(t, "B"), lshape(t, "C"),
	}, 2*time.Second)
	if rec.PlacedCount != 3 {
		t.Fatalf("expected all 3 L-shaped blocks placed, got %d (unplaced=%v)", rec.PlacedCount, rec.UnplacedIDs)
	}
}

func TestEmptyBlockListIsCompleteTrivially(t *testing.T) {
	rec := runPacking(t, carrier.Config{Width: 5, Height: 5}, nil, time.Second)
	if rec.PlacedCount != 0 || rec.TotalCount != 0 || !rec.Complete {
		t.Fatalf("expected a trivially complete empty record, got %+v", rec)
	}
}

func TestOversizedBlockIsUnplacedButRecordIsWellFormed(t *testing.T) {
	rec := runPacking(t, carrier.Config{Width: 5, Height: 5}, []*footprint.Footprint{rect(t, "A", 6, 6)}, time.Second)
	if rec.PlacedCount != 0 || rec.Complete {
		t.Fatalf("expected the oversized block to remain unplaced, got %+v", rec)
	}
	if len(rec.UnplacedIDs) != 1 || rec.UnplacedIDs[0] != "A" {
		t.Fatalf("expected A to be listed as unplaced, got %v", rec.UnplacedIDs)
	}
}

func TestZeroBudgetNeverCrashes(t *testing.T) {
	rec := runPacking(t, carrier.Config{Width: 10, Height: 10}, []*footprint.Footprint{rect(t, "A", 3, 3)}, 0)
	if rec.PlacedCount < 0 {
		t.Fatal("unreachable")
	}
}

func TestDeterminismAcrossRuns(t *testing.T) {
	cfg := carrier.Config{Width: 10, Height: 10}
	fps := []*footprint.Footprint{rect(t, "A", 4, 4), rect(t, "B", 3, 3), rect(t, "C", 2, 2)}
	r1 := runPacking(t, cfg, fps, time.Second)
	r2 := runPacking(t, cfg, fps, time.Second)
	if r1.PlacedCount != r2.PlacedCount || r1.Score != r2.Score {
		t.Fatalf("expected identical results across runs: %+v vs %+v", r1, r2)
	}
	for i := range r1.Placed {
		if r1.Placed[i] != r2.Placed[i] {
			t.Fatalf("placement %d differs: %+v vs %+v", i, r1.Placed[i], r2.Placed[i])
		}
	}
}

func TestRoundTripPlaceRemoveRestoresGrid(t *testing.T) {
	g, _ := carrier.New(carrier.Config{Width: 10, Height: 10})
	fp := rect(t, "A", 3, 3)
	before := make([]carrier.Handle, 0)
	_ = before
	if !g.Place(fp, footprint.Rot0, 1, 1) {
		t.Fatal("expected placement to succeed")
	}
	g.Remove("A")
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			empty, _ := g.IsEmpty(x, y)
			if !empty {
				t.Fatalf("expected grid fully empty after place+remove round trip, found occupied at (%d,%d)", x, y)
			}
		}
	}
}

func TestPlacedCountNeverExceedsTotal(t *testing.T) {
	rec := runPacking(t, carrier.Config{Width: 20, Height: 20}, []*footprint.Footprint{
		rect(t, "A", 4, 4), rect(t, "B", 4, 4), rect(t, "C", 4, 4),
	}, time.Second)
	if rec.PlacedCount+len(rec.UnplacedIDs) != rec.TotalCount {
		t.Fatalf("expected placed+unplaced == total, got %d+%d != %d", rec.PlacedCount, len(rec.UnplacedIDs), rec.TotalCount)
	}
	if rec.PlacedCount > rec.TotalCount {
		t.Fatal("placed_count must never exceed total_count")
	}
}

func TestProgressCallbackFiresOnImprovement(t *testing.T) {
	g, _ := carrier.New(carrier.Config{Width: 10, Height: 10})
	fps := []*footprint.Footprint{rect(t, "A", 4, 4), rect(t, "B", 4, 4)}
	calls := 0
	opts := DefaultOptions()
	opts.MaxTime = time.Second
	opts.OnProgress = func(r record.Record) { calls++ }
	eng := New(g, fps, record.CarrierInfo{Width: 10, Height: 10}, opts)
	eng.Run()
	if calls == 0 {
		t.Fatal("expected OnProgress to fire at least once")
	}
}

func TestCandidateStepConfig(t *testing.T) {
	g, _ := carrier.New(carrier.Config{Width: 10, Height: 10})
	fp := rect(t, "A", 2, 2)
	cfg := candidate.DefaultConfig()
	cfg.StepX, cfg.StepY = 2, 2
	cands := candidate.Generate(g, fp, cfg)
	if len(cands) == 0 {
		t.Fatal("expected candidates with a coarser step")
	}
}

// TestRandomFeasiblePackingsAllPlace builds k randomly-sized rectangles
// that exactly tile a single row of the carrier (random widths summing to
// the carrier's width, each spanning its full height), so a complete
// packing is always feasible by construction, and asserts the search
// finds it: placed_count must equal k regardless of the random sizes.
func TestRandomFeasiblePackingsAllPlace(t *testing.T) {
	const k = 5
	const height = 6

	rng := rand.New(rand.NewSource(7))
	widths := make([]int, k)
	total := 0
	for i := range widths {
		w := rng.Intn(4) + 2 // 2..5
		widths[i] = w
		total += w
	}

	fps := make([]*footprint.Footprint, k)
	for i, w := range widths {
		fps[i] = rect(t, fmt.Sprintf("B%d", i), w, height)
	}

	rec := runPacking(t, carrier.Config{Width: total, Height: height}, fps, 2*time.Second)
	if rec.PlacedCount != k {
		t.Fatalf("expected all %d non-overlapping rectangles (widths=%v) to place, got %d placed (unplaced=%v)",
			k, widths, rec.PlacedCount, rec.UnplacedIDs)
	}
}

// TestShuffledInputOrderDeterminism feeds the same footprints to the
// engine in two different input orders and asserts the resulting records
// are identical apart from the wall-clock elapsed time: orderBlocks must
// canonicalize purely from each block's own attributes (width, area,
// density, id), never from input position.
func TestShuffledInputOrderDeterminism(t *testing.T) {
	cfg := carrier.Config{Width: 10, Height: 10}
	original := []*footprint.Footprint{
		rect(t, "A", 4, 4), rect(t, "B", 3, 3), rect(t, "C", 2, 2), rect(t, "D", 1, 1),
	}

	shuffled := make([]*footprint.Footprint, len(original))
	copy(shuffled, original)
	rand.New(rand.NewSource(11)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	sameOrder := true
	for i := range original {
		if original[i].ID() != shuffled[i].ID() {
			sameOrder = false
			break
		}
	}
	if sameOrder {
		// The seeded shuffle landed back on the identity permutation; force
		// a swap so the test still exercises a genuinely different order.
		shuffled[0], shuffled[1] = shuffled[1], shuffled[0]
	}

	r1 := runPacking(t, cfg, original, time.Second)
	r2 := runPacking(t, cfg, shuffled, time.Second)

	// ElapsedSeconds is a wall-clock measurement and differs between runs.
	r1.ElapsedSeconds, r2.ElapsedSeconds = 0, 0
	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("expected identical records (elapsed time aside) regardless of input block order:\n%+v\nvs\n%+v", r1, r2)
	}
}
