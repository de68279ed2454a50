// Package verify re-checks a previously emitted Placement Record against
// its quantified invariants. It never fails fast: it collects every
// violation and returns them all instead of stopping at the first.
package verify

import (
	"fmt"

	"github.com/eng618/deck-packer/pkg/carrier"
	"github.com/eng618/deck-packer/pkg/footprint"
	"github.com/eng618/deck-packer/pkg/jobio"
	"github.com/eng618/deck-packer/pkg/record"
)

// Violation is a single named invariant failure.
type Violation struct {
	Rule    string
	Message string
}

func (v Violation) Error() string { return fmt.Sprintf("%s: %s", v.Rule, v.Message) }

// Record re-places rec's Placed poses onto a fresh grid with rec's carrier
// dimensions and doc's margins, clearance and neighbor policy, and reports
// every invariant violation found.
// A clean record (every invariant below holds) returns a nil slice.
func Record(doc jobio.JobDoc, catalog map[string]*footprint.Footprint, rec record.Record) []error {
	var errs []error

	if rec.PlacedCount+len(rec.UnplacedIDs) != rec.TotalCount {
		errs = append(errs, Violation{"placed+unplaced=total", fmt.Sprintf(
			"placed_count=%d + len(unplaced)=%d != total_count=%d", rec.PlacedCount, len(rec.UnplacedIDs), rec.TotalCount)})
	}
	if rec.PlacedCount > rec.TotalCount {
		errs = append(errs, Violation{"placed<=total", fmt.Sprintf("placed_count=%d > total_count=%d", rec.PlacedCount, rec.TotalCount)})
	}
	if rec.Score < 0 || rec.Score > 1 {
		errs = append(errs, Violation{"0<=score<=1", fmt.Sprintf("score=%v", rec.Score)})
	}
	if rec.PlacedCount == rec.TotalCount && !rec.Complete {
		errs = append(errs, Violation{"complete-flag", "placed_count == total_count but complete is false"})
	}

	jobCfg, err := jobio.Config(doc)
	if err != nil {
		errs = append(errs, Violation{"carrier-config", err.Error()})
		return errs
	}
	grid, err := carrier.New(carrier.Config{
		Width: rec.Carrier.Width, Height: rec.Carrier.Height,
		BowMargin: doc.Carrier.BowMargin, SternMargin: doc.Carrier.SternMargin,
		SideMargin: doc.Carrier.SideMargin, BlockClearance: doc.Carrier.BlockClearance,
		NeighborPolicy: jobCfg.NeighborPolicy,
	})
	if err != nil {
		errs = append(errs, Violation{"carrier-config", err.Error()})
		return errs
	}

	for _, pose := range rec.Placed {
		fp, ok := catalog[pose.BlockID]
		if !ok {
			errs = append(errs, Violation{"unknown-block", fmt.Sprintf("placed block %q not found in footprint catalog", pose.BlockID)})
			continue
		}
		if !grid.Place(fp, pose.Rotation, pose.X, pose.Y) {
			// Place is the same clearance oracle the search used: a failure
			// here means the record violates non-overlap, containment, or
			// inter-block clearance (invariants 1-3).
			errs = append(errs, Violation{"clearance", fmt.Sprintf(
				"block %q at (%d,%d) rot=%d is not feasible against the carrier and previously placed blocks",
				pose.BlockID, pose.X, pose.Y, pose.Rotation)})
		}
	}

	return errs
}

// RoundTrip checks that placing fp at the given pose and then removing it
// restores the grid exactly (the place/remove round-trip law).
func RoundTrip(g *carrier.Grid, fp *footprint.Footprint, rotation footprint.Rotation, x, y int) error {
	before := snapshot(g)
	if !g.Place(fp, rotation, x, y) {
		return fmt.Errorf("round-trip: place(%s, %d, %d, %d) failed", fp.ID(), rotation, x, y)
	}
	g.Remove(fp.ID())
	after := snapshot(g)
	if before != after {
		return fmt.Errorf("round-trip: grid state differs after place+remove for %s", fp.ID())
	}
	return nil
}

func snapshot(g *carrier.Grid) string {
	w, h := g.Width(), g.Height()
	buf := make([]byte, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			empty, err := g.IsEmpty(x, y)
			if err != nil || empty {
				buf = append(buf, '.')
			} else {
				buf = append(buf, '#')
			}
		}
	}
	return string(buf)
}
