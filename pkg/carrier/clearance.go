package carrier

import "github.com/eng618/deck-packer/pkg/footprint"

// clearanceCheck is the Clearance Oracle: a pure predicate, never mutating
// grid state. A candidate (fp, rotation, x, y) is accepted iff all three
// conditions hold: interior containment, non-overlap, and
// inter-block clearance.
func (g *Grid) clearanceCheck(fp *footprint.Footprint, rotation footprint.Rotation, x, y int) bool {
	xMin, xMax, yMin, yMax := g.UsableInterior()
	cells := fp.Cells(rotation)

	for _, c := range cells {
		cx, cy := x+c.X, y+c.Y
		if cx < xMin || cx >= xMax || cy < yMin || cy >= yMax {
			return false
		}
		idx, err := g.index(cx, cy)
		if err != nil {
			return false
		}
		if g.cells[idx] != Empty {
			return false
		}
	}

	if g.cfg.BlockClearance <= 0 {
		return true
	}
	return g.clearanceSatisfied(fp.ID(), cells, x, y)
}

// clearanceSatisfied checks that inflating the candidate's rotated cells by
// BlockClearance cells (Manhattan or Chebyshev, per NeighborPolicy) touches
// no cell owned by a different block. The candidate's own footprint is not
// yet placed, so any occupied cell found in the inflated ring belongs to
// some other block by construction.
func (g *Grid) clearanceSatisfied(ownID string, cells []footprint.Cell, x, y int) bool {
	reach := g.cfg.BlockClearance
	seen := make(map[int]bool, len(cells)*4)
	for _, c := range cells {
		cx, cy := x+c.X, y+c.Y
		for dy := -reach; dy <= reach; dy++ {
			for dx := -reach; dx <= reach; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if g.cfg.NeighborPolicy == Manhattan && abs(dx)+abs(dy) > reach {
					continue
				}
				nx, ny := cx+dx, cy+dy
				idx, err := g.index(nx, ny)
				if err != nil {
					continue // off-grid neighbours impose no constraint
				}
				if seen[idx] {
					continue
				}
				seen[idx] = true
				if g.cells[idx] != Empty {
					return false
				}
			}
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
