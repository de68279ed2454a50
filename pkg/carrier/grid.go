// Package carrier implements the 2D occupancy grid a block packing search
// runs over (the "carrier deck"), plus the clearance oracle that decides
// whether a candidate placement is feasible against it.
package carrier

import (
	"fmt"

	"github.com/eng618/deck-packer/pkg/footprint"
)

// NeighborPolicy selects the neighbourhood used to inflate a placed
// footprint when checking inter-block clearance. The source material left
// this ambiguous; both are supported, default Manhattan.
type NeighborPolicy int

const (
	Manhattan NeighborPolicy = iota
	Chebyshev
)

// Config holds the parameters needed to construct a Grid.
type Config struct {
	Width, Height                       int
	BowMargin, SternMargin, SideMargin   int
	BlockClearance                       int
	NeighborPolicy                       NeighborPolicy
}

// Grid is a 2D occupancy grid with a per-cell owner handle and edge
// margins. It exclusively owns its cell array; Footprints are referenced
// read-only by handle.
type Grid struct {
	cfg      Config
	cells    []Handle
	owned    map[Handle][]int // handle -> cell indices it occupies
	interner *interner
}

// New constructs a Grid. Returns an error for non-positive dimensions,
// negative margins/clearance, or margins that consume the whole carrier —
// all "invalid configuration", fail fast before any search
// begins.
func New(cfg Config) (*Grid, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("carrier: width and height must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.BowMargin < 0 || cfg.SternMargin < 0 || cfg.SideMargin < 0 {
		return nil, fmt.Errorf("carrier: margins must be non-negative")
	}
	if cfg.BlockClearance < 0 {
		return nil, fmt.Errorf("carrier: block_clearance must be non-negative, got %d", cfg.BlockClearance)
	}
	if cfg.SternMargin+cfg.BowMargin >= cfg.Width {
		return nil, fmt.Errorf("carrier: bow+stern margins (%d+%d) leave no usable width in a %d-wide carrier",
			cfg.BowMargin, cfg.SternMargin, cfg.Width)
	}
	if 2*cfg.SideMargin >= cfg.Height {
		return nil, fmt.Errorf("carrier: side margins (%d each) leave no usable height in a %d-tall carrier",
			cfg.SideMargin, cfg.Height)
	}

	g := &Grid{
		cfg:      cfg,
		cells:    make([]Handle, cfg.Width*cfg.Height),
		owned:    make(map[Handle][]int),
		interner: newInterner(),
	}
	for i := range g.cells {
		g.cells[i] = Empty
	}
	return g, nil
}

func (g *Grid) index(x, y int) (int, error) {
	if x < 0 || x >= g.cfg.Width || y < 0 || y >= g.cfg.Height {
		return 0, fmt.Errorf("carrier: coordinate (%d,%d) out of bounds for %dx%d grid", x, y, g.cfg.Width, g.cfg.Height)
	}
	return y*g.cfg.Width + x, nil
}

// Width, Height, BowMargin, SternMargin, SideMargin, BlockClearance return
// the grid's static configuration.
func (g *Grid) Width() int          { return g.cfg.Width }
func (g *Grid) Height() int         { return g.cfg.Height }
func (g *Grid) BowMargin() int      { return g.cfg.BowMargin }
func (g *Grid) SternMargin() int    { return g.cfg.SternMargin }
func (g *Grid) SideMargin() int     { return g.cfg.SideMargin }
func (g *Grid) BlockClearance() int { return g.cfg.BlockClearance }

// UsableInterior returns the half-open interior box
// [sternMargin, width-bowMargin) x [sideMargin, height-sideMargin).
func (g *Grid) UsableInterior() (xMin, xMax, yMin, yMax int) {
	return g.cfg.SternMargin, g.cfg.Width - g.cfg.BowMargin, g.cfg.SideMargin, g.cfg.Height - g.cfg.SideMargin
}

// UsableInteriorArea returns the cell count of the usable interior.
func (g *Grid) UsableInteriorArea() int {
	xMin, xMax, yMin, yMax := g.UsableInterior()
	w, h := xMax-xMin, yMax-yMin
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IsEmpty reports whether the cell at (x, y) has no owner. Out-of-bounds
// coordinates are an error, not a silent false.
func (g *Grid) IsEmpty(x, y int) (bool, error) {
	idx, err := g.index(x, y)
	if err != nil {
		return false, err
	}
	return g.cells[idx] == Empty, nil
}

// Owner returns the block id occupying (x, y), or ("", false, nil) if
// empty. Out-of-bounds coordinates are an error.
func (g *Grid) Owner(x, y int) (string, bool, error) {
	idx, err := g.index(x, y)
	if err != nil {
		return "", false, err
	}
	h := g.cells[idx]
	if h == Empty {
		return "", false, nil
	}
	id, ok := g.interner.lookup(h)
	return id, ok, nil
}

// CanPlace reports whether (fp, rotation, x, y) is feasible: see the
// Clearance Oracle in clearance.go for the three-part test.
func (g *Grid) CanPlace(fp *footprint.Footprint, rotation footprint.Rotation, x, y int) bool {
	return g.clearanceCheck(fp, rotation, x, y)
}

// Place claims every rotated cell of fp with fp.ID() if feasible. It is
// atomic: on failure the grid is left completely unchanged.
func (g *Grid) Place(fp *footprint.Footprint, rotation footprint.Rotation, x, y int) bool {
	if !g.clearanceCheck(fp, rotation, x, y) {
		return false
	}
	h := g.interner.intern(fp.ID())
	cells := fp.Cells(rotation)
	idxs := make([]int, 0, len(cells))
	for _, c := range cells {
		idx, err := g.index(x+c.X, y+c.Y)
		if err != nil {
			// clearanceCheck already validated containment; this would be a defect.
			panic(fmt.Sprintf("defect: carrier.Place computed out-of-bounds cell after a feasible clearance check: %v", err))
		}
		idxs = append(idxs, idx)
	}
	for _, idx := range idxs {
		g.cells[idx] = h
	}
	g.owned[h] = append(g.owned[h][:0:0], idxs...)
	return true
}

// Remove clears every cell owned by blockID. No-op if the block is not
// currently placed.
func (g *Grid) Remove(blockID string) bool {
	h, ok := g.interner.idToHandle[blockID]
	if !ok {
		return false
	}
	idxs, ok := g.owned[h]
	if !ok {
		return false
	}
	for _, idx := range idxs {
		g.cells[idx] = Empty
	}
	delete(g.owned, h)
	return true
}

// Score returns the number of distinct placed blocks and the utilisation
// (occupied interior cells / usable interior area).
func (g *Grid) Score() (placedCount int, utilisation float64) {
	placedCount = len(g.owned)
	area := g.UsableInteriorArea()
	if area == 0 {
		return placedCount, 0
	}
	xMin, xMax, yMin, yMax := g.UsableInterior()
	occupied := 0
	for y := yMin; y < yMax; y++ {
		for x := xMin; x < xMax; x++ {
			idx, _ := g.index(x, y)
			if g.cells[idx] != Empty {
				occupied++
			}
		}
	}
	return placedCount, float64(occupied) / float64(area)
}

// PlacedIDs returns the block ids currently placed, order unspecified.
func (g *Grid) PlacedIDs() []string {
	ids := make([]string, 0, len(g.owned))
	for h := range g.owned {
		if id, ok := g.interner.lookup(h); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Clone deep-copies the cell array and owned-cells index so a caller can
// keep a best-so-far snapshot while the original grid keeps mutating. The
// interner is shared: it is append-only, so aliasing it across clones and
// the original is safe in the single-threaded search.
func (g *Grid) Clone() *Grid {
	cellsCopy := make([]Handle, len(g.cells))
	copy(cellsCopy, g.cells)
	ownedCopy := make(map[Handle][]int, len(g.owned))
	for h, idxs := range g.owned {
		c := make([]int, len(idxs))
		copy(c, idxs)
		ownedCopy[h] = c
	}
	return &Grid{
		cfg:      g.cfg,
		cells:    cellsCopy,
		owned:    ownedCopy,
		interner: g.interner,
	}
}
