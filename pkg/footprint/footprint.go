// Package footprint implements the immutable 2.5D voxel footprint used to
// describe a block's 2D occupancy pattern, independent of its 3D shape.
package footprint

import (
	"fmt"
	"sort"
)

// Rotation is a permitted block orientation. Only 0 and 90 degrees are
// supported; arbitrary rotation is a non-goal.
type Rotation int

const (
	Rot0  Rotation = 0
	Rot90 Rotation = 90
)

// Stack carries the opaque 2.5D metadata for a single occupied cell. The
// core never interprets below/filled/above; it only preserves the triple
// through rotation. The Placement Record holds poses only and does not
// carry the triple.
type Stack struct {
	BelowEmpty int
	Filled     int
	AboveEmpty int
}

// Cell is a single occupied offset relative to the footprint's own origin.
type Cell struct {
	X, Y  int
	Stack Stack
}

// Footprint is an immutable, pre-normalized 2.5D voxel block: a sparse set
// of occupied cells plus the bounding box, width, height and area derived
// from them. A Footprint never mutates after construction; rotation is a
// read-only view computed once and cached.
type Footprint struct {
	id    string
	cells []Cell // normalized, rotation 0
	w, h  int
	area  int

	rot90       []Cell
	w90, h90    int
	sameAsRot0  bool // true when 90° view has the identical cell pattern (square, symmetric)
}

// New constructs a Footprint from an id and a sparse list of raw cells.
// Coordinates are normalized to the minimum (x, y) so the result's bounding
// box always starts at the origin. Returns an error if cells is empty after
// filtering non-filled entries, matching the "at least one filled
// cell" invariant.
func New(id string, raw []Cell) (*Footprint, error) {
	filled := make([]Cell, 0, len(raw))
	for _, c := range raw {
		if c.Stack.Filled > 0 {
			filled = append(filled, c)
		}
	}
	if len(filled) == 0 {
		return nil, fmt.Errorf("footprint %q: no filled cells", id)
	}

	minX, minY := filled[0].X, filled[0].Y
	for _, c := range filled {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}

	norm := make([]Cell, len(filled))
	maxX, maxY := 0, 0
	for i, c := range filled {
		nc := Cell{X: c.X - minX, Y: c.Y - minY, Stack: c.Stack}
		norm[i] = nc
		if nc.X > maxX {
			maxX = nc.X
		}
		if nc.Y > maxY {
			maxY = nc.Y
		}
	}
	sortCells(norm)

	w, h := maxX+1, maxY+1

	fp := &Footprint{
		id:    id,
		cells: norm,
		w:     w,
		h:     h,
		area:  len(norm),
	}
	fp.precomputeRotation()
	return fp, nil
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}

// precomputeRotation builds the 90° cell set once at construction time: a
// rotation of 90° swaps W and H and maps (cx, cy) -> (cy, W-1-cx).
func (f *Footprint) precomputeRotation() {
	rot := make([]Cell, len(f.cells))
	for i, c := range f.cells {
		rot[i] = Cell{X: c.Y, Y: f.w - 1 - c.X, Stack: c.Stack}
	}
	sortCells(rot)
	f.rot90 = rot
	f.w90, f.h90 = f.h, f.w
	f.sameAsRot0 = f.w == f.h && samePattern(f.cells, rot)
}

func samePattern(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			return false
		}
	}
	return true
}

// ID returns the footprint's opaque identifier.
func (f *Footprint) ID() string { return f.id }

// Cells returns the occupied cell offsets for the given rotation, relative
// to the footprint's own origin (0, 0).
func (f *Footprint) Cells(rotation Rotation) []Cell {
	if rotation == Rot90 {
		return f.rot90
	}
	return f.cells
}

// Bounds returns (W, H) for the given rotation.
func (f *Footprint) Bounds(rotation Rotation) (w, h int) {
	if rotation == Rot90 {
		return f.w90, f.h90
	}
	return f.w, f.h
}

// Area returns the occupied-cell count, invariant under rotation.
func (f *Footprint) Area() int { return f.area }

// Density returns area / (W*H) for the given rotation.
func (f *Footprint) Density(rotation Rotation) float64 {
	w, h := f.Bounds(rotation)
	if w == 0 || h == 0 {
		return 0
	}
	return float64(f.area) / float64(w*h)
}

// DistinctRotations returns the rotations the Candidate Generator should
// enumerate: just {Rot0} when the 90° view is pattern-identical (a square
// footprint with 4-fold symmetry), else {Rot0, Rot90}.
func (f *Footprint) DistinctRotations() []Rotation {
	if f.sameAsRot0 {
		return []Rotation{Rot0}
	}
	return []Rotation{Rot0, Rot90}
}
