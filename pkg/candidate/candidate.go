// Package candidate implements the deterministic candidate-position
// generator: for a footprint and the current carrier grid state, it
// produces a ranked sequence of (x, y, rotation) poses.
package candidate

import (
	"sort"

	"github.com/eng618/deck-packer/pkg/carrier"
	"github.com/eng618/deck-packer/pkg/footprint"
)

// Candidate is a single ranked pose proposal.
type Candidate struct {
	X, Y     int
	Rotation footprint.Rotation
	Score    int // fixed-point, weights*components scaled by scoreScale
}

// scoreScale avoids floating-point instability in the sort order, per the
// core design notes: weights and components are multiplied by a common
// factor before comparison.
const scoreScale = 10000

// Weights holds the heuristic's six component weights. The zero value is
// invalid; use DefaultWeights().
type Weights struct {
	BottomBias     float64
	LeftAlign      float64
	Adjacency      float64
	AreaFraction   float64
	BoundaryTouch  float64
	Density        float64
}

// DefaultWeights returns the canonical six-component weight vector.
func DefaultWeights() Weights {
	return Weights{
		BottomBias:    0.40,
		LeftAlign:     0.20,
		Adjacency:     0.20,
		AreaFraction:  0.10,
		BoundaryTouch: 0.05,
		Density:       0.05,
	}
}

// Config tunes enumeration. StepX/StepY default to 1. K caps the returned
// list length; 0 means unbounded.
type Config struct {
	StepX, StepY int
	K            int
	Weights      Weights
}

// DefaultConfig returns step 1, unbounded K, and the canonical weights.
func DefaultConfig() Config {
	return Config{StepX: 1, StepY: 1, K: 0, Weights: DefaultWeights()}
}

// Generate returns the ranked, clearance-filtered candidate list for fp
// against the current state of g.
func Generate(g *carrier.Grid, fp *footprint.Footprint, cfg Config) []Candidate {
	if cfg.StepX <= 0 {
		cfg.StepX = 1
	}
	if cfg.StepY <= 0 {
		cfg.StepY = 1
	}

	var raw []poseCandidate
	for _, rot := range fp.DistinctRotations() {
		raw = append(raw, sweepPoses(g, fp, rot, cfg)...)
	}

	placedCount, _ := g.Score()
	if placedCount == 0 {
		for _, rot := range fp.DistinctRotations() {
			raw = append(raw, strategicPoses(g, fp, rot)...)
		}
	}

	seen := make(map[poseKey]bool, len(raw))
	out := make([]Candidate, 0, len(raw))
	for _, p := range raw {
		key := poseKey{p.x, p.y, p.rot}
		if seen[key] {
			continue
		}
		if !g.CanPlace(fp, p.rot, p.x, p.y) {
			continue
		}
		seen[key] = true
		out = append(out, Candidate{
			X: p.x, Y: p.y, Rotation: p.rot,
			Score: scoreCandidate(g, fp, p.rot, p.x, p.y, cfg.Weights),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Rotation < out[j].Rotation
	})

	if cfg.K > 0 && len(out) > cfg.K {
		out = out[:cfg.K]
	}
	return out
}

type poseKey struct {
	x, y int
	rot  footprint.Rotation
}

type poseCandidate struct {
	x, y int
	rot  footprint.Rotation
}

// sweepPoses enumerates high-x-first, low-y-first over the usable interior
// at the given rotation.
func sweepPoses(g *carrier.Grid, fp *footprint.Footprint, rot footprint.Rotation, cfg Config) []poseCandidate {
	w, h := fp.Bounds(rot)
	xMinI, xMaxI, yMinI, yMaxI := g.UsableInterior()
	xMin, xMax := xMinI, xMaxI-w
	yMin, yMax := yMinI, yMaxI-h
	if xMax < xMin || yMax < yMin {
		return nil
	}

	var poses []poseCandidate
	for y := yMin; y <= yMax; y += cfg.StepY {
		for x := xMax; x >= xMin; x -= cfg.StepX {
			poses = append(poses, poseCandidate{x: x, y: y, rot: rot})
		}
	}
	return poses
}

// strategicPoses returns the four usable-interior corners plus one pose
// at the centre of the interior, injected for the very first placement on an empty
// grid so the search has a fast, well-scoring seed.
func strategicPoses(g *carrier.Grid, fp *footprint.Footprint, rot footprint.Rotation) []poseCandidate {
	w, h := fp.Bounds(rot)
	xMinI, xMaxI, yMinI, yMaxI := g.UsableInterior()
	xMax, yMax := xMaxI-w, yMaxI-h
	if xMax < xMinI || yMax < yMinI {
		return nil
	}

	xMid := xMinI + (xMax-xMinI)/2
	yMid := yMinI + (yMax-yMinI)/2

	return []poseCandidate{
		{x: xMinI, y: yMinI, rot: rot},
		{x: xMax, y: yMinI, rot: rot},
		{x: xMinI, y: yMax, rot: rot},
		{x: xMax, y: yMax, rot: rot},
		{x: xMid, y: yMid, rot: rot},
	}
}

// scoreCandidate computes the six-component heuristic in a single pass,
// returning a fixed-point integer.
func scoreCandidate(g *carrier.Grid, fp *footprint.Footprint, rot footprint.Rotation, x, y int, w Weights) int {
	carrierW, carrierH := float64(g.Width()), float64(g.Height())
	cells := fp.Cells(rot)

	bottomBias := 1 - float64(y)/carrierH
	leftAlign := 1 - float64(x)/carrierW
	areaFraction := float64(fp.Area()) / (carrierW * carrierH)
	density := fp.Density(rot)
	adjacency := adjacencyFraction(g, cells, x, y)
	boundary := boundaryFraction(g, cells, x, y)

	s := w.BottomBias*bottomBias +
		w.LeftAlign*leftAlign +
		w.Adjacency*adjacency +
		w.AreaFraction*areaFraction +
		w.BoundaryTouch*boundary +
		w.Density*density

	return int(s * scoreScale)
}

// adjacencyFraction is the fraction of the footprint's own perimeter cells
// (cells with at least one missing 4-neighbour within the footprint) whose
// translated grid position is adjacent to the carrier edge or to a cell
// owned by another block.
func adjacencyFraction(g *carrier.Grid, cells []footprint.Cell, x, y int) float64 {
	set := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		set[[2]int{c.X, c.Y}] = true
	}

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	perimeter, adjacent := 0, 0
	for _, c := range cells {
		isPerimeter := false
		for _, d := range dirs {
			if !set[[2]int{c.X + d[0], c.Y + d[1]}] {
				isPerimeter = true
				break
			}
		}
		if !isPerimeter {
			continue
		}
		perimeter++
		if touchesEdgeOrOther(g, x+c.X, y+c.Y) {
			adjacent++
		}
	}
	if perimeter == 0 {
		return 0
	}
	return float64(adjacent) / float64(perimeter)
}

func touchesEdgeOrOther(g *carrier.Grid, cx, cy int) bool {
	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, d := range dirs {
		nx, ny := cx+d[0], cy+d[1]
		if nx < 0 || nx >= g.Width() || ny < 0 || ny >= g.Height() {
			return true
		}
		empty, err := g.IsEmpty(nx, ny)
		if err != nil {
			return true
		}
		if !empty {
			return true
		}
	}
	return false
}

// boundaryFraction is the fraction of all footprint cells whose translated
// position touches the usable interior boundary.
func boundaryFraction(g *carrier.Grid, cells []footprint.Cell, x, y int) float64 {
	xMin, xMax, yMin, yMax := g.UsableInterior()
	touch := 0
	for _, c := range cells {
		cx, cy := x+c.X, y+c.Y
		if cx == xMin || cx == xMax-1 || cy == yMin || cy == yMax-1 {
			touch++
		}
	}
	if len(cells) == 0 {
		return 0
	}
	return float64(touch) / float64(len(cells))
}
