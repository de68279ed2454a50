// Package search implements the anytime heuristic-backtracking Search
// Engine: it orders blocks, asks pkg/candidate for ranked poses, uses
// pkg/carrier to accept or reject them, and maintains a best-so-far
// Placement Record under a wall-clock budget.
package search

import (
	"time"

	"github.com/eng618/deck-packer/pkg/candidate"
	"github.com/eng618/deck-packer/pkg/carrier"
	"github.com/eng618/deck-packer/pkg/footprint"
	"github.com/eng618/deck-packer/pkg/record"
)

// Options tunes a single search run.
type Options struct {
	MaxTime         time.Duration
	CandidateConfig candidate.Config
	// Prune enables block-count pruning. It is safe to
	// leave on; partial-solution semantics are preserved either way.
	Prune bool
	// OnProgress, if set, is invoked once each time a new best-so-far is
	// found, never from inside the per-candidate hot loop itself.
	OnProgress func(record.Record)
}

// DefaultOptions returns a 1-second budget, the candidate package's
// default scoring config, and pruning enabled.
func DefaultOptions() Options {
	return Options{
		MaxTime:         time.Second,
		CandidateConfig: candidate.DefaultConfig(),
		Prune:           true,
	}
}

// Engine runs a single search. It exclusively owns the working Grid for
// the duration of Run.
type Engine struct {
	grid        *carrier.Grid
	blocks      []*footprint.Footprint
	opts        Options
	carrierInfo record.CarrierInfo
	total       int

	start    time.Time
	timedOut bool

	current []record.Pose // the in-progress placement trace, stack-ordered by depth

	bestPlacedCount int
	bestScore       float64
	bestPlaced      []record.Pose
	bestElapsed     time.Duration
	haveBest        bool

	attempts int
}

// Attempts returns the number of Place calls the search issued, successful
// or not — a diagnostic counter, not part of the Placement Record.
func (e *Engine) Attempts() int { return e.attempts }

// New builds an Engine over grid for the given footprints. grid must be
// empty; the engine mutates it in place during Run and leaves it holding
// whatever the search's final recursive path left behind (not necessarily
// the best-so-far — callers should read the returned Record, not the
// grid, for the result).
func New(grid *carrier.Grid, footprints []*footprint.Footprint, ci record.CarrierInfo, opts Options) *Engine {
	if opts.MaxTime < 0 {
		opts.MaxTime = 0
	}
	return &Engine{
		grid:        grid,
		blocks:      orderBlocks(footprints),
		opts:        opts,
		carrierInfo: ci,
		total:       len(footprints),
		current:     make([]record.Pose, 0, len(footprints)),
	}
}

// Run executes the search to completion or until the time budget elapses,
// returning the best-so-far Placement Record. It never returns a torn
// state: place/remove are atomic and the grid is always consistent at
// every polling point.
func (e *Engine) Run() record.Record {
	e.start = time.Now()
	// Record the empty starting state before the first time check, so a
	// budget that has already elapsed still yields a zero-placement record.
	e.updateBest()
	e.recurse(0)
	if !e.haveBest {
		// Defensive: the starting state is recorded above, so haveBest is
		// always true here.
		panic("defect: search completed without ever recording a best-so-far")
	}
	return e.buildRecord(e.bestPlacedCount, e.bestScore, e.bestPlaced, e.bestElapsed)
}

// recurse implements the six-step place/recurse/backtrack search at depth d.
func (e *Engine) recurse(d int) {
	if e.timedOut {
		return
	}
	if time.Since(e.start) >= e.opts.MaxTime {
		e.timedOut = true
		return
	}

	e.updateBest()

	if d == len(e.blocks) {
		return
	}

	if e.opts.Prune && e.bestPlacedCount > len(e.current)+(len(e.blocks)-d) {
		return
	}

	block := e.blocks[d]
	cands := candidate.Generate(e.grid, block, e.opts.CandidateConfig)

	for _, c := range cands {
		if e.timedOut {
			return
		}
		if time.Since(e.start) >= e.opts.MaxTime {
			e.timedOut = true
			return
		}

		e.attempts++
		if !e.grid.Place(block, c.Rotation, c.X, c.Y) {
			continue
		}
		e.current = append(e.current, record.Pose{BlockID: block.ID(), X: c.X, Y: c.Y, Rotation: c.Rotation})
		e.recurse(d + 1)
		e.current = e.current[:len(e.current)-1]
		e.grid.Remove(block.ID())

		if e.timedOut {
			return
		}
	}

	// The skip branch: recurse without placing B_d. This is what lets the
	// search return a partial solution when no full packing exists.
	e.recurse(d + 1)
}

// objective computes the lexicographic secondary score:
// 0.7 * (placed/total) + 0.3 * utilisation.
func (e *Engine) objective(placedCount int, utilisation float64) float64 {
	if e.total == 0 {
		return 0.3 * utilisation
	}
	return 0.7*(float64(placedCount)/float64(e.total)) + 0.3*utilisation
}

// updateBest evaluates the current state and replaces the best-so-far if
// (placedCount, score) lexicographically exceeds it.
func (e *Engine) updateBest() {
	placedCount, utilisation := e.grid.Score()
	score := e.objective(placedCount, utilisation)

	improved := !e.haveBest ||
		placedCount > e.bestPlacedCount ||
		(placedCount == e.bestPlacedCount && score > e.bestScore)
	if !improved {
		return
	}

	e.bestPlacedCount = placedCount
	e.bestScore = score
	e.bestPlaced = append(e.bestPlaced[:0:0], e.current...)
	e.bestElapsed = time.Since(e.start)
	e.haveBest = true

	if e.opts.OnProgress != nil {
		e.opts.OnProgress(e.buildRecord(placedCount, score, e.bestPlaced, e.bestElapsed))
	}
}

func (e *Engine) buildRecord(placedCount int, score float64, placed []record.Pose, elapsed time.Duration) record.Record {
	placedSet := make(map[string]bool, len(placed))
	for _, p := range placed {
		placedSet[p.BlockID] = true
	}
	unplaced := make([]string, 0, e.total-placedCount)
	for _, b := range e.blocks {
		if !placedSet[b.ID()] {
			unplaced = append(unplaced, b.ID())
		}
	}
	return record.New(e.carrierInfo, placed, unplaced, score, e.total, elapsed.Seconds())
}
