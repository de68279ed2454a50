// Package packing is the core's single public entry point: it wires
// pkg/carrier, pkg/candidate and pkg/search together over caller-supplied
// Footprints and a Carrier configuration, and emits a Placement Record.
package packing

import (
	"time"

	"github.com/eng618/deck-packer/pkg/candidate"
	"github.com/eng618/deck-packer/pkg/carrier"
)

// Config is the external Carrier configuration input.
type Config struct {
	ShipName       string
	Width, Height  int
	BowMargin      int
	SternMargin    int
	SideMargin     int
	BlockClearance int
	NeighborPolicy carrier.NeighborPolicy
	BlockIDs       []string // ordered selection of which catalog blocks to attempt
	MaxTimeSeconds float64
}

// Options tunes the run beyond the Carrier configuration: candidate
// scoring/step overrides and a progress callback.
type Options struct {
	Candidate  candidate.Config
	OnProgress func(Progress)
}

// Progress is handed to Options.OnProgress each time the search records a
// new best-so-far.
type Progress struct {
	PlacedCount int
	TotalCount  int
	Score       float64
	Elapsed     time.Duration
}

// DefaultOptions mirrors candidate.DefaultConfig with no progress callback.
func DefaultOptions() Options {
	return Options{Candidate: candidate.DefaultConfig()}
}

// Stats reports run diagnostics that are not part of the Placement Record
// itself.
type Stats struct {
	PlacementAttempts int
	Elapsed           time.Duration
}
