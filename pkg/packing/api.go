package packing

import (
	"fmt"
	"time"

	"github.com/eng618/deck-packer/pkg/candidate"
	"github.com/eng618/deck-packer/pkg/carrier"
	"github.com/eng618/deck-packer/pkg/footprint"
	"github.com/eng618/deck-packer/pkg/record"
	"github.com/eng618/deck-packer/pkg/search"
)

// ConfigError marks an invalid-configuration failure: fail fast, before
// any search begins.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return "invalid configuration: " + e.Message }

// Pack runs a full search over catalog (a block id -> Footprint lookup,
// typically everything a voxeliser produced for this job) restricted to
// cfg.BlockIDs, and returns the resulting Placement Record.
//
// Pack validates cfg fully before touching the grid: an unknown block id,
// a non-positive dimension, or margins that leave no usable interior are
// ConfigErrors, never a partial search.
func Pack(cfg Config, catalog map[string]*footprint.Footprint, opts Options) (record.Record, Stats, error) {
	if cfg.MaxTimeSeconds <= 0 {
		cfg.MaxTimeSeconds = 0
	}
	selected := make([]*footprint.Footprint, 0, len(cfg.BlockIDs))
	for _, id := range cfg.BlockIDs {
		fp, ok := catalog[id]
		if !ok {
			return record.Record{}, Stats{}, ConfigError{Message: fmt.Sprintf("unknown block id %q", id)}
		}
		selected = append(selected, fp)
	}

	grid, err := carrier.New(carrier.Config{
		Width:          cfg.Width,
		Height:         cfg.Height,
		BowMargin:      cfg.BowMargin,
		SternMargin:    cfg.SternMargin,
		SideMargin:     cfg.SideMargin,
		BlockClearance: cfg.BlockClearance,
		NeighborPolicy: cfg.NeighborPolicy,
	})
	if err != nil {
		return record.Record{}, Stats{}, ConfigError{Message: err.Error()}
	}

	candCfg := opts.Candidate
	var zeroCandCfg candidate.Config
	if candCfg == zeroCandCfg {
		candCfg = DefaultOptions().Candidate
	}

	searchOpts := search.Options{
		MaxTime:         time.Duration(cfg.MaxTimeSeconds * float64(time.Second)),
		CandidateConfig: candCfg,
		Prune:           true,
	}
	if opts.OnProgress != nil {
		searchOpts.OnProgress = func(r record.Record) {
			opts.OnProgress(Progress{
				PlacedCount: r.PlacedCount,
				TotalCount:  r.TotalCount,
				Score:       r.Score,
				Elapsed:     time.Duration(r.ElapsedSeconds * float64(time.Second)),
			})
		}
	}

	ci := record.CarrierInfo{ShipName: cfg.ShipName, Width: cfg.Width, Height: cfg.Height}
	engine := search.New(grid, selected, ci, searchOpts)
	rec := engine.Run()

	return rec, Stats{PlacementAttempts: engine.Attempts(), Elapsed: time.Duration(rec.ElapsedSeconds * float64(time.Second))}, nil
}
