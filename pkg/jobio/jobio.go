// Package jobio reads and writes the external JSON contract: a job file
// describing a Carrier configuration plus the Footprint catalog to pack,
// and a Placement Record written back out. It is the only place in the
// core that touches encoding/json or the filesystem; pkg/packing stays
// free of I/O.
package jobio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/eng618/deck-packer/pkg/carrier"
	"github.com/eng618/deck-packer/pkg/footprint"
	"github.com/eng618/deck-packer/pkg/packing"
	"github.com/eng618/deck-packer/pkg/record"
)

// FootprintError marks an invalid-footprint failure: fail fast, before
// any search begins.
type FootprintError struct {
	BlockID string
	Err     error
}

func (e FootprintError) Error() string {
	return fmt.Sprintf("footprint %q: %v", e.BlockID, e.Err)
}

func (e FootprintError) Unwrap() error { return e.Err }

// CellDoc is the on-disk shape of one occupied cell:
// "(x:int, y:int, [below_empty:int, filled:int, above_empty:int])".
type CellDoc struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Stack []int `json:"stack"`
}

// FootprintDoc is the on-disk shape of one block record from the
// voxeliser.
type FootprintDoc struct {
	ID          string    `json:"id"`
	Cells       []CellDoc `json:"cells"`
	Orientation string    `json:"orientation,omitempty"`
}

// CarrierDoc is the on-disk shape of the Carrier configuration.
type CarrierDoc struct {
	ShipName       string  `json:"ship_name,omitempty"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	BowMargin      int     `json:"bow_margin"`
	SternMargin    int     `json:"stern_margin"`
	SideMargin     int     `json:"side_margin"`
	BlockClearance int     `json:"block_clearance"`
	NeighborPolicy string  `json:"neighbor_policy,omitempty"` // "manhattan" (default) or "chebyshev"
	MaxTimeSeconds float64 `json:"max_time_seconds"`
}

// JobDoc is the full on-disk job file: a Carrier plus the block ids it
// should attempt to place and the Footprint catalog they're drawn from.
type JobDoc struct {
	Carrier    CarrierDoc     `json:"carrier"`
	BlockIDs   []string       `json:"block_ids"`
	Footprints []FootprintDoc `json:"footprints"`
}

// Load reads and parses a job file from path. It does not validate
// carrier dimensions or footprint shapes beyond what decoding itself
// catches; that validation happens in Catalog, Config and packing.Pack,
// all before any search begins.
func Load(path string) (JobDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return JobDoc{}, fmt.Errorf("jobio: read %s: %w", path, err)
	}
	var doc JobDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return JobDoc{}, fmt.Errorf("jobio: parse %s: %w", path, err)
	}
	return doc, nil
}

// neighborPolicy maps the on-disk string to a carrier.NeighborPolicy,
// defaulting to Manhattan when empty; any other unrecognized text is an
// error.
func neighborPolicy(s string) (carrier.NeighborPolicy, error) {
	switch s {
	case "", "manhattan":
		return carrier.Manhattan, nil
	case "chebyshev":
		return carrier.Chebyshev, nil
	default:
		return carrier.Manhattan, fmt.Errorf("jobio: unknown neighbor_policy %q (want \"manhattan\" or \"chebyshev\")", s)
	}
}

// Catalog builds the id -> Footprint lookup packing.Pack expects,
// constructing each Footprint from its on-disk cells. A malformed
// footprint (no filled cells, for instance) surfaces as a FootprintError,
// one of the two fail-fast kinds reported before any search begins.
func Catalog(doc JobDoc) (map[string]*footprint.Footprint, error) {
	catalog := make(map[string]*footprint.Footprint, len(doc.Footprints))
	for _, fd := range doc.Footprints {
		cells := make([]footprint.Cell, 0, len(fd.Cells))
		for _, cd := range fd.Cells {
			stack := footprint.Stack{}
			switch len(cd.Stack) {
			case 0:
				stack.Filled = 1 // bare (x, y) with no stack metadata means "occupied"
			case 3:
				stack = footprint.Stack{BelowEmpty: cd.Stack[0], Filled: cd.Stack[1], AboveEmpty: cd.Stack[2]}
			default:
				return nil, FootprintError{BlockID: fd.ID, Err: fmt.Errorf("cell (%d,%d) stack triple has %d entries, want 0 or 3", cd.X, cd.Y, len(cd.Stack))}
			}
			cells = append(cells, footprint.Cell{X: cd.X, Y: cd.Y, Stack: stack})
		}
		fp, err := footprint.New(fd.ID, cells)
		if err != nil {
			return nil, FootprintError{BlockID: fd.ID, Err: err}
		}
		catalog[fd.ID] = fp
	}
	return catalog, nil
}

// Config converts a CarrierDoc plus the job's block id selection into a
// packing.Config. It is the only place a neighbor_policy parse error
// surfaces.
func Config(doc JobDoc) (packing.Config, error) {
	policy, err := neighborPolicy(doc.Carrier.NeighborPolicy)
	if err != nil {
		return packing.Config{}, err
	}
	maxTime := doc.Carrier.MaxTimeSeconds
	if maxTime <= 0 {
		maxTime = 1.0
	}
	return packing.Config{
		ShipName:       doc.Carrier.ShipName,
		Width:          doc.Carrier.Width,
		Height:         doc.Carrier.Height,
		BowMargin:      doc.Carrier.BowMargin,
		SternMargin:    doc.Carrier.SternMargin,
		SideMargin:     doc.Carrier.SideMargin,
		BlockClearance: doc.Carrier.BlockClearance,
		NeighborPolicy: policy,
		BlockIDs:       doc.BlockIDs,
		MaxTimeSeconds: maxTime,
	}, nil
}

// WriteRecord serialises a Placement Record to path as pretty-printed
// JSON matching the Placement Record's output schema.
func WriteRecord(path string, rec record.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("jobio: marshal record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("jobio: write %s: %w", path, err)
	}
	return nil
}

// ReadRecord reads back a previously written Placement Record, used by
// cmd/validate to re-check invariants against a record it didn't just
// produce.
func ReadRecord(path string) (record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return record.Record{}, fmt.Errorf("jobio: read %s: %w", path, err)
	}
	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record.Record{}, fmt.Errorf("jobio: parse %s: %w", path, err)
	}
	return rec, nil
}

// WriteJSON pretty-prints an arbitrary value to path, used for the
// failure dumps pkg/batch writes alongside a job that failed before or
// during search.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("jobio: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("jobio: write %s: %w", path, err)
	}
	return nil
}
