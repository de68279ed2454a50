// Package record defines the immutable Placement Record emitted by a
// packing run: the placed poses, the unplaced block ids, the score, and
// enough metadata to serialise for external collaborators.
package record

import "github.com/eng618/deck-packer/pkg/footprint"

// Pose is a placement of one block: its origin plus rotation.
type Pose struct {
	BlockID  string             `json:"id"`
	X        int                `json:"x"`
	Y        int                `json:"y"`
	Rotation footprint.Rotation `json:"rotation"`
}

// CarrierInfo identifies the carrier a record was produced for.
type CarrierInfo struct {
	ShipName string `json:"ship_name,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Record is the immutable snapshot of a packing attempt. Once built it is
// safe to share with external collaborators for serialisation: nothing
// here is mutated after New returns.
type Record struct {
	Carrier        CarrierInfo `json:"carrier"`
	Placed         []Pose      `json:"placed"`
	UnplacedIDs    []string    `json:"unplaced"`
	Score          float64     `json:"score"`
	PlacedCount    int         `json:"placed_count"`
	TotalCount     int         `json:"total_count"`
	SuccessRate    float64     `json:"success_rate"`
	ElapsedSeconds float64     `json:"elapsed_seconds"`
	Complete       bool        `json:"complete"`
}

// New builds a Record from its constituent parts, deep-copying the slices
// handed in so the result is independent of whatever mutable state the
// caller (typically a running search) produced them from.
func New(ci CarrierInfo, placed []Pose, unplacedIDs []string, score float64, totalCount int, elapsedSeconds float64) Record {
	p := make([]Pose, len(placed))
	copy(p, placed)
	u := make([]string, len(unplacedIDs))
	copy(u, unplacedIDs)

	placedCount := len(p)
	var successRate float64
	if totalCount > 0 {
		successRate = float64(placedCount) / float64(totalCount)
	}

	return Record{
		Carrier:        ci,
		Placed:         p,
		UnplacedIDs:    u,
		Score:          score,
		PlacedCount:    placedCount,
		TotalCount:     totalCount,
		SuccessRate:    successRate,
		ElapsedSeconds: elapsedSeconds,
		Complete:       placedCount == totalCount,
	}
}
