package search

import (
	"sort"

	"github.com/eng618/deck-packer/pkg/footprint"
)

// orderBlocks sorts footprints by (-W, -A, -density, id): widest first,
// then largest area, then densest, then by id for determinism
// for tie-break stability. W, area and density are taken at rotation 0; they are
// static properties of the footprint used only to pick a visitation order,
// not a commitment to that rotation.
func orderBlocks(footprints []*footprint.Footprint) []*footprint.Footprint {
	ordered := make([]*footprint.Footprint, len(footprints))
	copy(ordered, footprints)

	sort.Slice(ordered, func(i, j int) bool {
		wi, _ := ordered[i].Bounds(footprint.Rot0)
		wj, _ := ordered[j].Bounds(footprint.Rot0)
		if wi != wj {
			return wi > wj
		}
		ai, aj := ordered[i].Area(), ordered[j].Area()
		if ai != aj {
			return ai > aj
		}
		di, dj := ordered[i].Density(footprint.Rot0), ordered[j].Density(footprint.Rot0)
		if di != dj {
			return di > dj
		}
		return ordered[i].ID() < ordered[j].ID()
	})
	return ordered
}
