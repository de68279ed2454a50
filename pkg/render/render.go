// Package render draws a Placement Record as a text grid for terminal
// inspection: occupied cells show the owning block's glyph, margins and
// empty interior cells are shaded distinctly.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/eng618/deck-packer/pkg/footprint"
	"github.com/eng618/deck-packer/pkg/record"
)

// glyphs cycles through single characters for successive placed poses so
// adjacent blocks are visually distinguishable without needing the full
// id printed in each cell.
const glyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ToWriter prints rec's carrier as a grid: each occupied cell shows the
// glyph of the block owning it (looked up from catalog by id, rotated
// per the pose), '.' for an empty usable-interior cell, and '#' for a
// margin cell. catalog may be nil, in which case each placed block is
// drawn as a single glyph at its origin only.
func ToWriter(w io.Writer, rec record.Record, catalog map[string]*footprint.Footprint, bowMargin, sternMargin, sideMargin int, showCoords bool) {
	width, height := rec.Carrier.Width, rec.Carrier.Height
	if width <= 0 || height <= 0 {
		fmt.Fprintf(w, "invalid carrier size: %dx%d\n", width, height)
		return
	}

	grid := make([][]byte, height)
	for y := range grid {
		grid[y] = make([]byte, width)
		for x := range grid[y] {
			if x < sternMargin || x >= width-bowMargin || y < sideMargin || y >= height-sideMargin {
				grid[y][x] = '#'
			} else {
				grid[y][x] = '.'
			}
		}
	}

	for i, p := range rec.Placed {
		g := glyphs[i%len(glyphs)]
		paintPose(grid, p, catalog, g, width, height)
	}

	name := rec.Carrier.ShipName
	if name == "" {
		name = "(unnamed carrier)"
	}
	fmt.Fprintf(w, "%s (carrier %dx%d, %d/%d placed, score %.3f)\n", name, width, height, rec.PlacedCount, rec.TotalCount, rec.Score)

	fmt.Fprint(w, "   +")
	fmt.Fprint(w, strings.Repeat("--", width))
	fmt.Fprint(w, "+\n")

	for y := height - 1; y >= 0; y-- {
		if showCoords {
			fmt.Fprintf(w, "%2d ", y)
		} else {
			fmt.Fprint(w, "   ")
		}
		fmt.Fprint(w, "|")
		for x := 0; x < width; x++ {
			fmt.Fprintf(w, " %c", grid[y][x])
		}
		fmt.Fprint(w, " |\n")
	}

	fmt.Fprint(w, "   +")
	fmt.Fprint(w, strings.Repeat("--", width))
	fmt.Fprint(w, "+\n")

	if showCoords {
		fmt.Fprint(w, "   ")
		for x := 0; x < width; x++ {
			fmt.Fprintf(w, " %d", x%10)
		}
		fmt.Fprint(w, "\n")
	}

	if len(rec.UnplacedIDs) > 0 {
		fmt.Fprintf(w, "\nunplaced: %s\n", strings.Join(rec.UnplacedIDs, ", "))
	}
	fmt.Fprintln(w, "\nLegend: '#' margin, '.' empty usable cell, other glyphs are placed blocks (by order placed).")
}

// paintPose marks every cell a placed block's rotated footprint covers.
// When catalog is nil or the block id isn't found, it falls back to
// marking just the pose's origin cell.
func paintPose(grid [][]byte, pose record.Pose, catalog map[string]*footprint.Footprint, g byte, width, height int) {
	fp, ok := catalog[pose.BlockID]
	if !ok {
		if pose.X >= 0 && pose.X < width && pose.Y >= 0 && pose.Y < height {
			grid[pose.Y][pose.X] = g
		}
		return
	}
	for _, c := range fp.Cells(pose.Rotation) {
		x, y := pose.X+c.X, pose.Y+c.Y
		if x >= 0 && x < width && y >= 0 && y < height {
			grid[y][x] = g
		}
	}
}
