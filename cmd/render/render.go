// Package render implements the "render" subcommand: draw a Placement
// Record as an ASCII/Unicode deck diagram for terminal inspection.
package render

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eng618/deck-packer/pkg/common"
	"github.com/eng618/deck-packer/pkg/jobio"
	"github.com/eng618/deck-packer/pkg/render"
)

var (
	jobFile    string
	recordFile string
	coords     bool
)

var renderCmd = &cobra.Command{
	Use:     "render",
	Aliases: []string{"r", "draw"},
	Short:   "Render a Placement Record to the terminal",
	Long: `Render draws a Placement Record's carrier as a text grid: each
occupied cell shows the glyph of the block owning it, '.' marks an empty
usable cell, and '#' marks a margin cell.

Examples:
  deck-packer render --file jobs/bay3.json
  deck-packer render -f jobs/bay3.json --record jobs/bay3.record.json --coords`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jobFile == "" {
			return fmt.Errorf("please provide --file with the job file a record was produced from")
		}
		if recordFile == "" {
			recordFile = common.OutputPathFor(jobFile, "")
		}

		doc, err := jobio.Load(jobFile)
		if err != nil {
			return err
		}
		catalog, err := jobio.Catalog(doc)
		if err != nil {
			return err
		}
		rec, err := jobio.ReadRecord(recordFile)
		if err != nil {
			return err
		}

		render.ToWriter(cmd.OutOrStdout(), rec, catalog, doc.Carrier.BowMargin, doc.Carrier.SternMargin, doc.Carrier.SideMargin, coords)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&jobFile, "file", "f", "", "path to the job file a record was produced from")
	renderCmd.Flags().StringVarP(&recordFile, "record", "r", "", "path to the Placement Record to render (default: <job>.record.json)")
	renderCmd.Flags().BoolVarP(&coords, "coords", "c", false, "show axis coordinates")
}

// GetCommand returns the render command for registration with root.
func GetCommand() *cobra.Command {
	return renderCmd
}
