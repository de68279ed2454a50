// Package pack implements the "pack" subcommand: run the Search Engine
// over a single carrier/footprint job file and write the resulting
// Placement Record.
package pack

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eng618/deck-packer/pkg/common"
	"github.com/eng618/deck-packer/pkg/jobio"
	"github.com/eng618/deck-packer/pkg/packing"
	"github.com/eng618/deck-packer/pkg/record"
	"github.com/eng618/deck-packer/pkg/ui"
)

var (
	jobFile    string
	outputFile string
	maxSeconds float64
	dumpOnFail bool
	dumpFile   string
)

// packCmd runs a single packing job.
var packCmd = &cobra.Command{
	Use:     "pack",
	Aliases: []string{"p", "run"},
	Short:   "Pack a carrier from a job file",
	Long: `Pack runs the search engine over a single job file describing a
carrier and its footprint catalog, writing a Placement Record next to the
job file (or to --output).

Examples:
  deck-packer pack --file jobs/bay3.json
  deck-packer pack -f jobs/bay3.json -o out/bay3.record.json --time 5
  deck-packer pack -f jobs/bay3.json -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jobFile == "" {
			return fmt.Errorf("please provide --file with a job file to pack")
		}
		if err := common.ValidateExtension(jobFile, ".json"); err != nil {
			return fmt.Errorf("invalid job file: %w", err)
		}

		doc, err := jobio.Load(jobFile)
		if err != nil {
			return err
		}
		catalog, err := jobio.Catalog(doc)
		if err != nil {
			dumpFailure(jobFile, err)
			return err
		}
		cfg, err := jobio.Config(doc)
		if err != nil {
			dumpFailure(jobFile, err)
			return err
		}
		if maxSeconds > 0 {
			cfg.MaxTimeSeconds = maxSeconds
		}

		spin := ui.NewSpinner(fmt.Sprintf("packing %s", jobFile))
		spin.Start()

		opts := packing.DefaultOptions()
		opts.OnProgress = func(p packing.Progress) {
			spin.UpdateMessage("packing %s — %d/%d placed, score %.3f", jobFile, p.PlacedCount, p.TotalCount, p.Score)
		}

		rec, stats, err := packing.Pack(cfg, catalog, opts)
		spin.Stop()
		if err != nil {
			dumpFailure(jobFile, err)
			return fmt.Errorf("pack failed: %w", err)
		}
		if rec.TotalCount > 0 && rec.PlacedCount == 0 {
			dumpFailure(jobFile, fmt.Errorf("search finished with zero placements"))
		}

		outPath := common.OutputPathFor(jobFile, outputFile)
		if err := jobio.WriteRecord(outPath, rec); err != nil {
			return err
		}

		summarize(rec, outPath, stats.PlacementAttempts)
		return nil
	},
}

// dumpFailure writes a deterministic JSON dump of the offending job when
// --dump is set, matching cmd/batch's failure-dump behaviour for a single
// job (a configuration/footprint error, or a run that places zero blocks).
func dumpFailure(jobPath string, cause error) {
	if !dumpOnFail {
		return
	}
	path := dumpFile
	if path == "" {
		path = common.FailureDumpPathFor(jobPath)
	}
	dump := map[string]any{"job": jobPath, "cause": cause.Error()}
	if err := jobio.WriteJSON(path, dump); err != nil {
		common.Warning("failed to write failure dump for %s: %v", jobPath, err)
		return
	}
	common.Warning("Wrote failure dump: %s (%v)", path, cause)
}

// summarize prints a one-line colored verdict: green for a complete
// packing, yellow for a partial one.
func summarize(rec record.Record, outPath string, attempts int) {
	if rec.Complete {
		color.Green("✓ complete: %d/%d blocks placed, score %.3f (%d placement attempts) -> %s",
			rec.PlacedCount, rec.TotalCount, rec.Score, attempts, outPath)
		return
	}
	color.Yellow("⚠ partial: %d/%d blocks placed, score %.3f, unplaced=%v -> %s",
		rec.PlacedCount, rec.TotalCount, rec.Score, rec.UnplacedIDs, outPath)
}

func init() {
	packCmd.Flags().StringVarP(&jobFile, "file", "f", "", "path to a job file describing the carrier and footprint catalog")
	packCmd.Flags().StringVarP(&outputFile, "output", "o", "", "path to write the Placement Record (default: <job>.record.json)")
	packCmd.Flags().Float64VarP(&maxSeconds, "time", "t", 0, "override the job file's max_time_seconds budget")
	packCmd.Flags().BoolVar(&dumpOnFail, "dump", false, "write a JSON failure dump if the job fails or places zero blocks")
	packCmd.Flags().StringVar(&dumpFile, "dump-file", "", "path for the failure dump (default: <job>.failure.json)")
}

// GetCommand returns the pack command for registration with root.
func GetCommand() *cobra.Command {
	return packCmd
}
