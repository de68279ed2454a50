// Package validate implements the "validate" subcommand: re-check a
// previously emitted Placement Record against the quantified invariants
// against its originating job.
package validate

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eng618/deck-packer/pkg/common"
	"github.com/eng618/deck-packer/pkg/jobio"
	"github.com/eng618/deck-packer/pkg/verify"
)

var (
	jobFile    string
	recordFile string
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"val", "v"},
	Short:   "Validate a Placement Record against its job",
	Long: `Validate re-checks every invariant (non-overlap, margin
containment, inter-block clearance, placed+unplaced accounting, score
range, the completeness flag) against a previously emitted Placement
Record and its originating job file.

Validate collects every violation found instead of stopping at the
first, matching the original job's clearance rules exactly.

Examples:
  deck-packer validate --file jobs/bay3.json --record jobs/bay3.record.json
  deck-packer validate -f jobs/bay3.json -r jobs/bay3.record.json -v`,
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

		common.Info("Validating %s against %s...", recordFile, jobFile)
		violations := verify.Record(doc, catalog, rec)

		if len(violations) == 0 {
			color.Green("✓ %s is a valid Placement Record (%d/%d placed)", recordFile, rec.PlacedCount, rec.TotalCount)
			return nil
		}

		for _, v := range violations {
			color.Red("  ✗ %v", v)
		}
		return fmt.Errorf("validation failed with %d violation(s)", len(violations))
	},
}

func init() {
	validateCmd.Flags().StringVarP(&jobFile, "file", "f", "", "path to the job file a record was produced from")
	validateCmd.Flags().StringVarP(&recordFile, "record", "r", "", "path to the Placement Record to validate (default: <job>.record.json)")
}

// GetCommand returns the validate command for registration with root.
func GetCommand() *cobra.Command {
	return validateCmd
}
