// Package batch implements the "batch" subcommand: run the Search Engine
// over several job files, optionally concurrently, bounded by the root
// command's --workers flag.
package batch

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	pkgbatch "github.com/eng618/deck-packer/pkg/batch"
	"github.com/eng618/deck-packer/pkg/common"
)

var (
	globPattern string
	outputDir   string
	dumpDir     string
	overwrite   bool
)

var batchCmd = &cobra.Command{
	Use:     "batch",
	Aliases: []string{"b"},
	Short:   "Pack several job files in one run",
	Long: `Batch runs the search engine over every job file matching --glob,
optionally concurrently (bounded by the root command's --workers flag),
writing a Placement Record for each and printing a summary.

Examples:
  deck-packer batch --glob "jobs/*.json"
  deck-packer --workers 4 batch --glob "jobs/*.json" --overwrite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if globPattern == "" {
			return fmt.Errorf("please provide --glob matching the job files to pack")
		}
		paths, err := filepath.Glob(globPattern)
		if err != nil {
			return fmt.Errorf("invalid --glob pattern: %w", err)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no job files matched %q", globPattern)
		}

		common.Info("Packing %d job file(s) with %d worker(s)...", len(paths), common.Workers)

		result := pkgbatch.Run(paths, pkgbatch.Config{
			Workers:   common.Workers,
			OutputDir: outputDir,
			DumpDir:   dumpDir,
			Overwrite: overwrite,
		})

		for _, r := range result.Jobs {
			switch {
			case r.Skipped:
				common.Info("  - %s (skipped, output exists)", r.JobPath)
			case r.Success:
				color.Green("  ✓ %s: %d/%d placed, score %.3f (%dms)", r.JobPath, r.PlacedCount, r.TotalCount, r.Score, r.ElapsedMS)
			default:
				color.Red("  ✗ %s: %s", r.JobPath, r.Error)
			}
		}

		color.Cyan("batch complete: %d succeeded, %d failed, %d skipped in %s",
			result.SuccessCount, result.FailureCount, result.SkippedCount, result.TotalTime)

		if result.FailureCount > 0 {
			return fmt.Errorf("%d job(s) failed", result.FailureCount)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&globPattern, "glob", "g", "", "glob pattern matching job files to pack")
	batchCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory to write Placement Records to (default: next to each job file)")
	batchCmd.Flags().StringVar(&dumpDir, "dump-dir", "", "directory to write failure dumps to (default: disabled)")
	batchCmd.Flags().BoolVar(&overwrite, "overwrite", false, "repack jobs whose output record already exists")
}

// GetCommand returns the batch command for registration with root.
func GetCommand() *cobra.Command {
	return batchCmd
}
