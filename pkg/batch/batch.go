// Package batch runs the Search Engine over several job files, optionally
// concurrently, each producing its own Placement Record.
package batch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/eng618/deck-packer/pkg/common"
	"github.com/eng618/deck-packer/pkg/jobio"
	"github.com/eng618/deck-packer/pkg/packing"
)

// Config tunes a batch run.
type Config struct {
	Workers   int    // concurrent jobs in flight; <=1 runs sequentially
	OutputDir string // "" keeps each record next to its job file
	DumpDir   string // where to write failure dumps; "" disables them
	Overwrite bool   // if false, a job whose output already exists is skipped
}

// Result is the outcome of a single job file within a batch.
type Result struct {
	JobPath     string
	OutputPath  string
	Success     bool
	Error       string
	Skipped     bool
	PlacedCount int
	TotalCount  int
	Score       float64
	ElapsedMS   int64
}

// BatchResult aggregates every job's Result plus summary counts.
type BatchResult struct {
	Jobs         []Result
	TotalTime    time.Duration
	SuccessCount int
	FailureCount int
	SkippedCount int
}

// Run packs every job file in jobPaths, writing each Placement Record
// next to its job file (or under cfg.OutputDir) and returning a summary.
// Jobs are independent: a failure in one (an invalid configuration or
// footprint) does not abort the rest of the batch.
func Run(jobPaths []string, cfg Config) *BatchResult {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	start := time.Now()
	results := make([]Result, len(jobPaths))

	sem := make(chan struct{}, cfg.Workers)
	var wg sync.WaitGroup
	for i, jobPath := range jobPaths {
		i, jobPath := i, jobPath
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = runOne(jobPath, cfg)
		}()
	}
	wg.Wait()

	batch := &BatchResult{Jobs: results, TotalTime: time.Since(start)}
	for _, r := range results {
		switch {
		case r.Skipped:
			batch.SkippedCount++
		case r.Success:
			batch.SuccessCount++
		default:
			batch.FailureCount++
		}
	}
	return batch
}

func outputPath(jobPath string, cfg Config) string {
	if cfg.OutputDir == "" {
		return common.OutputPathFor(jobPath, "")
	}
	base := filepath.Base(common.OutputPathFor(jobPath, ""))
	return filepath.Join(cfg.OutputDir, base)
}

func runOne(jobPath string, cfg Config) Result {
	result := Result{JobPath: jobPath, OutputPath: outputPath(jobPath, cfg)}
	start := time.Now()

	if !cfg.Overwrite {
		if _, err := jobio.ReadRecord(result.OutputPath); err == nil {
			result.Skipped = true
			common.Verbose("Skipping %s: output %s already exists", jobPath, result.OutputPath)
			return result
		}
	}

	doc, err := jobio.Load(jobPath)
	if err != nil {
		return fail(result, cfg, jobPath, err)
	}
	catalog, err := jobio.Catalog(doc)
	if err != nil {
		return fail(result, cfg, jobPath, err)
	}
	packCfg, err := jobio.Config(doc)
	if err != nil {
		return fail(result, cfg, jobPath, err)
	}

	rec, _, err := packing.Pack(packCfg, catalog, packing.DefaultOptions())
	if err != nil {
		return fail(result, cfg, jobPath, err)
	}

	if err := jobio.WriteRecord(result.OutputPath, rec); err != nil {
		return fail(result, cfg, jobPath, err)
	}
	if rec.PlacedCount == 0 && rec.TotalCount > 0 {
		dumpFailure(cfg, jobPath, fmt.Errorf("search finished with zero placements"))
	}

	result.Success = true
	result.PlacedCount = rec.PlacedCount
	result.TotalCount = rec.TotalCount
	result.Score = rec.Score
	result.ElapsedMS = time.Since(start).Milliseconds()
	return result
}

func fail(result Result, cfg Config, jobPath string, err error) Result {
	result.Error = err.Error()
	dumpFailure(cfg, jobPath, err)
	return result
}

// dumpFailure writes a deterministic JSON dump of the offending job into
// cfg.DumpDir when it is set.
func dumpFailure(cfg Config, jobPath string, cause error) {
	if cfg.DumpDir == "" {
		return
	}
	base := filepath.Base(common.FailureDumpPathFor(jobPath))
	path := filepath.Join(cfg.DumpDir, base)
	dump := map[string]any{"job": jobPath, "cause": cause.Error()}
	if err := jobio.WriteJSON(path, dump); err != nil {
		common.Warning("failed to write failure dump for %s: %v", jobPath, err)
		return
	}
	common.Warning("Wrote failure dump: %s (%v)", path, cause)
}
