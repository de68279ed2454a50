package common

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPathFor derives the Placement Record path for a job file: the
// same directory and base name with ".record.json" in place of the job
// file's own extension, unless an explicit override is given.
func OutputPathFor(jobPath, override string) string {
	if override != "" {
		return override
	}
	dir := filepath.Dir(jobPath)
	base := strings.TrimSuffix(filepath.Base(jobPath), filepath.Ext(jobPath))
	return filepath.Join(dir, base+".record.json")
}

// FailureDumpPathFor derives the path for a failure dump (a
// configuration/footprint error, or a run that places zero blocks).
func FailureDumpPathFor(jobPath string) string {
	dir := filepath.Dir(jobPath)
	base := strings.TrimSuffix(filepath.Base(jobPath), filepath.Ext(jobPath))
	return filepath.Join(dir, base+".failure.json")
}

// MustOutputPathFor panics if jobPath is empty; used where the caller has
// already validated jobPath came from a non-empty CLI argument and a
// failure here would be a defect, not user error.
func MustOutputPathFor(jobPath, override string) string {
	if jobPath == "" {
		panic("defect: MustOutputPathFor called with an empty job path")
	}
	return OutputPathFor(jobPath, override)
}

// ValidateExtension returns an error if path doesn't end in one of the
// given extensions (case-insensitive), used to fail fast on an obviously
// wrong job/record file argument before attempting to parse it.
func ValidateExtension(path string, exts ...string) error {
	got := strings.ToLower(filepath.Ext(path))
	for _, ext := range exts {
		if got == strings.ToLower(ext) {
			return nil
		}
	}
	return fmt.Errorf("%s: expected one of %v, got %q", path, exts, got)
}
