package common

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BackupRecords copies the given Placement Record output paths into a
// timestamped backup directory before a run overwrites them.
func BackupRecords(paths []string, backupBaseDir string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("no record paths provided for backup")
	}

	timestamp := time.Now().Format("20060102_150405")
	backupDir := filepath.Join(backupBaseDir, fmt.Sprintf("backup_%s", timestamp))

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	for _, src := range paths {
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue // expected for a record that hasn't been written yet
		}

		data, err := os.ReadFile(src)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", src, err)
		}

		dst := filepath.Join(backupDir, filepath.Base(src))
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup %s: %w", dst, err)
		}

		Verbose("Backed up: %s -> %s", src, dst)
	}

	Info("Backup created at: %s", backupDir)
	return backupDir, nil
}
