// Package fileio provides safe whole-file output for permkit. Writes are
// atomic (temp file + rename) and an existing destination can be preserved
// under a numbered .bak name before being replaced.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"
)

// backupName returns the first free backup name for path: path.bak, then
// path.bak.1, path.bak.2, and so on. An existing backup is never reused.
func backupName(path string) string {
	candidate := path + ".bak"
	for idx := 1; ; idx++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s.bak.%d", path, idx)
	}
}

// BackupFile copies the file at path to a sibling backup name, preserving
// its permission bits, and returns the backup path. It is the caller's job
// to check that path exists.
func BackupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s for backup: %w", path, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	backup := backupName(path)
	if err := os.WriteFile(backup, data, mode); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", backup, err)
	}
	return backup, nil
}

// WriteFileWithBackup writes data to path as a single whole-file write.
// When backup is true and path already exists, the old contents are first
// copied to a fresh .bak name; the returned string is that backup path, or
// empty when no backup was made.
func WriteFileWithBackup(path string, data []byte, backup bool) (string, error) {
	backupPath := ""
	if backup {
		if _, err := os.Stat(path); err == nil {
			bp, err := BackupFile(path)
			if err != nil {
				return "", err
			}
			backupPath = bp
		}
	}

	if err := atomicWrite(path, data); err != nil {
		return backupPath, err
	}
	return backupPath, nil
}

// atomicWrite writes data to a file atomically using temp file + rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".permkit-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	// Clear tmpPath so defer doesn't try to remove the final file
	tmpPath = ""
	return nil
}
