// Package archive moves output from a previous run out of the way before a
// fresh exploration overwrites it.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveFile moves path to archive/<name>-<timestamp><ext> next to it and
// returns the new location.
func ArchiveFile(path string) (string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("not a regular file: %s", path)
	}

	archiveDir := filepath.Join(filepath.Dir(path), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)

	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, time.Now().Format("20060102-150405"), ext))
	if _, err := os.Stat(archivePath); err == nil {
		// Same second as an earlier archive
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, time.Now().Format("20060102-150405.000000"), ext))
	}

	if err := os.Rename(path, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return archivePath, nil
}

// ArchiveExisting archives each of paths that exists and skips the rest.
func ArchiveExisting(paths ...string) ([]string, error) {
	var archived []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		dest, err := ArchiveFile(path)
		if err != nil {
			return archived, err
		}
		archived = append(archived, dest)
	}
	return archived, nil
}
