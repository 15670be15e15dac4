package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	checkpoint := filepath.Join(tmpDir, "translations.json")
	if err := os.WriteFile(checkpoint, []byte(`{"source_lang": "ru"}`), 0644); err != nil {
		t.Fatalf("Failed to create checkpoint: %v", err)
	}

	dest, err := ArchiveFile(checkpoint)
	if err != nil {
		t.Fatalf("ArchiveFile failed: %v", err)
	}

	if _, err := os.Stat(checkpoint); !os.IsNotExist(err) {
		t.Error("Checkpoint still exists after archiving")
	}

	if filepath.Dir(dest) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Archived into unexpected directory: %s", dest)
	}

	base := filepath.Base(dest)
	if !strings.HasPrefix(base, "translations-") || !strings.HasSuffix(base, ".json") {
		t.Errorf("Unexpected archive name: %s", base)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	if string(data) != `{"source_lang": "ru"}` {
		t.Errorf("Archived content changed: %s", data)
	}
}

func TestArchiveFile_NonExistent(t *testing.T) {
	_, err := ArchiveFile(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestArchiveFile_Directory(t *testing.T) {
	if _, err := ArchiveFile(t.TempDir()); err == nil {
		t.Error("Expected error when archiving a directory")
	}
}

func TestArchiveFile_MultipleArchives(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "progress.log")

	for i := 0; i < 2; i++ {
		if err := os.WriteFile(path, []byte("run"), 0644); err != nil {
			t.Fatalf("Failed to create log: %v", err)
		}
		if _, err := ArchiveFile(path); err != nil {
			t.Fatalf("ArchiveFile failed on iteration %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries in archive directory, got %d", len(entries))
	}
	if entries[0].Name() == entries[1].Name() {
		t.Error("Archive names are not unique")
	}
}

func TestArchiveExisting(t *testing.T) {
	tmpDir := t.TempDir()
	present := filepath.Join(tmpDir, "translations.json")
	if err := os.WriteFile(present, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	archived, err := ArchiveExisting(present, filepath.Join(tmpDir, "missing.log"), "")
	if err != nil {
		t.Fatalf("ArchiveExisting failed: %v", err)
	}
	if len(archived) != 1 {
		t.Fatalf("Expected 1 archived file, got %v", archived)
	}
	if _, err := os.Stat(archived[0]); err != nil {
		t.Errorf("Archived file missing: %v", err)
	}
}
