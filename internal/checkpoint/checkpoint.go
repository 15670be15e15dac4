// Package checkpoint persists run state as an indented JSON document that
// is replaced wholesale on every save.
package checkpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jparta/onetoone/internal/models"
)

// File is the on-disk layout.
type File struct {
	SourceLang   string                        `json:"source_lang"`
	TargetLang   string                        `json:"target_lang"`
	Translations map[string][]models.Candidate `json:"translations"`
	OneToOne     []models.Record               `json:"one_to_one_translations"`
}

// Writer saves snapshots of a run to a single path.
type Writer struct {
	path string
}

// NewWriter creates a writer for path
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the checkpoint location
func (w *Writer) Path() string {
	return w.path
}

// Save writes a snapshot of state. The file is written to a temporary
// name in the same directory and renamed over the previous checkpoint.
func (w *Writer) Save(_ context.Context, state *models.State) error {
	data, err := Marshal(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp checkpoint: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close checkpoint: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}

// Marshal renders state in the checkpoint format.
func Marshal(state *models.State) ([]byte, error) {
	f := File{
		SourceLang:   state.SourceLang,
		TargetLang:   state.TargetLang,
		Translations: state.Translations.Snapshot(),
		OneToOne:     state.OneToOne.Records(),
	}
	if f.OneToOne == nil {
		f.OneToOne = []models.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads a checkpoint back into a fresh State.
func Load(path string) (*models.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %s: %w", path, err)
	}

	state := models.NewState(f.SourceLang, f.TargetLang)
	for word, translations := range f.Translations {
		state.Translations.Set(word, translations)
	}
	for _, r := range f.OneToOne {
		state.OneToOne.Append(r)
	}
	return state, nil
}
