// Package jsonldb provides whole-file JSON document storage.
//
// A Document[T] binds a Go value to one file. Load decodes the entire file and
// Save rewrites it in full. There is no journal and no partial write: the
// last Save wins.
package jsonldb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Document handles storage for a single JSON document.
//
// Document does no locking; callers serialize Load and Save.
type Document[T any] struct {
	path string
}

// NewDocument creates a Document stored at path, creating its parent
// directory if needed.
func NewDocument[T any](path string) (*Document[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return &Document[T]{path: path}, nil
}

// Path returns the backing file path.
func (d *Document[T]) Path() string {
	return d.path
}

// Exists returns true if the backing file is present.
func (d *Document[T]) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// Load decodes the backing file into v. It returns false without error when
// the file does not exist, leaving v untouched.
func (d *Document[T]) Load(v *T) (bool, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", d.path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", d.path, err)
	}
	return true, nil
}

// Save encodes v as indented JSON and overwrites the backing file.
func (d *Document[T]) Save(v *T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", d.path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(d.path, data, 0o644); err != nil { //nolint:gosec // G306: database file is not secret
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	return nil
}
