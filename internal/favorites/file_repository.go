package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileRepository stores the favorites document as a JSON file. It is the
// default backend when no database is configured.
type FileRepository struct {
	path string
}

// NewFileRepository creates a file-backed favorites repository.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Load reads the document from disk. A missing file is an empty document.
func (r *FileRepository) Load(_ context.Context) (*Document, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("reading favorites file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing favorites file: %w", err)
	}

	return &doc, nil
}

// Save writes the document to a temp file and renames it into place so a
// crash mid-write never leaves a truncated document behind.
func (r *FileRepository) Save(_ context.Context, doc *Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating favorites dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".favorites-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing favorites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), r.path)
}

// Ensure FileRepository implements Repository interface.
var _ Repository = (*FileRepository)(nil)
