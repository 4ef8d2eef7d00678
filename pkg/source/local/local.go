// Package local loads the entity dataset from the JSON file produced by the
// wiki extraction pipeline.
package local

import (
	"context"
	"encoding/json"
	"os"

	"github.com/craftlens/craftlens/pkg/dataset"
	"github.com/craftlens/craftlens/pkg/errors"
)

// File is a Source backed by a JSON array of entity records.
type File struct {
	path string
}

// NewFile creates a source reading from path. The file is read on every
// Load, so a reloaded server picks up regenerated datasets.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads and decodes the dataset file.
func (f *File) Load(ctx context.Context) ([]dataset.EntityRecord, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset file %s", f.path)
	}
	if err != nil {
		return nil, err
	}

	var records []dataset.EntityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dataset %s", f.path)
	}
	return records, nil
}
