// Package jsonfile implements the domain repositories on flat JSON files.
//
// Each collection is one file holding a pretty-printed JSON array; every
// mutation re-reads the whole file and rewrites it. Two requests racing on
// the same collection are last-write-wins: the rewrite is computed from a
// snapshot taken earlier in the request. That is a property of the storage
// design, kept deliberately; the per-collection mutex below only stops two
// writers from interleaving bytes within a single file write.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Collection is a named file-backed ordered sequence of records.
type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

// NewCollection creates a Collection backed by the file at path. The file
// need not exist yet.
func NewCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// Load reads the full collection. A missing or empty file is an empty
// collection, not an error.
func (c *Collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	return records, nil
}

// Save fully overwrites the backing file with the given records,
// pretty-printed with two-space indentation.
func (c *Collection[T]) Save(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}
