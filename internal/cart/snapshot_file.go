package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// FileSnapshot keeps the cart in a single JSON file, the closest analog of
// the browser's local storage entry. Every save rewrites the file in full.
type FileSnapshot struct {
	Path string
}

func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{Path: path}
}

func (s *FileSnapshot) Ping(ctx context.Context) error { return nil }

func (s *FileSnapshot) Load(ctx context.Context) ([]Product, bool, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cart []Product
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

func (s *FileSnapshot) Save(ctx context.Context, cart []Product) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, raw, 0o644)
}
