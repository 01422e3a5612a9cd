// Package feed reads per-spot forecast payloads published by the collector,
// either from a local directory or over HTTP, with an optional caching layer.
package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Source fetches the raw JSON payload for one spot.
type Source interface {
	Fetch(ctx context.Context, slug string) ([]byte, error)
}

// DirSource reads payloads from "<dir>/<slug>.json", the layout the collector
// writes into its publishing directory.
type DirSource struct {
	Dir string
}

// NewDirSource creates a directory-backed source.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) Fetch(_ context.Context, slug string) ([]byte, error) {
	path := filepath.Join(s.Dir, slug+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spot feed %s: %w", path, err)
	}
	return data, nil
}
