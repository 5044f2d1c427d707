package localfs

import (
	"fmt"
	"os"

	"imagetiler/internal/core/ports"
)

// Lister implements ports.DirLister for the local filesystem.
type Lister struct{}

// NewLister creates a new Lister.
func NewLister() *Lister {
	return &Lister{}
}

// List returns the entries of dir. os.ReadDir already sorts by name.
func (l *Lister) List(dir string) ([]ports.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}
	out := make([]ports.DirEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ports.DirEntry{Name: e.Name(), IsDir: e.IsDir()})
	}
	return out, nil
}
