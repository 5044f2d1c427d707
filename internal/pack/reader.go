package pack

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"imagetiler/internal/core/domain"
)

// Bundle gives read access to a packed asset bundle: the metadata
// descriptor plus the blob it indexes into.
type Bundle struct {
	Meta   domain.Metadata
	folder string
}

// OpenBundle loads the metadata descriptor from folder.
func OpenBundle(folder string) (*Bundle, error) {
	path := filepath.Join(folder, MetadataFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read metadata file %s: %w", path, err)
	}
	var meta domain.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("invalid metadata file %s: %w", path, err)
	}
	return &Bundle{Meta: meta, folder: folder}, nil
}

// Tile returns the decompressed bytes of one tile, located through the
// offset index.
func (b *Bundle) Tile(coord domain.TileCoordinate) ([]byte, error) {
	ref, ok := b.Meta.Tiles[coord.Key()]
	if !ok {
		return nil, fmt.Errorf("no tile at %s", coord.Key())
	}

	blobPath := filepath.Join(b.folder, ref.BinaryName)
	blob, err := os.Open(blobPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open binary file %s: %w", blobPath, err)
	}
	defer blob.Close()

	section := io.NewSectionReader(blob, ref.StartOffset, ref.Size)
	zr, err := gzip.NewReader(section)
	if err != nil {
		return nil, fmt.Errorf("tile %s: %w", coord.Key(), err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("tile %s: %w", coord.Key(), err)
	}
	return raw, nil
}
