package pack

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"imagetiler/internal/core/domain"
)

// MetadataFileName is the fixed descriptor name inside each output folder.
const MetadataFileName = "metadata.json"

// WriteMetadata serializes the image dimensions, tile size and offset index
// into outputFolder/metadata.json.
func WriteMetadata(outputFolder string, width, height, tileSize int, entries []domain.PackedTileEntry) error {
	meta := domain.Metadata{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		Tiles:    make(map[string]domain.TileRef, len(entries)),
	}
	for _, e := range entries {
		meta.Tiles[e.Key] = domain.TileRef{
			BinaryName:  e.BinaryName,
			StartOffset: e.StartOffset,
			Size:        e.Size,
		}
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return domain.WrapMetadata(fmt.Errorf("failed to encode metadata: %w", err))
	}
	data = append(data, '\n')

	path := filepath.Join(outputFolder, MetadataFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return domain.WrapMetadata(fmt.Errorf("cannot create metadata file %s: %w", path, err))
	}
	return nil
}
