package ports

import "context"

// TileOutput holds the dimensions reported by the external tiler.
// Width and Height are the post-resize square dimensions; the original
// dimensions are kept for progress reporting.
type TileOutput struct {
	OriginalWidth  int
	OriginalHeight int
	Width          int
	Height         int
}

// Tiler defines the contract for the external image-tiling collaborator.
// Given an input image it writes a tile tree under outputFolder with the
// layout level/row/column.<suffix>, resizing the image to a square whose
// side is the next power of two >= max(width, height).
type Tiler interface {
	// Tile generates the tile-file tree for one image and reports the
	// final pixel dimensions.
	Tile(ctx context.Context, inputPath, outputFolder string) (*TileOutput, error)
}

// Compressor defines the contract for per-tile compression.
type Compressor interface {
	// Compress returns a self-contained compressed stream for raw.
	Compress(raw []byte) ([]byte, error)
}

// DirEntry is one entry of a listed directory.
type DirEntry struct {
	Name  string
	IsDir bool
}

// DirLister abstracts directory enumeration so tile discovery can be
// tested against a virtual filesystem.
type DirLister interface {
	// List returns the entries of dir in lexicographic name order.
	List(dir string) ([]DirEntry, error)
}
