package domain

import (
	"fmt"
	"time"
)

// Job represents a single image conversion unit.
type Job struct {
	ID         string
	InputPath  string
	OutputPath string
	Index      int // position in the original job list, used for progress reporting only
}

// JobResult holds the outcome of a completed job.
type JobResult struct {
	Index        int
	Success      bool
	ErrorMessage string
	Width        int
	Height       int
	TileCount    int
	Elapsed      time.Duration
}

// TileCoordinate identifies a tile within the pyramid.
type TileCoordinate struct {
	Level  int
	Row    int
	Column int
}

// PackedTileEntry records where one compressed tile landed inside the blob.
type PackedTileEntry struct {
	Key         string // "level_row_column", built from the raw directory/file names
	BinaryName  string
	StartOffset int64
	Size        int64
}

// TileRef is the per-tile record inside the metadata descriptor.
type TileRef struct {
	BinaryName  string `json:"binaryName"`
	StartOffset int64  `json:"startOffset"`
	Size        int64  `json:"size"`
}

// Metadata is the descriptor written next to the blob. Its JSON shape is an
// external contract consumed by tile viewers.
type Metadata struct {
	Width    int                `json:"width"`
	Height   int                `json:"height"`
	TileSize int                `json:"tile_size"`
	Tiles    map[string]TileRef `json:"tiles"`
}

// Key returns the coordinate in its "level_row_column" string form.
func (c TileCoordinate) Key() string {
	return fmt.Sprintf("%d_%d_%d", c.Level, c.Row, c.Column)
}
