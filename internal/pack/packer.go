// Package pack turns a tile-file tree into an asset bundle: one binary
// blob of back-to-back compressed tiles plus a metadata descriptor mapping
// each tile coordinate to its byte range.
package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"imagetiler/internal/core/domain"
	"imagetiler/internal/core/ports"
)

// BinaryName is the fixed blob file name inside each output folder.
const BinaryName = "tiles_000.binz"

// BlankTileName is the placeholder tile some tilers leave at the tree root.
const BlankTileName = "blank.png"

// Packer discovers, orders, compresses and concatenates the tiles of one
// image into a single blob.
type Packer struct {
	lister     ports.DirLister
	compressor ports.Compressor
}

// NewPacker creates a new Packer.
func NewPacker(lister ports.DirLister, compressor ports.Compressor) *Packer {
	return &Packer{lister: lister, compressor: compressor}
}

type tileFile struct {
	path string // full path, also the sort key
	key  string // "level_row_column" from the raw directory/file names
}

// Pack builds tileRoot/binaryName from every tile under tileRoot and
// returns one entry per tile, in blob order. When keepTiles is false the
// now-redundant tile directories are deleted afterwards.
//
// An unreadable tile fails the whole job: silently skipping it would leave
// the offset index invisibly incomplete.
func (p *Packer) Pack(tileRoot, binaryName string, keepTiles bool) ([]domain.PackedTileEntry, error) {
	tiles, err := p.discover(tileRoot)
	if err != nil {
		return nil, err
	}

	blobPath := filepath.Join(tileRoot, binaryName)
	blob, err := os.Create(blobPath)
	if err != nil {
		return nil, domain.WrapIO(fmt.Errorf("cannot create binary file %s: %w", blobPath, err))
	}

	var offset int64
	entries := make([]domain.PackedTileEntry, 0, len(tiles))
	for _, t := range tiles {
		raw, err := os.ReadFile(t.path)
		if err != nil {
			blob.Close()
			return nil, domain.WrapIO(fmt.Errorf("cannot read tile %s: %w", t.path, err))
		}
		compressed, err := p.compressor.Compress(raw)
		if err != nil {
			blob.Close()
			return nil, domain.WrapCompression(fmt.Errorf("tile %s: %w", t.path, err))
		}
		if _, err := blob.Write(compressed); err != nil {
			blob.Close()
			return nil, domain.WrapIO(fmt.Errorf("cannot write binary file %s: %w", blobPath, err))
		}
		entries = append(entries, domain.PackedTileEntry{
			Key:         t.key,
			BinaryName:  binaryName,
			StartOffset: offset,
			Size:        int64(len(compressed)),
		})
		offset += int64(len(compressed))
	}

	if err := blob.Close(); err != nil {
		return nil, domain.WrapIO(fmt.Errorf("cannot write binary file %s: %w", blobPath, err))
	}

	if !keepTiles {
		if err := p.cleanup(tileRoot); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// discover walks exactly three levels below tileRoot: numeric level
// directories, numeric row directories, then tile files. Entries failing
// the numeric-name or extension filter are not part of the tile tree and
// are skipped. The result is sorted by full path string so packing order
// is deterministic.
func (p *Packer) discover(tileRoot string) ([]tileFile, error) {
	levels, err := p.lister.List(tileRoot)
	if err != nil {
		return nil, domain.WrapIO(err)
	}

	var tiles []tileFile
	for _, level := range levels {
		if !level.IsDir || !isNumeric(level.Name) {
			continue
		}
		levelDir := filepath.Join(tileRoot, level.Name)
		rows, err := p.lister.List(levelDir)
		if err != nil {
			return nil, domain.WrapIO(err)
		}
		for _, row := range rows {
			if !row.IsDir || !isNumeric(row.Name) {
				continue
			}
			rowDir := filepath.Join(levelDir, row.Name)
			files, err := p.lister.List(rowDir)
			if err != nil {
				return nil, domain.WrapIO(err)
			}
			for _, f := range files {
				if f.IsDir || !hasTileExt(f.Name) {
					continue
				}
				column := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
				tiles = append(tiles, tileFile{
					path: filepath.Join(rowDir, f.Name),
					key:  level.Name + "_" + row.Name + "_" + column,
				})
			}
		}
	}

	sort.Slice(tiles, func(i, j int) bool { return tiles[i].path < tiles[j].path })
	return tiles, nil
}

// cleanup deletes every numeric-named level directory under tileRoot and
// the placeholder blank tile if present. The blob and metadata files are
// untouched.
func (p *Packer) cleanup(tileRoot string) error {
	entries, err := p.lister.List(tileRoot)
	if err != nil {
		return domain.WrapIO(err)
	}
	for _, e := range entries {
		if !e.IsDir || !isNumeric(e.Name) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(tileRoot, e.Name)); err != nil {
			return domain.WrapIO(fmt.Errorf("cannot remove tile directory %s: %w", e.Name, err))
		}
	}
	blank := filepath.Join(tileRoot, BlankTileName)
	if err := os.Remove(blank); err != nil && !os.IsNotExist(err) {
		return domain.WrapIO(fmt.Errorf("cannot remove %s: %w", blank, err))
	}
	return nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasTileExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
