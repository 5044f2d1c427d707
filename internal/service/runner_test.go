package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagetiler/internal/adapters/localfs"
	"imagetiler/internal/core/domain"
	"imagetiler/internal/core/ports"
	"imagetiler/internal/pack"
)

// fakeTiler writes a minimal tile tree the way dzsave would, or fails.
type fakeTiler struct {
	fail bool
}

func (f *fakeTiler) Tile(ctx context.Context, inputPath, outputFolder string) (*ports.TileOutput, error) {
	if f.fail {
		return nil, errors.New("cannot open image: " + inputPath)
	}
	for _, tile := range []struct{ level, row, name, data string }{
		{"0", "0", "0.jpg", "tiny"},
		{"1", "0", "0.jpg", "tile a"},
		{"1", "0", "1.jpg", "tile b"},
	} {
		dir := filepath.Join(outputFolder, tile.level, tile.row)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, tile.name), []byte(tile.data), 0644); err != nil {
			return nil, err
		}
	}
	if err := os.WriteFile(filepath.Join(outputFolder, "blank.png"), nil, 0644); err != nil {
		return nil, err
	}
	return &ports.TileOutput{OriginalWidth: 800, OriginalHeight: 600, Width: 1024, Height: 1024}, nil
}

func newTestRunner(tiler ports.Tiler, out, errOut *bytes.Buffer, keepTiles bool) *Runner {
	reporter := NewReporter(out, errOut)
	packer := pack.NewPacker(localfs.NewLister(), pack.NewGzipCompressor())
	return NewRunner(tiler, packer, reporter, 512, keepTiles)
}

func TestExecuteSuccess(t *testing.T) {
	var out, errOut bytes.Buffer
	runner := newTestRunner(&fakeTiler{}, &out, &errOut, false)

	output := filepath.Join(t.TempDir(), "a")
	job := domain.Job{ID: "j1", InputPath: "/img/a.png", OutputPath: output, Index: 0}

	result := runner.Execute(context.Background(), job, 1)

	assert.True(t, result.Success)
	assert.Empty(t, result.ErrorMessage)
	assert.Equal(t, 1024, result.Width)
	assert.Equal(t, 1024, result.Height)
	assert.Equal(t, 3, result.TileCount)
	assert.Positive(t, result.Elapsed)

	assert.FileExists(t, filepath.Join(output, pack.BinaryName))
	assert.FileExists(t, filepath.Join(output, pack.MetadataFileName))
	assert.NoDirExists(t, filepath.Join(output, "0"))
	assert.NoDirExists(t, filepath.Join(output, "1"))
	assert.NoFileExists(t, filepath.Join(output, "blank.png"))

	bundle, err := pack.OpenBundle(output)
	require.NoError(t, err)
	assert.Equal(t, 1024, bundle.Meta.Width)
	assert.Equal(t, 512, bundle.Meta.TileSize)
	assert.Len(t, bundle.Meta.Tiles, 3)

	raw, err := bundle.Tile(domain.TileCoordinate{Level: 1, Row: 0, Column: 1})
	require.NoError(t, err)
	assert.Equal(t, []byte("tile b"), raw)

	assert.Contains(t, out.String(), "[1] /img/a.png: 800x600 -> 1024x1024")
	assert.Contains(t, out.String(), "[1/1] ✓ /img/a.png -> "+output+" (3 tiles)")
	assert.Empty(t, errOut.String())
}

func TestExecuteKeepTiles(t *testing.T) {
	var out, errOut bytes.Buffer
	runner := newTestRunner(&fakeTiler{}, &out, &errOut, true)

	output := filepath.Join(t.TempDir(), "a")
	job := domain.Job{ID: "j1", InputPath: "/img/a.png", OutputPath: output, Index: 0}

	result := runner.Execute(context.Background(), job, 1)
	require.True(t, result.Success)

	assert.FileExists(t, filepath.Join(output, "1", "0", "1.jpg"))
	assert.FileExists(t, filepath.Join(output, "blank.png"))
	assert.FileExists(t, filepath.Join(output, pack.BinaryName))
}

func TestExecuteTilerFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	runner := newTestRunner(&fakeTiler{fail: true}, &out, &errOut, false)

	job := domain.Job{ID: "j1", InputPath: "/img/missing.png", OutputPath: t.TempDir(), Index: 2}
	result := runner.Execute(context.Background(), job, 3)

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "cannot open image")
	assert.Equal(t, 2, result.Index)

	assert.Contains(t, errOut.String(), "[ERROR] /img/missing.png:")
	assert.NotContains(t, out.String(), "✓")
}
