package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagetiler/internal/core/domain"
)

func TestBundleRoundTrip(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root)

	entries, err := newTestPacker().Pack(root, BinaryName, false)
	require.NoError(t, err)
	require.NoError(t, WriteMetadata(root, 1024, 1024, 512, entries))

	bundle, err := OpenBundle(root)
	require.NoError(t, err)
	assert.Equal(t, 1024, bundle.Meta.Width)
	assert.Equal(t, 512, bundle.Meta.TileSize)
	assert.Len(t, bundle.Meta.Tiles, 5)

	raw, err := bundle.Tile(domain.TileCoordinate{Level: 1, Row: 0, Column: 1})
	require.NoError(t, err)
	assert.Equal(t, []byte("tile 1/0/1"), raw)

	raw, err = bundle.Tile(domain.TileCoordinate{Level: 0, Row: 0, Column: 0})
	require.NoError(t, err)
	assert.Equal(t, []byte("level0 tile"), raw)

	_, err = bundle.Tile(domain.TileCoordinate{Level: 9, Row: 9, Column: 9})
	require.Error(t, err)
}
