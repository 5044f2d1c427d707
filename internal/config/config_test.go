package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagetiler/internal/core/domain"
)

func validConfig() Config {
	return Config{
		InputsFile:  "inputs.txt",
		OutputsFile: "outputs.txt",
		TileSize:    DefaultTileSize,
		Suffix:      DefaultSuffix,
		JPEGQuality: DefaultJPEGQuality,
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("IMAGE_TILER_TILE_SIZE", "")
	t.Setenv("IMAGE_TILER_SUFFIX", "")
	t.Setenv("IMAGE_TILER_JPEG_QUALITY", "")
	t.Setenv("IMAGE_TILER_CONCURRENCY", "")
	t.Setenv("IMAGE_TILER_VIPS_BIN", "")

	cfg := FromEnv()
	assert.Equal(t, 512, cfg.TileSize)
	assert.Equal(t, ".jpg", cfg.Suffix)
	assert.Equal(t, 85, cfg.JPEGQuality)
	assert.Equal(t, 0, cfg.Concurrency)
	assert.Equal(t, "vips", cfg.VipsBinary)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("IMAGE_TILER_TILE_SIZE", "256")
	t.Setenv("IMAGE_TILER_SUFFIX", ".png")
	t.Setenv("IMAGE_TILER_JPEG_QUALITY", "70")
	t.Setenv("IMAGE_TILER_CONCURRENCY", "2")
	t.Setenv("IMAGE_TILER_VIPS_BIN", "/opt/vips/bin/vips")

	cfg := FromEnv()
	assert.Equal(t, 256, cfg.TileSize)
	assert.Equal(t, ".png", cfg.Suffix)
	assert.Equal(t, 70, cfg.JPEGQuality)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "/opt/vips/bin/vips", cfg.VipsBinary)
}

func TestValidateResolvesConcurrency(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.Positive(t, cfg.Concurrency)
	assert.Equal(t, "vips", cfg.VipsBinary)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"missing inputs":   func(c *Config) { c.InputsFile = "" },
		"missing outputs":  func(c *Config) { c.OutputsFile = "" },
		"zero tile size":   func(c *Config) { c.TileSize = 0 },
		"negative size":    func(c *Config) { c.TileSize = -1 },
		"bad suffix":       func(c *Config) { c.Suffix = ".gif" },
		"quality too low":  func(c *Config) { c.JPEGQuality = 0 },
		"quality too high": func(c *Config) { c.JPEGQuality = 101 },
		"negative workers": func(c *Config) { c.Concurrency = -3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, domain.IsConfigError(err))
		})
	}
}
