package config

import (
	"os"
	"runtime"
	"strconv"

	"imagetiler/internal/core/domain"
)

// Defaults for the recognized options.
const (
	DefaultTileSize    = 512
	DefaultSuffix      = ".jpg"
	DefaultJPEGQuality = 85
	DefaultVipsBinary  = "vips"

	// Fallback worker count when host parallelism cannot be determined.
	minWorkers = 4
)

// Config holds the full configuration surface of a batch run.
type Config struct {
	InputsFile  string
	OutputsFile string
	TileSize    int
	Suffix      string
	JPEGQuality int
	Concurrency int
	KeepTiles   bool
	VipsBinary  string
}

// FromEnv returns a Config populated with defaults, overridable through
// IMAGE_TILER_* environment variables. CLI flags are applied on top by the
// command layer.
func FromEnv() Config {
	return Config{
		TileSize:    envInt("IMAGE_TILER_TILE_SIZE", DefaultTileSize),
		Suffix:      envString("IMAGE_TILER_SUFFIX", DefaultSuffix),
		JPEGQuality: envInt("IMAGE_TILER_JPEG_QUALITY", DefaultJPEGQuality),
		Concurrency: envInt("IMAGE_TILER_CONCURRENCY", 0),
		VipsBinary:  envString("IMAGE_TILER_VIPS_BIN", DefaultVipsBinary),
	}
}

// Validate checks the configuration and resolves the effective worker
// count. All violations are configuration errors: fatal before any job runs.
func (c *Config) Validate() error {
	if c.InputsFile == "" {
		return domain.NewConfigError("--inputs is required")
	}
	if c.OutputsFile == "" {
		return domain.NewConfigError("--outputs is required")
	}
	if c.TileSize <= 0 {
		return domain.NewConfigError("tile-size must be positive, got %d", c.TileSize)
	}
	if c.Suffix != ".png" && c.Suffix != ".jpg" && c.Suffix != ".jpeg" {
		return domain.NewConfigError("suffix must be .png, .jpg, or .jpeg, got %q", c.Suffix)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return domain.NewConfigError("jpeg-quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	if c.Concurrency < 0 {
		return domain.NewConfigError("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Concurrency == 0 {
		c.Concurrency = runtime.NumCPU()
		if c.Concurrency <= 0 {
			c.Concurrency = minWorkers
		}
	}
	if c.VipsBinary == "" {
		c.VipsBinary = DefaultVipsBinary
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
