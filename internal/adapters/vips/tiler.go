// Package vips drives the libvips command line tools to generate
// DeepZoom-style tile trees. It owns the resize policy: images are resized
// to a square whose side is the next power of two >= the larger original
// dimension, then split with dzsave's google layout.
package vips

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"imagetiler/internal/core/ports"
)

// commandRunner executes one external command and returns its stdout.
// Swapped out in tests so command construction can be verified without a
// vips installation.
type commandRunner func(ctx context.Context, name string, args ...string) (string, error)

// Tiler implements ports.Tiler using the vips binary.
type Tiler struct {
	binary      string
	tileSize    int
	suffix      string
	jpegQuality int
	run         commandRunner
}

// Options configures a Tiler.
type Options struct {
	Binary      string // vips binary path, defaults to "vips"
	TileSize    int
	Suffix      string // ".png", ".jpg" or ".jpeg"
	JPEGQuality int    // 1-100, used for jpeg suffixes only
}

// NewTiler creates a new Tiler.
func NewTiler(opts Options) *Tiler {
	binary := opts.Binary
	if binary == "" {
		binary = "vips"
	}
	return &Tiler{
		binary:      binary,
		tileSize:    opts.TileSize,
		suffix:      opts.Suffix,
		jpegQuality: opts.JPEGQuality,
		run:         runCommand,
	}
}

// Tile resizes inputPath and writes its tile tree under outputFolder,
// reporting the original and final pixel dimensions.
func (t *Tiler) Tile(ctx context.Context, inputPath, outputFolder string) (*ports.TileOutput, error) {
	width, err := t.headerInt(ctx, inputPath, "width")
	if err != nil {
		return nil, err
	}
	height, err := t.headerInt(ctx, inputPath, "height")
	if err != nil {
		return nil, err
	}

	target := NextPowerOfTwo(max(width, height))

	if err := os.MkdirAll(outputFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output folder %s: %w", outputFolder, err)
	}

	// Resize through an intermediate file in the native vips format so
	// dzsave reads exact pixels, not re-encoded ones.
	resized := filepath.Join(os.TempDir(), "imagetiler-"+uuid.New().String()+".v")
	defer os.Remove(resized)

	size := strconv.Itoa(target)
	if _, err := t.run(ctx, t.binary, "thumbnail", inputPath, resized, size,
		"--height", size, "--size", "force"); err != nil {
		return nil, fmt.Errorf("vips thumbnail failed for %s: %w", inputPath, err)
	}

	if _, err := t.run(ctx, t.binary, "dzsave", resized, outputFolder,
		"--layout", "google",
		"--depth", "onetile",
		"--tile-size", strconv.Itoa(t.tileSize),
		"--skip-blanks", "-1",
		"--suffix", t.suffixOption()); err != nil {
		return nil, fmt.Errorf("vips dzsave failed for %s: %w", inputPath, err)
	}

	return &ports.TileOutput{
		OriginalWidth:  width,
		OriginalHeight: height,
		Width:          target,
		Height:         target,
	}, nil
}

// headerInt reads one numeric header field via vipsheader -f.
func (t *Tiler) headerInt(ctx context.Context, inputPath, field string) (int, error) {
	out, err := t.run(ctx, t.binary+"header", "-f", field, inputPath)
	if err != nil {
		return 0, fmt.Errorf("cannot read %s of %s: %w", field, inputPath, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("cannot read %s of %s: unexpected output %q", field, inputPath, out)
	}
	return n, nil
}

// suffixOption renders the dzsave suffix, carrying the quality setting for
// jpeg output.
func (t *Tiler) suffixOption() string {
	if t.suffix == ".jpg" || t.suffix == ".jpeg" {
		return fmt.Sprintf("%s[Q=%d]", t.suffix, t.jpegQuality)
	}
	return t.suffix
}

// NextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 0.
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	power := 1
	for power < n {
		power *= 2
	}
	return power
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w, stderr: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return out.String(), nil
}
