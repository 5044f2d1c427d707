package pack

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/gzip"
)

// GzipCompressor implements ports.Compressor using gzip framing, so each
// tile is independently decodable by any standard gzip decompressor.
type GzipCompressor struct {
	level int
}

// NewGzipCompressor creates a compressor at the default compression level.
func NewGzipCompressor() *GzipCompressor {
	return &GzipCompressor{level: gzip.DefaultCompression}
}

// Compress returns one self-contained gzip stream for raw. The gzip header
// is left zeroed so identical input always yields identical bytes.
func (c *GzipCompressor) Compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gzip compression: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}
	return buf.Bytes(), nil
}
