package drcs2bmp

import (
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ErrEmptyGlyph reports a dictionary entry whose pattern data is empty
// after base64 decoding, or was empty to begin with.
var ErrEmptyGlyph = errors.New("glyph pattern data is empty")

// Result carries everything one glyph conversion produces. On success
// Hash names the bitmap, Bitmap is the full BMP file content, Grid is
// the decoded pixel data (kept for preview rendering), and Detail is a
// human-readable note on how the dimensions were determined. On failure
// only Err and Alternative are set.
type Result struct {
	Alternative string
	Hash        string
	Bitmap      []byte
	Grid        *PixelGrid
	Dims        GlyphDimensions
	Ambiguous   bool
	Detail      string
	Err         error
}

// Converter runs the glyph pipeline and keeps running counters across
// calls. The zero value is not usable; construct with NewConverter.
type Converter struct {
	workers int

	mu        sync.Mutex
	converted int
	ambiguous int
	failed    int
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithWorkers sets how many goroutines ConvertAll fans out across.
// Values below 1 are ignored.
func WithWorkers(n int) ConverterOption {
	return func(c *Converter) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// NewConverter creates a Converter with the given options applied. The
// default worker count is the number of CPUs.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert runs one base64 glyph through the full pipeline: decode the
// transport encoding, estimate cell dimensions from the byte length,
// unpack the pixel grid, hash it, and serialize the bitmap. Only empty
// input and malformed base64 can fail; every byte length maps to some
// geometry, so the later stages are total.
func (c *Converter) Convert(b64 string) Result {
	if b64 == "" {
		return c.fail(ErrEmptyGlyph)
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return c.fail(fmt.Errorf("failed to decode base64 pattern: %w", err))
	}
	if len(data) == 0 {
		return c.fail(ErrEmptyGlyph)
	}
	dims, ambiguous := EstimateDimensions(data)
	grid := DecodeGrid(data, dims)
	res := Result{
		Hash:      HashGrid(grid),
		Bitmap:    EncodeBMP(grid),
		Grid:      grid,
		Dims:      dims,
		Ambiguous: ambiguous,
	}
	if ambiguous {
		res.Detail = fmt.Sprintf("auto-detected %dx%d from ambiguous %d-byte pattern",
			dims.Width, dims.Height, len(data))
	} else {
		res.Detail = fmt.Sprintf("%d bytes, %dx%d, %d-bit",
			len(data), dims.Width, dims.Height, dims.Depth)
	}
	c.mu.Lock()
	c.converted++
	if ambiguous {
		c.ambiguous++
	}
	c.mu.Unlock()
	return res
}

func (c *Converter) fail(err error) Result {
	c.mu.Lock()
	c.failed++
	c.mu.Unlock()
	return Result{Err: err}
}

// Stats reports how many conversions succeeded, how many of those went
// through ambiguous-length resolution, and how many failed.
func (c *Converter) Stats() (converted, ambiguous, failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.converted, c.ambiguous, c.failed
}

// ResetStats zeroes the running counters.
func (c *Converter) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.converted = 0
	c.ambiguous = 0
	c.failed = 0
}
