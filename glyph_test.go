package drcs2bmp

import (
	"testing"
)

// TestDecodeDepth2Packing documents the bit layout of four-level glyph
// data and verifies the decoder reads it correctly.
//
// Each byte of depth 2 data carries four pixels, most significant bits
// first:
//
//	Bits 7-6: pixel 0
//	Bits 5-4: pixel 1
//	Bits 3-2: pixel 2
//	Bits 1-0: pixel 3
//
// So the byte 0b00011011 (0x1B) decodes to the pixel run 0,1,2,3.
func TestDecodeDepth2Packing(t *testing.T) {
	g := DecodeGrid([]byte{0x1B}, GlyphDimensions{Width: 4, Height: 1, Depth: 2})

	expected := []uint8{0, 1, 2, 3}
	for x, want := range expected {
		if got := g.At(x, 0); got != want {
			t.Errorf("Pixel %d of 0x1B should be %d, got %d", x, want, got)
		}
	}
}

// TestDecodeDepth1Mapping verifies that monochrome data decodes set
// bits to shade 3, not 1, so a depth 1 glyph renders black on white
// instead of near-white on white.
func TestDecodeDepth1Mapping(t *testing.T) {
	// 0xA5 = 0b10100101
	g := DecodeGrid([]byte{0xA5}, GlyphDimensions{Width: 8, Height: 1, Depth: 1})

	expected := []uint8{3, 0, 3, 0, 0, 3, 0, 3}
	for x, want := range expected {
		if got := g.At(x, 0); got != want {
			t.Errorf("Pixel %d of 0xA5 should be %d, got %d", x, want, got)
		}
	}
}

// TestDecodeRowMajor verifies pixels fill rows left to right, top to
// bottom, crossing byte boundaries without realignment.
func TestDecodeRowMajor(t *testing.T) {
	// 0x1B = pixels 0,1,2,3 and 0xE4 = pixels 3,2,1,0
	g := DecodeGrid([]byte{0x1B, 0xE4}, GlyphDimensions{Width: 4, Height: 2, Depth: 2})

	expected := [][]uint8{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
	}
	for y, row := range expected {
		for x, want := range row {
			if got := g.At(x, y); got != want {
				t.Errorf("Pixel (%d,%d) should be %d, got %d", x, y, want, got)
			}
		}
	}
}

// TestDecodePastEnd verifies that dimensions covering more bits than
// the data provides decode the missing pixels as 0 instead of
// panicking. Estimated dimensions can legitimately overrun by a few
// bits.
func TestDecodePastEnd(t *testing.T) {
	g := DecodeGrid([]byte{0xFF}, GlyphDimensions{Width: 4, Height: 2, Depth: 2})

	for x := 0; x < 4; x++ {
		if got := g.At(x, 0); got != 3 {
			t.Errorf("Pixel (%d,0) should be 3, got %d", x, got)
		}
		if got := g.At(x, 1); got != 0 {
			t.Errorf("Pixel (%d,1) is past the data and should be 0, got %d", x, got)
		}
	}
}

// TestDecodeSingleBit113 decodes the smallest interesting monochrome
// input: 113 bytes with only the first bit set must light exactly one
// pixel, at full intensity, in the top-left corner of the 30x30 cell.
func TestDecodeSingleBit113(t *testing.T) {
	data := make([]byte, 113)
	data[0] = 0x80
	g := DecodeGrid(data, GlyphDimensions{Width: 30, Height: 30, Depth: 1})

	if got := g.At(0, 0); got != 3 {
		t.Errorf("Top-left pixel should be 3, got %d", got)
	}
	lit := 0
	for _, v := range g.Pix {
		if v != 0 {
			lit++
		}
	}
	if lit != 1 {
		t.Errorf("Exactly one pixel should be lit, got %d", lit)
	}
}

func TestGridAtSetBounds(t *testing.T) {
	g := NewPixelGrid(3, 2)
	g.Set(2, 1, 3)
	if got := g.At(2, 1); got != 3 {
		t.Errorf("At(2,1) should be 3 after Set, got %d", got)
	}

	// Out-of-range reads are 0, out-of-range writes are dropped
	outside := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}}
	for _, p := range outside {
		if got := g.At(p[0], p[1]); got != 0 {
			t.Errorf("At(%d,%d) outside grid should be 0, got %d", p[0], p[1], got)
		}
		g.Set(p[0], p[1], 3)
	}
	for i, v := range g.Pix {
		if v != 0 && i != 1*3+2 {
			t.Errorf("Out-of-range Set leaked into Pix[%d] = %d", i, v)
		}
	}
}

func TestNewPixelGridAllocation(t *testing.T) {
	g := NewPixelGrid(15, 30)
	if g.Width != 15 || g.Height != 30 {
		t.Errorf("Grid dimensions should be 15x30, got %dx%d", g.Width, g.Height)
	}
	if len(g.Pix) != 15*30 {
		t.Errorf("Flat pixel slice should hold %d entries, got %d", 15*30, len(g.Pix))
	}
	for i, v := range g.Pix {
		if v != 0 {
			t.Fatalf("Fresh grid should be all zero, Pix[%d] = %d", i, v)
		}
	}
}
