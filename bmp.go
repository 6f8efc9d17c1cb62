package drcs2bmp

import (
	"bytes"
	"encoding/binary"
)

// bitmapFileHeader is the 14-byte BMP file header. Type is always "BM"
// and OffBits points at the pixel data, past both headers and the
// palette.
type bitmapFileHeader struct {
	Type      [2]byte
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32
}

// bitmapInfoHeader is the 40-byte BITMAPINFOHEADER. Glyph bitmaps are
// uncompressed 4-bit indexed images, so BitCount is 4 and Compression
// stays 0 (BI_RGB).
type bitmapInfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// glyphPalette is the fixed 16-entry BGR0 color table written into
// every bitmap. Indices 0-3 are the four DRCS shading levels, white
// through black; the remaining twelve entries are present only to fill
// out the 4-bit table and stay zero.
var glyphPalette = [16][4]byte{
	{0xFF, 0xFF, 0xFF, 0x00},
	{0xAA, 0xAA, 0xAA, 0x00},
	{0x55, 0x55, 0x55, 0x00},
	{0x00, 0x00, 0x00, 0x00},
}

// pixelDataOffset is where pixel rows begin: file header, info header,
// then the 16-entry palette.
const pixelDataOffset = 14 + 40 + 16*4

// bmpStride returns the byte width of one stored pixel row: two pixels
// per byte, padded up to a multiple of four bytes.
func bmpStride(width int) int {
	return (width*4 + 31) / 32 * 4
}

// EncodeBMP serializes a pixel grid as a complete 4-bit indexed BMP.
// Rows are stored bottom-up as the positive Height field requires, two
// pixels per byte with the left pixel in the high nibble; odd widths
// pad the trailing nibble with 0. Identical grids yield byte-identical
// files, which is what lets the content hash stand in for the file.
func EncodeBMP(g *PixelGrid) []byte {
	stride := bmpStride(g.Width)
	imageSize := stride * g.Height
	buf := bytes.NewBuffer(make([]byte, 0, pixelDataOffset+imageSize))
	binary.Write(buf, binary.LittleEndian, bitmapFileHeader{
		Type:    [2]byte{'B', 'M'},
		Size:    uint32(pixelDataOffset + imageSize),
		OffBits: pixelDataOffset,
	})
	binary.Write(buf, binary.LittleEndian, bitmapInfoHeader{
		Size:      40,
		Width:     int32(g.Width),
		Height:    int32(g.Height),
		Planes:    1,
		BitCount:  4,
		SizeImage: uint32(imageSize),
	})
	binary.Write(buf, binary.LittleEndian, glyphPalette)
	row := make([]byte, stride)
	for y := g.Height - 1; y >= 0; y-- {
		for i := range row {
			row[i] = 0
		}
		src := g.Pix[y*g.Width : (y+1)*g.Width]
		for x, v := range src {
			if x%2 == 0 {
				row[x/2] = (v & 0x0F) << 4
			} else {
				row[x/2] |= v & 0x0F
			}
		}
		buf.Write(row)
	}
	return buf.Bytes()
}
