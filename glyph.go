package drcs2bmp

// GlyphDimensions describes the pixel geometry of a raw DRCS glyph:
// the cell width and height in pixels and the bit depth of the packed
// source data. Depth 2 glyphs carry four shading levels per pixel,
// depth 1 glyphs are monochrome.
type GlyphDimensions struct {
	Width  int
	Height int
	Depth  int
}

// PixelGrid holds a decoded glyph as 2-bit palette indices (0-3), row 0
// topmost. Pixels are stored in a single flat slice addressed
// row*Width+col, so a grid costs one allocation regardless of height.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelGrid returns an all-zero grid of the given dimensions.
func NewPixelGrid(width, height int) *PixelGrid {
	return &PixelGrid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At returns the pixel value at (x, y). Coordinates outside the grid
// read as 0, which lets neighbor scans run without bounds bookkeeping.
func (g *PixelGrid) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.Pix[y*g.Width+x]
}

// Set stores v at (x, y). Coordinates outside the grid are ignored.
func (g *PixelGrid) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Pix[y*g.Width+x] = v
}

// DecodeGrid unpacks raw DRCS pattern bytes into a pixel grid at the
// given dimensions. A bit cursor walks the data most significant bit
// first, advancing by the bit depth per pixel, so depth 2 data yields
// four pixels per byte and depth 1 data eight. Reads past the end of
// the data produce 0 rather than failing, since estimated dimensions
// may cover slightly more bits than the source provides. Depth 1 set
// bits decode to shade 3, the full-intensity index.
func DecodeGrid(data []byte, dims GlyphDimensions) *PixelGrid {
	g := NewPixelGrid(dims.Width, dims.Height)
	cur := 0
	for i := range g.Pix {
		var b byte
		if idx := cur / 8; idx < len(data) {
			b = data[idx]
		}
		if dims.Depth == 1 {
			if (b>>(7-cur%8))&0x01 != 0 {
				g.Pix[i] = 3
			}
		} else {
			g.Pix[i] = (b >> (6 - cur%8)) & 0x03
		}
		cur += dims.Depth
	}
	return g
}
