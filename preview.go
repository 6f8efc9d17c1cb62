package drcs2bmp

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// glyphShades is the preview-side rendering of the bitmap palette: the
// four DRCS shading levels as RGBA, white through black.
var glyphShades = [4]color.RGBA{
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF},
	{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
}

// GridImage renders a pixel grid at 1:1 as an RGBA image using the
// bitmap palette colors.
func GridImage(g *PixelGrid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, glyphShades[g.At(x, y)&0x03])
		}
	}
	return img
}

// SheetTile is one cell of a preview contact sheet: a decoded glyph and
// the caption drawn under it, normally the substitute character.
type SheetTile struct {
	Grid  *PixelGrid
	Label string
}

// SheetOptions configures contact sheet rendering. Zero values select
// the defaults: 8 columns, 2x magnification, 12-point captions using
// the built-in 7x13 face. Setting FontPath switches captions to a
// TrueType font, which is the only way to see Japanese labels.
type SheetOptions struct {
	Columns   int
	CellScale int
	FontPath  string
	FontSize  float64
}

const (
	sheetPad     = 4
	sheetCaption = 16
)

// RenderSheet lays glyph tiles out on a white contact sheet, left to
// right then top to bottom. Cell size comes from the largest glyph on
// the sheet; each glyph is magnified with hard pixel edges, centered in
// its cell, and captioned underneath. Captions that would overflow the
// cell are trimmed to fit.
func RenderSheet(tiles []SheetTile, opts SheetOptions) (*image.RGBA, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("no tiles to render")
	}
	cols := opts.Columns
	if cols < 1 {
		cols = 8
	}
	if cols > len(tiles) {
		cols = len(tiles)
	}
	scale := opts.CellScale
	if scale < 1 {
		scale = 2
	}
	size := opts.FontSize
	if size <= 0 {
		size = 12
	}

	maxW, maxH := 1, 1
	for _, t := range tiles {
		if t.Grid == nil {
			continue
		}
		if t.Grid.Width > maxW {
			maxW = t.Grid.Width
		}
		if t.Grid.Height > maxH {
			maxH = t.Grid.Height
		}
	}
	cellW := maxW*scale + 2*sheetPad
	cellH := maxH*scale + sheetCaption + 2*sheetPad
	rows := (len(tiles) + cols - 1) / cols

	sheet := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	fillRect(sheet, sheet.Bounds(), color.White)

	var face font.Face = basicfont.Face7x13
	var ctx *freetype.Context
	if opts.FontPath != "" {
		ttf, err := loadCaptionFont(opts.FontPath)
		if err != nil {
			return nil, err
		}
		ttfFace := truetype.NewFace(ttf, &truetype.Options{
			Size: size,
			DPI:  72,
		})
		defer ttfFace.Close()
		face = ttfFace

		ctx = freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetFont(ttf)
		ctx.SetFontSize(size)
		ctx.SetClip(sheet.Bounds())
		ctx.SetDst(sheet)
		ctx.SetSrc(image.Black)
	}

	for i, t := range tiles {
		cx := (i % cols) * cellW
		cy := (i / cols) * cellH
		if t.Grid != nil {
			src := GridImage(t.Grid)
			w := t.Grid.Width * scale
			h := t.Grid.Height * scale
			gx := cx + (cellW-w)/2
			gy := cy + sheetPad + (maxH*scale-h)/2
			draw.NearestNeighbor.Scale(sheet, image.Rect(gx, gy, gx+w, gy+h),
				src, src.Bounds(), draw.Src, nil)
		}
		label := fitLabel(t.Label, face, cellW-2*sheetPad)
		if label == "" {
			continue
		}
		tx := cx + sheetPad
		ty := cy + sheetPad + maxH*scale + 12
		if ctx != nil {
			if _, err := ctx.DrawString(label, freetype.Pt(tx, ty)); err != nil {
				return nil, fmt.Errorf("failed to draw caption %q: %w", label, err)
			}
		} else {
			d := font.Drawer{
				Dst:  sheet,
				Src:  image.Black,
				Face: face,
				Dot:  fixed.P(tx, ty),
			}
			d.DrawString(label)
		}
	}
	return sheet, nil
}

// SaveSheetPNG renders a contact sheet and writes it to path as PNG.
func SaveSheetPNG(path string, tiles []SheetTile, opts SheetOptions) error {
	sheet, err := RenderSheet(tiles, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer f.Close()
	return png.Encode(f, sheet)
}

// fillRect fills a rectangle with the given color.
func fillRect(img *image.RGBA, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// fitLabel trims label from the right until it fits in width pixels
// under the given face.
func fitLabel(label string, face font.Face, width int) string {
	runes := []rune(label)
	for len(runes) > 0 {
		if font.MeasureString(face, string(runes)) <= fixed.I(width) {
			return string(runes)
		}
		runes = runes[:len(runes)-1]
	}
	return ""
}

// loadCaptionFont parses a TrueType font for caption rendering.
func loadCaptionFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read caption font: %w", err)
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse caption font: %w", err)
	}
	return ttf, nil
}
