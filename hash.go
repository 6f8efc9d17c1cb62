package drcs2bmp

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// HashGrid computes the content identity of a decoded glyph: the MD5 of
// its pixels repacked four per byte, rows visited bottom to top to
// match the row order of the emitted bitmap. Two raw inputs that decode
// to the same grid therefore share a hash, a filename and a bitmap,
// regardless of any stray bits beyond the pixel data. The digest is
// rendered as 32 uppercase hex characters.
func HashGrid(g *PixelGrid) string {
	buf := make([]byte, (g.Width*g.Height+3)/4)
	pos := 0
	for y := g.Height - 1; y >= 0; y-- {
		row := g.Pix[y*g.Width : (y+1)*g.Width]
		for _, v := range row {
			buf[pos/4] |= (v & 0x03) << ((3 - pos%4) * 2)
			pos++
		}
	}
	sum := md5.Sum(buf)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
