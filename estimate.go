package drcs2bmp

// sizeEntry pins one raw byte length to the broadcast cell geometry it
// encodes.
type sizeEntry struct {
	length int
	dims   GlyphDimensions
}

// knownSizes lists the standard broadcast subtitle cell sizes in match
// priority order. Several of these lengths also satisfy the generic
// width search at different shapes (225 bytes fits 25x36x2, 113 fits
// 15x30x2), so the table must be consulted before the search and kept
// in this order; reordering it changes which hash existing glyphs map
// to.
var knownSizes = []sizeEntry{
	{324, GlyphDimensions{Width: 36, Height: 36, Depth: 2}},
	{162, GlyphDimensions{Width: 18, Height: 36, Depth: 2}},
	{225, GlyphDimensions{Width: 30, Height: 30, Depth: 2}},
	{113, GlyphDimensions{Width: 30, Height: 30, Depth: 1}},
	{96, GlyphDimensions{Width: 16, Height: 24, Depth: 2}},
	{57, GlyphDimensions{Width: 15, Height: 30, Depth: 1}},
}

// ambiguousEntry describes a byte length that two real cell shapes
// share. Candidate b wins when its pattern score reaches bias times
// candidate a's score, so a bias below 1 favors b on near ties.
type ambiguousEntry struct {
	length int
	a, b   GlyphDimensions
	bias   float64
}

// ambiguousSizes holds the lengths the size table cannot settle. 72
// bytes is both a 16x18 and a 12x24 four-level cell; 12x24 is the more
// common shape in broadcast streams, hence the bias in its favor.
var ambiguousSizes = []ambiguousEntry{
	{
		length: 72,
		a:      GlyphDimensions{Width: 16, Height: 18, Depth: 2},
		b:      GlyphDimensions{Width: 12, Height: 24, Depth: 2},
		bias:   0.8,
	},
}

// searchHeights are the candidate cell heights for the generic width
// search, most common first. Order matters for lengths that fit more
// than one height exactly.
var searchHeights = []int{36, 30, 24, 18, 20, 16}

// EstimateDimensions infers the cell geometry of raw glyph data from
// its byte length. Known sizes resolve directly; lengths shared by two
// shapes are settled by scoring the decoded pattern at both, and the
// reported bool is true only on that path. Unknown lengths fall back to
// a width search over standard heights and, failing that, a best-effort
// 36-row guess, so every input gets some geometry.
func EstimateDimensions(data []byte) (GlyphDimensions, bool) {
	n := len(data)
	for _, e := range knownSizes {
		if e.length == n {
			return e.dims, false
		}
	}
	for _, e := range ambiguousSizes {
		if e.length == n {
			return resolveAmbiguous(data, e), true
		}
	}
	for _, depth := range []int{2, 1} {
		for _, h := range searchHeights {
			w := n * 8 / (h * depth)
			if w > 0 && (w*h*depth+7)/8 == n {
				return GlyphDimensions{Width: w, Height: h, Depth: depth}, false
			}
		}
	}
	w := n * 4 / 36
	if w < 1 {
		w = 1
	}
	return GlyphDimensions{Width: w, Height: 36, Depth: 2}, false
}

// resolveAmbiguous decodes the data at both candidate shapes and keeps
// the one whose pattern scores better after applying the entry's bias.
func resolveAmbiguous(data []byte, e ambiguousEntry) GlyphDimensions {
	scoreA := patternScore(data, e.a)
	scoreB := patternScore(data, e.b)
	if scoreB >= scoreA*e.bias {
		return e.b
	}
	return e.a
}

// patternScore rates how glyph-like raw data looks when decoded at the
// given dimensions. Glyph strokes are contiguous runs, so each opaque
// pixel earns 2 points for a matching pixel below and 1 for a matching
// pixel to the right, while every opaque pixel touching the cell border
// costs 5 points: data decoded at the wrong shape wraps strokes across
// row boundaries and smears them against the edges.
func patternScore(data []byte, dims GlyphDimensions) float64 {
	g := DecodeGrid(data, dims)
	score := 0.0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.At(x, y)
			if v == 0 {
				continue
			}
			if g.At(x, y+1) == v {
				score += 2.0
			}
			if g.At(x+1, y) == v {
				score += 1.0
			}
			if x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1 {
				score -= 5.0
			}
		}
	}
	return score
}
