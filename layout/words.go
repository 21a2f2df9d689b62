package layout

import (
	"sort"
	"strings"
	"unicode"

	"refx/pdf"
)

const (
	wordGapFactor  = 0.3 // of median glyph width
	fontJumpFactor = 0.2
	baselineShift  = 0.4 // of glyph height, sub/superscript attachment limit
	backJumpSlack  = 0.5 // of glyph width, tolerance before a jump counts as backward
	supFontFactor  = 0.8 // of line font, superscript size limit
	supRaiseFactor = 0.15
)

type wordBuilder struct {
	sb       strings.Builder
	left     float64
	right    float64
	baseline float64
	page     int
	sizes    map[float64]int // glyph size histogram for the dominant size
	widths   []float64
}

func (w *wordBuilder) empty() bool { return w.sb.Len() == 0 }

func (w *wordBuilder) add(c pdf.Char) {
	if w.empty() {
		w.left = c.X
		w.baseline = c.Y
		w.page = c.Page
		w.sizes = make(map[float64]int)
	}
	w.sb.WriteRune(c.R)
	w.right = c.X + c.W
	w.sizes[c.FontSize]++
	w.widths = append(w.widths, c.W)
}

func (w *wordBuilder) medianWidth() float64 {
	if len(w.widths) == 0 {
		return 0
	}
	s := append([]float64(nil), w.widths...)
	sort.Float64s(s)
	return s[len(s)/2]
}

func (w *wordBuilder) dominantSize() float64 {
	best, bestN := 0.0, 0
	for size, n := range w.sizes {
		if n > bestN || (n == bestN && size > best) {
			best, bestN = size, n
		}
	}
	return best
}

func (w *wordBuilder) flush(out []Word) []Word {
	if w.empty() {
		return out
	}
	out = append(out, Word{
		Text:     w.sb.String(),
		Left:     w.left,
		Right:    w.right,
		Baseline: w.baseline,
		FontSize: w.dominantSize(),
		Page:     w.page,
	})
	w.sb.Reset()
	w.widths = w.widths[:0]
	return out
}

// buildWords groups glyphs into words in stream order. A new word starts on a
// backward jump of the pen, on an oversized horizontal gap, or on a font size
// change; sub/superscripts with a small baseline shift stay attached.
func buildWords(chars []pdf.Char) []Word {
	var (
		out []Word
		cur wordBuilder
	)
	for _, c := range chars {
		if unicode.IsSpace(c.R) {
			out = cur.flush(out)
			continue
		}
		if cur.empty() {
			cur.add(c)
			continue
		}

		size := cur.dominantSize()
		shift := abs(c.Y - cur.baseline)
		// raised or lowered by less than the attachment limit: sub/superscript
		attached := shift > 0.01*size && shift < baselineShift*maxf(c.H, size)

		switch {
		case shift >= baselineShift*maxf(c.H, size):
			// different line or a detached super/subscript
			out = cur.flush(out)
		case c.X < cur.right-backJumpSlack*c.W:
			out = cur.flush(out)
		case c.X-cur.right > wordGapFactor*maxf(cur.medianWidth(), c.W):
			out = cur.flush(out)
		case sizeJump(size, c.FontSize) && !attached:
			out = cur.flush(out)
		}
		cur.add(c)
	}
	return cur.flush(out)
}

func sizeJump(a, b float64) bool {
	if a == 0 || b == 0 {
		return false
	}
	hi, lo := a, b
	if hi < lo {
		hi, lo = lo, hi
	}
	return (hi-lo)/hi > fontJumpFactor
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
