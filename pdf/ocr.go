package pdf

import (
	"context"
	"unicode/utf8"
)

// OCRWord is one recognized word with its bounding box in page coordinates
// and recognition confidence in percent.
type OCRWord struct {
	Text       string
	X, Y, W, H float64
	Confidence float64
}

// Recognizer rasterizes and recognizes a single page. Implementations wrap an
// external OCR engine; the pipeline itself never touches pixels.
type Recognizer interface {
	RecognizePage(ctx context.Context, path string, pageIndex int) ([]OCRWord, error)
}

// DefaultOCRConfidence is the minimum word confidence accepted when
// synthesizing glyphs from OCR output.
const DefaultOCRConfidence = 40.0

// SynthesizeChars converts OCR words into glyph records by distributing each
// word box evenly over its runes. Words below minConfidence are dropped.
// The result conforms to the same Char contract as native extraction, so the
// rest of the pipeline is unchanged.
func SynthesizeChars(words []OCRWord, page int, minConfidence float64) []Char {
	var out []Char
	for _, w := range words {
		if w.Confidence < minConfidence || w.Text == "" {
			continue
		}
		n := utf8.RuneCountInString(w.Text)
		cw := w.W / float64(n)
		i := 0
		for _, r := range w.Text {
			out = append(out, Char{
				R:        r,
				X:        w.X + cw*float64(i),
				Y:        w.Y,
				W:        cw,
				H:        w.H,
				FontSize: w.H,
				Page:     page,
			})
			i++
		}
		// synthetic inter-word gap keeps word splitting stable downstream
		out = append(out, Char{R: ' ', X: w.X + w.W, Y: w.Y, W: cw, H: w.H, FontSize: w.H, Page: page})
	}
	return out
}
