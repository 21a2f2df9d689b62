// Package pdf turns PDF pages into per-character records the layout stage
// works with. Decoding itself is delegated to github.com/ledongthuc/pdf which
// hands us positioned text runs; we only break runs into single glyphs.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	ldpdf "github.com/ledongthuc/pdf"
)

// Char is a single glyph with its baseline position. Immutable after
// extraction, consumed by layout.
type Char struct {
	R        rune
	X, Y     float64 // baseline origin, PDF user space (y grows up)
	W, H     float64
	FontSize float64
	Page     int
}

// MinTextChars is the number of non-whitespace glyphs below which a page is
// considered text-empty and eligible for the OCR fallback.
const MinTextChars = 10

// Document wraps an open PDF file.
type Document struct {
	f *os.File
	r *ldpdf.Reader
}

// Open opens the PDF at path. The caller must Close the document.
func Open(path string) (*Document, error) {
	f, r, err := ldpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open pdf %q: %w", path, err)
	}
	return &Document{f: f, r: r}, nil
}

// OpenBytes opens a PDF held in memory (archive members).
func OpenBytes(data []byte) (*Document, error) {
	r, err := ldpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("unable to open pdf data: %w", err)
	}
	return &Document{r: r}, nil
}

func (d *Document) Close() error {
	if d.f == nil {
		return nil
	}
	return d.f.Close()
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.r.NumPage()
}

// PageChars extracts glyphs of page index (zero based). Decode errors on a
// single page do not fail the document, the page just comes back empty.
func (d *Document) PageChars(index int) (chars []Char, err error) {
	// the underlying library panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			chars = nil
			err = fmt.Errorf("pdf page %d: content decode failed: %v", index+1, r)
		}
	}()

	p := d.r.Page(index + 1)
	if p.V.IsNull() {
		return nil, nil
	}
	content := p.Content()
	chars = make([]Char, 0, len(content.Text))
	for _, t := range content.Text {
		chars = append(chars, splitRun(t, index)...)
	}
	return chars, nil
}

// TextEmpty reports whether the glyph slice has fewer than MinTextChars
// printable characters.
func TextEmpty(chars []Char) bool {
	n := 0
	for _, c := range chars {
		if !unicode.IsSpace(c.R) {
			n++
			if n >= MinTextChars {
				return false
			}
		}
	}
	return true
}

// splitRun breaks one positioned text run into per-rune records. The library
// reports the run origin and total advance; individual glyph widths are
// approximated by even distribution which is good enough for gap detection
// downstream (runs are short, typically a single glyph).
func splitRun(t ldpdf.Text, page int) []Char {
	s := strings.TrimRight(t.S, "\x00")
	if s == "" {
		return nil
	}
	n := utf8.RuneCountInString(s)
	w := t.W / float64(n)
	h := t.FontSize
	out := make([]Char, 0, n)
	i := 0
	for _, r := range s {
		out = append(out, Char{
			R:        r,
			X:        t.X + w*float64(i),
			Y:        t.Y,
			W:        w,
			H:        h,
			FontSize: t.FontSize,
			Page:     page,
		})
		i++
	}
	return out
}
