// Package layout reconstructs words, lines and blocks from raw glyph
// positions and yields page blocks in reading order. All geometry is PDF user
// space (y grows up), so "top" means larger y.
package layout

import (
	"sort"
	"strings"

	"refx/common"
	"refx/pdf"
)

// Word is a contiguous run of glyphs on one baseline with no oversized gap.
type Word struct {
	Text        string
	Left, Right float64
	Baseline    float64
	FontSize    float64 // dominant glyph size
	Page        int
	Superscript bool // set during line formation
}

// Line is a horizontally ordered run of words with near-equal baselines.
type Line struct {
	Words    []Word
	Baseline float64
	Left     float64
	Right    float64
	FontSize float64 // dominant word size
}

// Text returns the line content with single spaces between words.
func (l *Line) Text() string {
	parts := make([]string, len(l.Words))
	for i := range l.Words {
		parts[i] = l.Words[i].Text
	}
	return strings.Join(parts, " ")
}

// Block is a run of vertically adjacent lines with compatible indentation.
// This is the unit the zoner and the collector reason over.
type Block struct {
	Lines       []Line
	Page        int
	Left, Right float64
	Top, Bottom float64
	MeanFont    float64
	Column      common.ColumnTag
	Zone        common.PageZone
}

// Text returns block content, lines joined with single spaces.
func (b *Block) Text() string {
	parts := make([]string, len(b.Lines))
	for i := range b.Lines {
		parts[i] = b.Lines[i].Text()
	}
	return strings.Join(parts, " ")
}

func (b *Block) LineCount() int { return len(b.Lines) }

// Page holds blocks in reading order after column split.
type Page struct {
	Index      int
	Blocks     []*Block
	MedianFont float64
	Top        float64 // content extent
	Bottom     float64
	TextEmpty  bool
}

// Document is the layout view of a whole PDF.
type Document struct {
	Pages    []*Page
	BodyFont float64 // mode of block mean font sizes across pages
}

// Text returns the reconstructed reading-order text of the document. Used by
// debug reporting.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		for _, b := range p.Blocks {
			sb.WriteString(b.Text())
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// BuildDocument runs the full layout reconstruction over per-page glyph
// slices and classifies zones.
func BuildDocument(pages [][]pdf.Char) *Document {
	doc := &Document{Pages: make([]*Page, 0, len(pages))}
	for i, chars := range pages {
		doc.Pages = append(doc.Pages, BuildPage(chars, i))
	}
	doc.BodyFont = bodyFontSize(doc.Pages)
	classifyZones(doc)
	return doc
}

// BuildPage reconstructs one page: words, lines, column split, blocks.
func BuildPage(chars []pdf.Char, index int) *Page {
	p := &Page{Index: index}
	if pdf.TextEmpty(chars) {
		p.TextEmpty = true
		return p
	}

	words := buildWords(chars)
	p.MedianFont = medianFont(words)
	for i, w := range words {
		if i == 0 || w.Baseline > p.Top {
			p.Top = w.Baseline
		}
		if i == 0 || w.Baseline < p.Bottom {
			p.Bottom = w.Baseline
		}
	}

	if split, ok := detectColumnSplit(chars); ok {
		// the split works at word granularity: a line grouping would fuse
		// left and right text sharing a baseline
		var left, right []Word
		for _, w := range words {
			if (w.Left+w.Right)/2 < split {
				left = append(left, w)
			} else {
				right = append(right, w)
			}
		}
		lb := buildBlocks(buildLines(left), index, p.MedianFont)
		rb := buildBlocks(buildLines(right), index, p.MedianFont)
		for _, b := range lb {
			b.Column = common.ColumnTagLeft
		}
		for _, b := range rb {
			b.Column = common.ColumnTagRight
		}
		p.Blocks = append(lb, rb...)
	} else {
		p.Blocks = buildBlocks(buildLines(words), index, p.MedianFont)
	}
	return p
}

func medianFont(words []Word) float64 {
	if len(words) == 0 {
		return 0
	}
	sizes := make([]float64, len(words))
	for i, w := range words {
		sizes[i] = w.FontSize
	}
	sort.Float64s(sizes)
	return sizes[len(sizes)/2]
}

// bodyFontSize is the mode of block mean font sizes across all pages,
// weighted by line count so that long body blocks dominate headings and
// footnotes. Sizes are bucketed to half a point to be robust to Type-3 font
// jitter.
func bodyFontSize(pages []*Page) float64 {
	counts := make(map[int]int)
	for _, p := range pages {
		for _, b := range p.Blocks {
			bucket := int(b.MeanFont*2 + 0.5)
			counts[bucket] += b.LineCount()
		}
	}
	best, bestN := 0, 0
	for bucket, n := range counts {
		if n > bestN || (n == bestN && bucket > best) {
			best, bestN = bucket, n
		}
	}
	return float64(best) / 2
}
