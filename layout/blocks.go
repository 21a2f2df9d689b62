package layout

const (
	blockGapFactor    = 1.6 // of line height
	indentTolFactor   = 0.5 // of page median font
	hangingIndentSpan = 4.0 // of page median font, deepest continuation indent
)

// buildBlocks merges consecutive lines into blocks. Lines must already be in
// reading order for one column.
func buildBlocks(lines []Line, page int, medianFont float64) []*Block {
	if len(lines) == 0 {
		return nil
	}

	var blocks []*Block
	cur := newBlock(lines[0], page)
	for _, ln := range lines[1:] {
		if cur.accepts(ln, medianFont) {
			cur.push(ln)
			continue
		}
		blocks = append(blocks, cur.finish())
		cur = newBlock(ln, page)
	}
	blocks = append(blocks, cur.finish())
	return blocks
}

type blockBuilder struct {
	b       *Block
	minLeft float64
}

func newBlock(ln Line, page int) *blockBuilder {
	return &blockBuilder{
		b: &Block{
			Lines:  []Line{ln},
			Page:   page,
			Left:   ln.Left,
			Right:  ln.Right,
			Top:    ln.Baseline,
			Bottom: ln.Baseline,
		},
		minLeft: ln.Left,
	}
}

// accepts decides whether ln continues the current block: the vertical gap
// must stay under 1.6 line heights and the indentation must either align with
// the previous line or fit a hanging-indent pattern (continuation lines
// indented deeper than the block's left edge, as reference entries are).
func (bb *blockBuilder) accepts(ln Line, medianFont float64) bool {
	prev := bb.b.Lines[len(bb.b.Lines)-1]

	height := prev.FontSize
	if ln.FontSize > height {
		height = ln.FontSize
	}
	if height <= 0 {
		height = medianFont
	}
	if prev.Baseline-ln.Baseline > blockGapFactor*height*1.25 {
		// 1.25 converts glyph size to nominal line height
		return false
	}

	tol := indentTolFactor * medianFont
	if diff := abs(ln.Left - prev.Left); diff <= tol {
		return true
	}
	// hanging indent: continuation starts right of the block's left edge
	if ln.Left > bb.minLeft && ln.Left-bb.minLeft <= hangingIndentSpan*medianFont {
		return true
	}
	// dedent back to the hanging-indent anchor
	if ln.Left < prev.Left && bb.minLeft-ln.Left <= tol {
		return true
	}
	return false
}

func (bb *blockBuilder) push(ln Line) {
	b := bb.b
	b.Lines = append(b.Lines, ln)
	if ln.Left < b.Left {
		b.Left = ln.Left
	}
	if ln.Right > b.Right {
		b.Right = ln.Right
	}
	if ln.Baseline < b.Bottom {
		b.Bottom = ln.Baseline
	}
	if ln.Baseline > b.Top {
		b.Top = ln.Baseline
	}
	if ln.Left < bb.minLeft {
		bb.minLeft = ln.Left
	}
}

func (bb *blockBuilder) finish() *Block {
	b := bb.b
	var sum float64
	for _, ln := range b.Lines {
		sum += ln.FontSize
	}
	b.MeanFont = sum / float64(len(b.Lines))
	return b
}
