package collect

import (
	"refx/common"
	"refx/layout"
)

const (
	markerlessPageLimit = 2
	chapterFontFactor   = 1.2
)

// gatherFromHeading walks pages starting at a verified heading and returns
// the content blocks of its reference section. Gathering stops at the next
// verified heading, after two consecutive markerless pages, or at a larger
// mid-document heading (a new chapter).
func gatherFromHeading(doc *layout.Document, h RefHeadingLoc, next *RefHeadingLoc) []*layout.Block {
	var (
		out        []*layout.Block
		pending    [][]*layout.Block // markerless pages awaiting confirmation
		markerless int
	)
	// the first withheld page may still hold the tail of the last entry
	finish := func(last []*layout.Block) []*layout.Block {
		if len(pending) > 0 {
			out = append(out, pending[0]...)
		}
		return append(out, last...)
	}

	for pi := h.Page; pi < len(doc.Pages); pi++ {
		p := doc.Pages[pi]
		start := 0
		if pi == h.Page {
			start = h.Block + 1
		}

		var pageBlocks []*layout.Block
		for bi := start; bi < len(p.Blocks); bi++ {
			if next != nil && pi == next.Page && bi == next.Block {
				return finish(pageBlocks)
			}
			b := p.Blocks[bi]
			switch b.Zone {
			case common.PageZoneHeader, common.PageZonePageNumber, common.PageZoneFootnote:
				continue
			case common.PageZoneRefHeadingCandidate:
				if pi > h.Page {
					// a later standalone "References" block is a running
					// header unless this page carries ref content of its own
					if !pageHasMarkers(p.Blocks[bi+1:]) {
						continue
					}
					return finish(pageBlocks)
				}
				continue
			}
			if pi > h.Page && doc.BodyFont > 0 &&
				b.MeanFont > chapterFontFactor*doc.BodyFont && b.LineCount() <= 2 {
				return finish(pageBlocks)
			}
			pageBlocks = append(pageBlocks, b)
		}

		if pi == h.Page || pageHasMarkers(pageBlocks) {
			for _, pp := range pending {
				out = append(out, pp...)
			}
			pending, markerless = nil, 0
			out = append(out, pageBlocks...)
			continue
		}
		pending = append(pending, pageBlocks)
		markerless++
		if markerless >= markerlessPageLimit {
			return finish(nil)
		}
	}
	return finish(nil)
}

func pageHasMarkers(blocks []*layout.Block) bool {
	for _, b := range blocks {
		if b == nil {
			continue
		}
		for li := range b.Lines {
			if _, _, ok := anyMarker(&b.Lines[li]); ok {
				return true
			}
		}
	}
	return false
}

// splitByMarkers cuts a block run into raw references at marker positions.
// Content before the first marker is dropped; a numeric drop of more than
// one ends the section.
func splitByMarkers(blocks []*layout.Block, format common.MarkerFormat, source common.RefSource) []RawReference {
	if format == common.MarkerFormatNone || len(blocks) == 0 {
		return nil
	}

	var (
		out     []RawReference
		cur     *RawReference
		curText []string
		prevVal = -1
	)
	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = joinLines(curText)
		out = append(out, *cur)
		cur, curText = nil, nil
	}

	for _, b := range blocks {
		for li := range b.Lines {
			ln := &b.Lines[li]
			if m, ok := markerAt(ln, format); ok {
				if m.value >= 0 && prevVal >= 0 && m.value < prevVal-1 {
					flush()
					return out
				}
				if m.value >= 0 {
					prevVal = m.value
				}
				flush()
				cur = &RawReference{
					Marker: m.text,
					Source: source,
					Page:   b.Page,
				}
				if m.rest != "" {
					curText = append(curText, m.rest)
				}
				continue
			}
			if cur != nil {
				curText = append(curText, ln.Text())
			}
		}
	}
	flush()
	return out
}
