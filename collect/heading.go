package collect

import (
	"refx/common"
	"refx/layout"
)

const (
	verifyPageSpan   = 3  // pages examined after a heading candidate
	verifyBlockLimit = 15 // blocks scanned per page during verification
)

// findHeadings returns every verified reference-section anchor in page
// order. Verification guards against TOC entries and running headers that
// slipped through zone classification: a heading only counts when citation
// content actually follows it.
func findHeadings(doc *layout.Document) []RefHeadingLoc {
	var out []RefHeadingLoc
	for pi, p := range doc.Pages {
		for bi, b := range p.Blocks {
			if b.Zone != common.PageZoneRefHeadingCandidate {
				continue
			}
			if !hasRefsAfter(doc, pi, bi) {
				continue
			}
			out = append(out, RefHeadingLoc{
				Page:  pi,
				Block: bi,
				Text:  b.Text(),
			})
		}
	}
	// only the last anchor's section runs to the end of the document
	if len(out) > 0 {
		out[len(out)-1].Terminal = true
	}
	return out
}

// hasRefsAfter scans up to three pages past the candidate, at most fifteen
// blocks per page, and accepts once the cumulative citation score reaches
// the threshold.
func hasRefsAfter(doc *layout.Document, page, block int) bool {
	score := 0
	for pi := page; pi < len(doc.Pages) && pi <= page+verifyPageSpan; pi++ {
		p := doc.Pages[pi]
		scanned := 0
		start := 0
		if pi == page {
			start = block + 1
		}
		for bi := start; bi < len(p.Blocks) && scanned < verifyBlockLimit; bi++ {
			b := p.Blocks[bi]
			if b.Zone == common.PageZoneHeader || b.Zone == common.PageZonePageNumber {
				continue
			}
			scanned++
			for li := range b.Lines {
				score += lineCitationScore(&b.Lines[li])
				if score >= acceptScore {
					return true
				}
			}
		}
	}
	return false
}
