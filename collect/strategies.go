package collect

import (
	"refx/common"
	"refx/layout"
)

const (
	denseMinMarkers    = 3
	denseMinScore      = 4
	denseMinCitLines   = 20
	denseMinDensity    = 0.6
	tocRunThreshold    = 10
	trailingMinMarkers = 5
	trailingMinCit     = 3
	superscriptBackoff = 30
)

// denseBlockScan finds blocks dominated by citation-shaped content anywhere
// in the document. TOC-style runs are rejected wholesale.
func denseBlockScan(doc *layout.Document) []*layout.Block {
	var run []*layout.Block
	tocEntries := 0
	for _, p := range doc.Pages {
		for _, b := range p.Blocks {
			if b.Zone == common.PageZoneHeader || b.Zone == common.PageZonePageNumber {
				continue
			}
			if isDenseRefBlock(b) {
				run = append(run, b)
			}
			for li := range b.Lines {
				if isTOCLine(b.Lines[li].Text()) {
					tocEntries++
				}
			}
		}
	}
	if tocEntries >= tocRunThreshold {
		return nil
	}
	return run
}

// isDenseRefBlock applies the density rule: enough markers plus citation
// score, or a long run of citation-shaped lines.
func isDenseRefBlock(b *layout.Block) bool {
	markers, score, citLines := 0, 0, 0
	for li := range b.Lines {
		ln := &b.Lines[li]
		if _, _, ok := anyMarker(ln); ok {
			markers++
		}
		s := lineCitationScore(ln)
		score += s
		if s >= citationScore2 {
			citLines++
		}
	}
	if markers >= denseMinMarkers && score >= denseMinScore {
		return true
	}
	n := b.LineCount()
	return citLines >= denseMinCitLines && n > 0 && float64(citLines)/float64(n) >= denseMinDensity
}

// trailingScan walks pages from the back and keeps clusters of marked
// citation lines. The final cluster needs five markers; mid-scan clusters
// additionally need three citation lines.
func trailingScan(doc *layout.Document) []*layout.Block {
	var clusters [][]*layout.Block
	var cur []*layout.Block
	curMarkers, curCit := 0, 0

	flush := func(final bool) {
		ok := curMarkers >= trailingMinMarkers
		if !final {
			ok = ok && curCit >= trailingMinCit
		}
		if ok {
			clusters = append(clusters, cur)
		}
		cur, curMarkers, curCit = nil, 0, 0
	}

	for pi := len(doc.Pages) - 1; pi >= 0; pi-- {
		p := doc.Pages[pi]
		for bi := len(p.Blocks) - 1; bi >= 0; bi-- {
			b := p.Blocks[bi]
			if b.Zone == common.PageZoneHeader || b.Zone == common.PageZonePageNumber {
				continue
			}
			markers, cit := 0, 0
			for li := range b.Lines {
				if _, _, ok := anyMarker(&b.Lines[li]); ok {
					markers++
				}
				if isCitationLine(&b.Lines[li]) {
					cit++
				}
			}
			if markers == 0 && cit == 0 {
				flush(len(clusters) == 0)
				continue
			}
			cur = append([]*layout.Block{b}, cur...)
			curMarkers += markers
			curCit += cit
		}
	}
	flush(len(clusters) == 0)

	var out []*layout.Block
	for i := len(clusters) - 1; i >= 0; i-- { // restore document order
		out = append(out, clusters[i]...)
	}
	return out
}

// superscriptPairScan is the last resort: papers citing through bare
// superscript integers. It pairs superscript markers in body lines with
// small-font line starts and walks backward from the document end, allowing
// a bounded run of non-reference blocks before giving up.
func superscriptPairScan(doc *layout.Document) []*layout.Block {
	cited := make(map[string]bool)
	for _, p := range doc.Pages {
		for _, b := range p.Blocks {
			if b.Zone != common.PageZoneBody {
				continue
			}
			for li := range b.Lines {
				for wi, w := range b.Lines[li].Words {
					if wi > 0 && w.Superscript && allDigitsWord(w.Text) {
						cited[w.Text] = true
					}
				}
			}
		}
	}
	if len(cited) == 0 {
		return nil
	}

	var rev []*layout.Block
	nonRef := 0
	for pi := len(doc.Pages) - 1; pi >= 0; pi-- {
		p := doc.Pages[pi]
		for bi := len(p.Blocks) - 1; bi >= 0; bi-- {
			b := p.Blocks[bi]
			if b.Zone == common.PageZoneHeader || b.Zone == common.PageZonePageNumber {
				continue
			}
			matched := false
			for li := range b.Lines {
				ws := b.Lines[li].Words
				if len(ws) > 0 && ws[0].Superscript && cited[ws[0].Text] {
					matched = true
					break
				}
			}
			if matched {
				nonRef = 0
				rev = append(rev, b)
				continue
			}
			if len(rev) > 0 {
				nonRef++
				if nonRef > superscriptBackoff {
					pi = -1
					break
				}
			}
		}
	}

	out := make([]*layout.Block, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}
