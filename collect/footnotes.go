package collect

import (
	"refx/common"
	"refx/layout"
)

// collectFootnotes extracts per-page footnote-zone references in page order.
// Marker splitting uses the same formats as the reference section; a
// footnote block without markers still becomes one raw reference when it
// carries citation content (prose notes are skipped).
func collectFootnotes(doc *layout.Document) []RawReference {
	var out []RawReference
	for _, p := range doc.Pages {
		var blocks []*layout.Block
		for _, b := range p.Blocks {
			if b.Zone == common.PageZoneFootnote {
				blocks = append(blocks, b)
			}
		}
		if len(blocks) == 0 {
			continue
		}

		format := detectFormat(blocks)
		refs := splitByMarkers(blocks, format, common.RefSourceFootnote)
		if len(refs) > 0 {
			out = append(out, refs...)
			continue
		}
		for _, b := range blocks {
			cit := 0
			for li := range b.Lines {
				if isCitationLine(&b.Lines[li]) {
					cit++
				}
			}
			if cit == 0 {
				continue
			}
			var lines []string
			for li := range b.Lines {
				lines = append(lines, b.Lines[li].Text())
			}
			out = append(out, RawReference{
				Text:   joinLines(lines),
				Source: common.RefSourceFootnote,
				Page:   p.Index,
			})
		}
	}
	return out
}
