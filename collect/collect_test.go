package collect

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"refx/common"
	"refx/layout"
)

// makeLine builds a line with plausible geometry from plain text.
func makeLine(text string, baseline float64) layout.Line {
	x := 50.0
	ln := layout.Line{Baseline: baseline, Left: x, FontSize: 10}
	for _, w := range strings.Fields(text) {
		width := float64(len(w)) * 5
		ln.Words = append(ln.Words, layout.Word{
			Text:     w,
			Left:     x,
			Right:    x + width,
			Baseline: baseline,
			FontSize: 10,
		})
		x += width + 5
	}
	ln.Right = x - 5
	return ln
}

func makeBlock(page int, zone common.PageZone, lines ...string) *layout.Block {
	b := &layout.Block{Page: page, Zone: zone, MeanFont: 10}
	base := 700.0
	for _, text := range lines {
		b.Lines = append(b.Lines, makeLine(text, base))
		base -= 12
	}
	if len(b.Lines) > 0 {
		b.Top = b.Lines[0].Baseline
		b.Bottom = b.Lines[len(b.Lines)-1].Baseline
	}
	return b
}

func makeDoc(pages ...[]*layout.Block) *layout.Document {
	doc := &layout.Document{BodyFont: 10}
	for i, blocks := range pages {
		p := &layout.Page{Index: i, Blocks: blocks, MedianFont: 10, Top: 720, Bottom: 60}
		for _, b := range blocks {
			b.Page = i
		}
		doc.Pages = append(doc.Pages, p)
	}
	return doc
}

func TestCollectFromHeading(t *testing.T) {
	doc := makeDoc(
		[]*layout.Block{
			makeBlock(0, common.PageZoneBody, "Some body text about physics results."),
			makeBlock(0, common.PageZoneRefHeadingCandidate, "References"),
			makeBlock(0, common.PageZoneBody,
				`[1] J. D. Bekenstein, "Black holes and entropy," Phys. Rev. D 7, 2333 (1973).`,
				`[2] S. Hawking, Commun. Math. Phys. 43, 199 (1975).`,
			),
		},
		[]*layout.Block{
			makeBlock(1, common.PageZoneBody,
				`[3] CMS Collaboration, arXiv:2007.14040 [hep-ex].`,
			),
		},
	)

	got := Collect(doc, Options{}, zap.NewNop())
	if len(got) != 3 {
		t.Fatalf("Collect() = %d refs, want 3: %+v", len(got), got)
	}
	wantMarkers := []string{"1", "2", "3"}
	for i, r := range got {
		if r.Marker != wantMarkers[i] {
			t.Errorf("ref %d marker = %q, want %q", i, r.Marker, wantMarkers[i])
		}
		if r.Source != common.RefSourceReferenceSection {
			t.Errorf("ref %d source = %v", i, r.Source)
		}
	}
	if !strings.HasPrefix(got[0].Text, "J. D. Bekenstein") {
		t.Errorf("ref 0 text = %q, marker not trimmed", got[0].Text)
	}
}

func TestHeadingNotVerifiedWithoutContent(t *testing.T) {
	// a stray "References" line with prose after it must not verify
	doc := makeDoc(
		[]*layout.Block{
			makeBlock(0, common.PageZoneRefHeadingCandidate, "References"),
			makeBlock(0, common.PageZoneBody, "This chapter told a long story without citations."),
		},
	)
	if got := findHeadings(doc); len(got) != 0 {
		t.Fatalf("findHeadings() = %+v, want none", got)
	}
}

func TestMarkerMonotonicityStopsCollection(t *testing.T) {
	blocks := []*layout.Block{
		makeBlock(0, common.PageZoneBody,
			"[1] A. Author, Phys. Lett. B 100, 10 (1981).",
			"[2] B. Author, Phys. Lett. B 101, 11 (1982).",
			"[3] C. Author, Phys. Lett. B 102, 12 (1983).",
			// a new chapter restarts numbering: must not leak into output
			"[1] D. Other, some unrelated list entry.",
		),
	}
	got := splitByMarkers(blocks, common.MarkerFormatBracket, common.RefSourceReferenceSection)
	if len(got) != 3 {
		t.Fatalf("splitByMarkers() = %d refs, want 3 (stop on marker drop): %+v", len(got), got)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  common.MarkerFormat
	}{
		{"bracket", []string{"[1] first", "[2] second", "[3] third"}, common.MarkerFormatBracket},
		{"paren", []string{"(1) first", "(2) second"}, common.MarkerFormatParen},
		{"dotted", []string{"1. first", "2. second"}, common.MarkerFormatDotted},
		{"author year", []string{"[ABG14] first", "[ATL14a] second"}, common.MarkerFormatAuthorYear},
		{"none", []string{"just prose", "more prose"}, common.MarkerFormatNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := makeBlock(0, common.PageZoneBody, tc.lines...)
			if got := detectFormat([]*layout.Block{b}); got != tc.want {
				t.Errorf("detectFormat() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDottedMarkerDecimalProtection(t *testing.T) {
	ln := makeLine("0.01 is a small number", 700)
	if _, ok := markerAt(&ln, common.MarkerFormatDotted); ok {
		t.Error("decimal number misread as dotted marker")
	}
	ln = makeLine("7. A. Author, Phys. Rev. D 7, 1 (1999)", 700)
	m, ok := markerAt(&ln, common.MarkerFormatDotted)
	if !ok || m.text != "7" {
		t.Errorf("markerAt() = %+v, %v", m, ok)
	}
}

func TestFootnoteCollection(t *testing.T) {
	doc := makeDoc(
		[]*layout.Block{
			makeBlock(0, common.PageZoneBody, "Body text."),
			makeBlock(0, common.PageZoneFootnote,
				"[1] G. 't Hooft, Nucl. Phys. B 72, 461 (1974)."),
		},
	)
	got := collectFootnotes(doc)
	if len(got) != 1 {
		t.Fatalf("collectFootnotes() = %d refs, want 1: %+v", len(got), got)
	}
	if got[0].Source != common.RefSourceFootnote {
		t.Errorf("source = %v, want Footnote", got[0].Source)
	}
	if got[0].Page != 0 {
		t.Errorf("page = %d", got[0].Page)
	}
}

func TestFallbackDenseScan(t *testing.T) {
	// no heading anywhere, references recognizable only by density
	doc := makeDoc(
		[]*layout.Block{
			makeBlock(0, common.PageZoneBody, "Ordinary prose without anything special."),
		},
		[]*layout.Block{
			makeBlock(1, common.PageZoneBody,
				"[1] A. Author et al., Phys. Lett. B 100, 10 (1981).",
				"[2] B. Author, Nucl. Phys. B 200, 20 (1982).",
				"[3] C. Author, Phys. Rev. D 30, 30 (1984).",
				"[4] D. Author, arXiv:2007.14040.",
			),
		},
	)
	got := Collect(doc, Options{}, zap.NewNop())
	if len(got) != 4 {
		t.Fatalf("Collect() fallback = %d refs, want 4: %+v", len(got), got)
	}
}

func TestTOCPageRejected(t *testing.T) {
	var tocLines []string
	for i := 0; i < 12; i++ {
		tocLines = append(tocLines, "3 Chapter about things . . . . . . . . . . 45")
	}
	doc := makeDoc([]*layout.Block{makeBlock(0, common.PageZoneBody, tocLines...)})
	if got := denseBlockScan(doc); got != nil {
		t.Fatalf("denseBlockScan() accepted a TOC page: %d blocks", len(got))
	}
}

func TestJoinLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"broken page range", []string{"Phys. Lett. B 100, 10-", "12 (1981)"}, "Phys. Lett. B 100, 10-12 (1981)"},
		{"split arxiv category", []string{"see hep ph/0510213 for details"}, "see hep-ph/0510213 for details"},
		{"bracketed year", []string{"Nucl. Phys. B 72 [1974] 461"}, "Nucl. Phys. B 72 1974 461"},
		{"whitespace collapse", []string{"a  b", " c   d "}, "a b c d"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := joinLines(tc.lines); got != tc.want {
				t.Errorf("joinLines(%q) = %q, want %q", tc.lines, got, tc.want)
			}
		})
	}
}
