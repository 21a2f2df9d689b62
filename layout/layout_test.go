package layout

import (
	"strings"
	"testing"

	"refx/common"
	"refx/pdf"
)

// typeset appends chars of text starting at x on the given baseline,
// advancing 5pt per glyph with 5pt word gaps.
func typeset(chars []pdf.Char, text string, x, y, size float64, page int) []pdf.Char {
	for _, r := range text {
		if r == ' ' {
			x += 5
			continue
		}
		chars = append(chars, pdf.Char{R: r, X: x, Y: y, W: 5, H: size, FontSize: size, Page: page})
		x += 5
	}
	return chars
}

func TestBuildWords(t *testing.T) {
	var chars []pdf.Char
	chars = typeset(chars, "alpha beta", 50, 700, 10, 0)

	words := buildWords(chars)
	if len(words) != 2 {
		t.Fatalf("buildWords() = %d words %+v, want 2", len(words), words)
	}
	if words[0].Text != "alpha" || words[1].Text != "beta" {
		t.Errorf("words = %q, %q", words[0].Text, words[1].Text)
	}
}

func TestBuildWordsFontJump(t *testing.T) {
	// same baseline, no gap, font size doubles: must split
	chars := typeset(nil, "small", 50, 700, 10, 0)
	chars = typeset(chars, "BIG", 75, 700, 20, 0)

	words := buildWords(chars)
	if len(words) != 2 {
		t.Fatalf("buildWords() = %d words %+v, want 2", len(words), words)
	}
}

func TestBuildWordsSuperscriptJoins(t *testing.T) {
	// a raised small digit right after a word stays attached
	chars := typeset(nil, "mass", 50, 700, 10, 0)
	chars = append(chars, pdf.Char{R: '2', X: 70, Y: 703, W: 3, H: 6, FontSize: 6, Page: 0})

	words := buildWords(chars)
	if len(words) != 1 {
		t.Fatalf("buildWords() = %d words %+v, want 1", len(words), words)
	}
	if words[0].Text != "mass2" {
		t.Errorf("word = %q", words[0].Text)
	}
}

func TestBuildLinesOrderAndSuperscript(t *testing.T) {
	var chars []pdf.Char
	chars = typeset(chars, "second line", 50, 688, 10, 0)
	chars = typeset(chars, "first line", 50, 700, 10, 0)
	// standalone superscript marker at the start of the second line
	chars = append(chars, pdf.Char{R: '7', X: 45, Y: 691, W: 3, H: 6, FontSize: 6, Page: 0})

	lines := buildLines(buildWords(chars))
	if len(lines) != 2 {
		t.Fatalf("buildLines() = %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0].Text(), "first") {
		t.Errorf("line order wrong: %q before %q", lines[0].Text(), lines[1].Text())
	}
	ws := lines[1].Words
	if len(ws) == 0 || ws[0].Text != "7" || !ws[0].Superscript {
		t.Errorf("superscript marker not flagged: %+v", ws)
	}
}

func TestTwoColumnPage(t *testing.T) {
	var chars []pdf.Char
	for i := 0; i < 20; i++ {
		y := 700 - float64(i)*12
		chars = typeset(chars, "left column text here", 50, y, 10, 0)
		chars = typeset(chars, "right column text here", 320, y, 10, 0)
	}

	p := BuildPage(chars, 0)
	if len(p.Blocks) < 2 {
		t.Fatalf("BuildPage() = %d blocks, want at least 2", len(p.Blocks))
	}
	sawRight := false
	for _, b := range p.Blocks {
		switch b.Column {
		case common.ColumnTagRight:
			sawRight = true
		case common.ColumnTagLeft:
			if sawRight {
				t.Fatal("left-column block after right-column block")
			}
		case common.ColumnTagSingle:
			t.Fatal("column split not detected")
		}
	}
	if !sawRight {
		t.Fatal("no right-column blocks")
	}
}

func TestSingleColumnPage(t *testing.T) {
	var chars []pdf.Char
	for i := 0; i < 10; i++ {
		chars = typeset(chars, "a single column of text spanning the width", 50, 700-float64(i)*12, 10, 0)
	}
	p := BuildPage(chars, 0)
	for _, b := range p.Blocks {
		if b.Column != common.ColumnTagSingle {
			t.Fatalf("single-column page split: %+v", b.Column)
		}
	}
}

func TestTextEmptyPage(t *testing.T) {
	p := BuildPage([]pdf.Char{{R: 'a', X: 1, Y: 1, W: 5, H: 10, FontSize: 10}}, 3)
	if !p.TextEmpty {
		t.Error("page with a single glyph should be text-empty")
	}
}

func TestIsRefHeadingText(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"References", true},
		{"REFERENCES", true},
		{"Bibliography", true},
		{"Literature Cited", true},
		{"Notes and references", true},
		{"References and notes", true},
		{"7. References", true},
		{"References:", true},
		{"References (1-50)", true},
		{"References . . . . . . . . . . 45", false}, // TOC entry
		{"References 45", false},                     // trailing page number
		{"18References", false},                      // fused running header
		{"Reference frames", false},
		{"Preferences", false},
	}
	for _, tc := range tests {
		if got := IsRefHeadingText(tc.text); got != tc.want {
			t.Errorf("IsRefHeadingText(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestZoneClassification(t *testing.T) {
	var chars []pdf.Char
	chars = typeset(chars, "Running Title of the Paper", 50, 770, 10, 0)
	for i := 0; i < 20; i++ {
		chars = typeset(chars, "body text line with some words in it again", 50, 730-float64(i)*12, 10, 0)
	}
	// small-font note at the very bottom, page number below it
	chars = typeset(chars, "1 a footnote in smaller type", 50, 80, 7, 0)
	chars = typeset(chars, "42", 300, 65, 10, 0)

	doc := BuildDocument([][]pdf.Char{chars})
	p := doc.Pages[0]

	var zones []common.PageZone
	for _, b := range p.Blocks {
		zones = append(zones, b.Zone)
	}
	find := func(zone common.PageZone) bool {
		for _, z := range zones {
			if z == zone {
				return true
			}
		}
		return false
	}
	if !find(common.PageZonePageNumber) {
		t.Errorf("no page-number zone in %v", zones)
	}
	if !find(common.PageZoneFootnote) {
		t.Errorf("no footnote zone in %v", zones)
	}
	if !find(common.PageZoneBody) {
		t.Errorf("no body zone in %v", zones)
	}
}
