package layout

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"refx/common"
)

const (
	headerBandShare   = 0.08
	footerBandShare   = 0.08
	footnoteBandShare = 0.30
	footnoteFontRatio = 0.9
)

var (
	headingRe = regexp.MustCompile(`(?i)^(?:\d{1,2}\.\s*)?(?:references(?:\s+and\s+notes)?|bibliography|literature\s+cited|notes\s+and\s+references)\s*(?::|\(\d+\s*[-–]\s*\d+\))?$`)

	dotLeaderRe     = regexp.MustCompile(`(?:\.[ \t]*){4,}`)
	trailingPageRe  = regexp.MustCompile(`[^)\d]\d{2,}$`)
	numericPrefixRe = regexp.MustCompile(`^\d{2,}[^.\s]`)
)

// IsRefHeadingText reports whether text looks like a reference-section
// heading: the heading words, an optional section number prefix and an
// optional colon or range suffix. Dot-leaders (TOC entries), trailing page
// numbers and fused numeric prefixes (running headers) are rejected.
func IsRefHeadingText(text string) bool {
	t := strings.TrimSpace(text)
	if dotLeaderRe.MatchString(t) || trailingPageRe.MatchString(t) || numericPrefixRe.MatchString(t) {
		return false
	}
	return headingRe.MatchString(t)
}

func classifyZones(doc *Document) {
	for _, p := range doc.Pages {
		classifyPage(p, doc.BodyFont)
	}
}

func classifyPage(p *Page, bodyFont float64) {
	height := p.Top - p.Bottom
	if height <= 0 {
		return
	}
	headerY := p.Top - headerBandShare*height
	footerY := p.Bottom + footerBandShare*height
	footnoteY := p.Bottom + footnoteBandShare*height

	for _, b := range p.Blocks {
		switch {
		case b.LineCount() == 1 && allDigits(b.Text()) && (b.Top >= headerY || b.Top <= footerY):
			b.Zone = common.PageZonePageNumber
		case b.LineCount() == 1 && IsRefHeadingText(b.Text()) && b.Top < headerY:
			b.Zone = common.PageZoneRefHeadingCandidate
		case b.Top >= headerY && b.LineCount() <= 2:
			b.Zone = common.PageZoneHeader
		case b.Top <= footnoteY && bodyFont > 0 && b.MeanFont < footnoteFontRatio*bodyFont:
			b.Zone = common.PageZoneFootnote
		default:
			b.Zone = common.PageZoneBody
		}
	}
}

func allDigits(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// DumpZones writes per-page zone classification, one block per row. Wired to
// the debug-layout flag.
func DumpZones(w io.Writer, doc *Document) {
	for _, p := range doc.Pages {
		fmt.Fprintf(w, "page %d (median font %.1f, body font %.1f):\n", p.Index+1, p.MedianFont, doc.BodyFont)
		if p.TextEmpty {
			fmt.Fprintf(w, "  <text-empty>\n")
			continue
		}
		for i, b := range p.Blocks {
			text := b.Text()
			if r := []rune(text); len(r) > 60 {
				text = string(r[:60]) + "…"
			}
			fmt.Fprintf(w, "  %3d %-20s %-6s lines=%-3d font=%.1f %q\n",
				i, b.Zone, b.Column, b.LineCount(), b.MeanFont, text)
		}
	}
}
