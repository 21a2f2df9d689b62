package collect

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"refx/common"
	"refx/layout"
)

var (
	bracketMarkerRe = regexp.MustCompile(`^\s*\[(\d{1,4})\]\s*`)
	parenMarkerRe   = regexp.MustCompile(`^\s*\((\d{1,4})\)\s*`)
	// decimal protection: "0.01" must not read as marker "0."
	dottedMarkerRe = regexp.MustCompile(`^\s*(\d{1,3})\.(?:\s+|$)`)

	authorYearBracketRe = regexp.MustCompile(`^\s*\[([A-Za-z][A-Za-z+]{1,10}\d{2}[a-z]?)\]\s*`)
	authorYearLabelRe   = regexp.MustCompile(`^\s*([A-Z][a-z]+(?:\s+et\s+al\.?)?,?\s+\(?(?:1[89]\d{2}|20\d{2})[a-z]?\)?:)\s*`)

	// citation content indicators
	yearHintRe   = regexp.MustCompile(`\((?:1[89]\d{2}|20\d{2})\)|\b(?:1[89]\d{2}|20\d{2})\b`)
	volumeHintRe = regexp.MustCompile(`\b\d{1,4}\b`)
	arxivHintRe  = regexp.MustCompile(`(?i)arxiv|\b[a-z]+-[a-z]+/\d{7}\b|\b\d{4}\.\d{4,5}\b`)
	doiHintRe    = regexp.MustCompile(`\b10\.\d{4,9}/`)
	etAlHintRe   = regexp.MustCompile(`(?i)\bet\.?\s*al\b`)

	tocEntryRe = regexp.MustCompile(`(?:\.[ \t]*){4,}\d{1,4}\s*$|^\d{1,2}(?:\.\d{1,2})*\s+[A-Z].{0,60}\d{1,4}\s*$`)
)

const (
	markerScore    = 2
	contentScore   = 1
	acceptScore    = 4
	citationScore2 = 2
)

// marker is one detected line marker.
type marker struct {
	text  string // normalized marker text without decoration
	value int    // numeric value, -1 for author-year labels
	rest  string // line remainder after the marker
}

// markerAt matches one format at the start of a line.
func markerAt(ln *layout.Line, format common.MarkerFormat) (marker, bool) {
	text := ln.Text()
	switch format {
	case common.MarkerFormatBracket:
		if m := bracketMarkerRe.FindStringSubmatch(text); m != nil {
			return numericMarker(m[1], text), true
		}
	case common.MarkerFormatParen:
		if m := parenMarkerRe.FindStringSubmatch(text); m != nil {
			return numericMarker(m[1], text), true
		}
	case common.MarkerFormatDotted:
		if m := dottedMarkerRe.FindStringSubmatch(text); m != nil {
			return numericMarker(m[1], text), true
		}
	case common.MarkerFormatAuthorYear:
		if m := authorYearBracketRe.FindStringSubmatch(text); m != nil {
			return marker{text: m[1], value: -1, rest: text[len(m[0]):]}, true
		}
		if m := authorYearLabelRe.FindStringSubmatch(text); m != nil {
			return marker{text: strings.TrimRight(m[1], ":"), value: -1, rest: text[len(m[0]):]}, true
		}
	case common.MarkerFormatSuperscript:
		if len(ln.Words) > 0 && ln.Words[0].Superscript && allDigitsWord(ln.Words[0].Text) {
			v, _ := strconv.Atoi(ln.Words[0].Text)
			rest := strings.TrimSpace(strings.TrimPrefix(text, ln.Words[0].Text))
			return marker{text: ln.Words[0].Text, value: v, rest: rest}, true
		}
	}
	return marker{}, false
}

func numericMarker(num, line string) marker {
	v, err := strconv.Atoi(num)
	if err != nil {
		v = -1
	}
	// remainder: strip everything up to and including the marker decoration
	rest := line
	if i := strings.Index(line, num); i >= 0 {
		rest = line[i+len(num):]
		rest = strings.TrimLeft(rest, "]).")
		rest = strings.TrimSpace(rest)
	}
	return marker{text: num, value: v, rest: rest}
}

func allDigitsWord(s string) bool {
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

// anyMarker tries all formats in priority order.
func anyMarker(ln *layout.Line) (marker, common.MarkerFormat, bool) {
	for _, f := range []common.MarkerFormat{
		common.MarkerFormatBracket,
		common.MarkerFormatParen,
		common.MarkerFormatDotted,
		common.MarkerFormatAuthorYear,
		common.MarkerFormatSuperscript,
	} {
		if m, ok := markerAt(ln, f); ok {
			return m, f, true
		}
	}
	return marker{}, common.MarkerFormatNone, false
}

// detectFormat picks the marker format yielding the most distinct markers
// over a block run.
func detectFormat(blocks []*layout.Block) common.MarkerFormat {
	counts := make(map[common.MarkerFormat]map[string]bool)
	for _, b := range blocks {
		for i := range b.Lines {
			for _, f := range []common.MarkerFormat{
				common.MarkerFormatBracket,
				common.MarkerFormatParen,
				common.MarkerFormatDotted,
				common.MarkerFormatAuthorYear,
				common.MarkerFormatSuperscript,
			} {
				if m, ok := markerAt(&b.Lines[i], f); ok {
					if counts[f] == nil {
						counts[f] = make(map[string]bool)
					}
					counts[f][m.text] = true
				}
			}
		}
	}
	best, bestN := common.MarkerFormatNone, 0
	for f, set := range counts {
		if len(set) > bestN || (len(set) == bestN && f < best) {
			best, bestN = f, len(set)
		}
	}
	if bestN == 0 {
		return common.MarkerFormatNone
	}
	return best
}

// lineCitationScore rates one line: a marker is worth 2, each content
// indicator (year plus volume, arXiv id, DOI, "et al.") 1.
func lineCitationScore(ln *layout.Line) int {
	s := 0
	if _, _, ok := anyMarker(ln); ok {
		s += markerScore
	}
	text := ln.Text()
	if yearHintRe.MatchString(text) && volumeHintRe.MatchString(text) {
		s += contentScore
	}
	if arxivHintRe.MatchString(text) {
		s += contentScore
	}
	if doiHintRe.MatchString(text) {
		s += contentScore
	}
	if etAlHintRe.MatchString(text) {
		s += contentScore
	}
	return s
}

func isCitationLine(ln *layout.Line) bool {
	return lineCitationScore(ln) >= citationScore2
}

func isTOCLine(text string) bool {
	return tocEntryRe.MatchString(strings.TrimSpace(text))
}
