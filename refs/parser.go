package refs

import (
	"regexp"
	"strings"
	"unicode"

	"refx/collect"
	"refx/kb"
)

const (
	minRawLen      = 15  // shorter unidentified records are dropped
	authorYearBlob = 200 // below this a blob is never label-split
)

// Parse turns one raw reference into zero or more structured records. A
// single raw string may produce a primary record plus sub-references
// (semicolon parts, ibid/erratum clauses).
func Parse(raw collect.RawReference, k *kb.KB) []Reference {
	var out []Reference
	for _, piece := range splitAuthorYearBlob(raw.Text) {
		out = append(out, parsePiece(raw, piece, k)...)
	}

	kept := out[:0]
	for _, r := range out {
		if !r.identified() && len(r.RawRef) < minRawLen {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

var authorYearLabelRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+(?:et\s+al\.?|and\s+[A-Z][a-z]+))?,?\s+\(?(?:1[89]\d{2}|20\d{2})[a-z]?\)?:`)

// splitAuthorYearBlob cuts a long run of author-year labelled citations into
// per-label pieces. Short blobs and blobs with fewer than two labels pass
// through whole.
func splitAuthorYearBlob(text string) []string {
	if len(text) < authorYearBlob {
		return []string{text}
	}
	locs := authorYearLabelRe.FindAllStringIndex(text, -1)
	if len(locs) < 2 {
		return []string{text}
	}
	var out []string
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		piece := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text[loc[0]:end]), ";,"))
		if piece != "" {
			out = append(out, piece)
		}
	}
	if len(out) == 0 {
		return []string{text}
	}
	return out
}

func parsePiece(raw collect.RawReference, text string, k *kb.KB) []Reference {
	toks := Tokenize(text, k)
	clauses := splitClauses(toks, text)

	var out []Reference
	var primaryJournal string
	for _, cl := range clauses {
		ref := parseClause(cl, text, raw, primaryJournal, k)
		if ref.JournalTitle != "" && primaryJournal == "" {
			primaryJournal = ref.JournalTitle
		}
		out = append(out, ref)
	}
	return out
}

type clause struct {
	toks []Token
	ibid bool
}

// splitClauses cuts the token stream at semicolons. The split happens only
// when at least two parts carry their own citation markers (year, arXiv id or
// DOI); markerless parts stay glued to their predecessor. A part whose first
// non-word token is an ibid marker becomes a sub-reference; an ibid marker
// that does not follow such a semicolon cut stays inside its clause.
func splitClauses(toks []Token, text string) []clause {
	var parts [][]Token
	start := 0
	for i, t := range toks {
		if t.Kind == TokPunct && t.Text == ";" {
			parts = append(parts, toks[start:i])
			start = i + 1
		}
	}
	parts = append(parts, toks[start:])

	if len(parts) > 1 {
		marked := 0
		for _, p := range parts {
			if hasCitationMarker(p) {
				marked++
			}
		}
		if marked < 2 {
			parts = [][]Token{toks}
		} else {
			// glue markerless tails ("and references therein") backward
			var merged [][]Token
			for _, p := range parts {
				if !hasCitationMarker(p) && len(merged) > 0 {
					merged[len(merged)-1] = append(merged[len(merged)-1], p...)
					continue
				}
				merged = append(merged, p)
			}
			parts = merged
		}
	}

	out := make([]clause, 0, len(parts))
	for _, p := range parts {
		cl := clause{toks: p}
		for _, t := range p {
			switch t.Kind {
			case TokIbid:
				cl.ibid = true
			case TokWord, TokPunct:
				continue
			}
			break
		}
		out = append(out, cl)
	}
	return out
}

func hasCitationMarker(toks []Token) bool {
	for _, t := range toks {
		switch t.Kind {
		case TokYear, TokArXiv, TokDOI:
			return true
		}
	}
	return false
}

// parseClause assigns semantic roles: AUTHORS -> TITLE? -> JOURNAL -> VOL ->
// PAGE -> YEAR -> TAIL, with DOI/arXiv/report numbers attached wherever they
// occur. Parsing never fails; absent fields stay empty.
func parseClause(cl clause, text string, raw collect.RawReference, inheritedJournal string, k *kb.KB) Reference {
	ref := Reference{
		RawRef:     strings.TrimSpace(raw.Text),
		LineMarker: raw.Marker,
		Source:     raw.Source,
	}
	toks := cl.toks
	if len(toks) == 0 {
		return ref
	}

	next := 0
	if cl.ibid {
		if inheritedJournal != "" {
			ref.JournalTitle = inheritedJournal
		}
		// skip everything up to and including the ibid marker
		for i, t := range toks {
			if t.Kind == TokIbid {
				next = i + 1
				break
			}
		}
	} else {
		authorsEnd := authorBoundary(toks)
		if authors := extractAuthors(toks[:authorsEnd], text, &ref); authors != "" {
			ref.Authors = authors
		}
		next = authorsEnd
		if title, after := extractTitle(toks[next:], text); title != "" {
			ref.Title = title
			next += after
		}
	}

	assignNumeration(toks[next:], &ref, cl.ibid, k)
	return ref
}

// authorBoundary returns the index of the first strong token that cannot be
// part of the author run.
func authorBoundary(toks []Token) int {
	for i, t := range toks {
		switch t.Kind {
		case TokYear, TokJournal, TokArXiv, TokDOI, TokReportNum, TokIbid, TokPageRange, TokVolume:
			return i
		case TokPunct:
			if isQuote(t.Text) {
				return i
			}
		}
	}
	return len(toks)
}

func isQuote(s string) bool {
	switch s {
	case `"`, "“", "”", "‘", "’", "«", "»":
		return true
	}
	return false
}

// extractAuthors validates and cleans the leading token run. A collaboration
// mention is attached to the record and removed from the author string.
func extractAuthors(toks []Token, text string, ref *Reference) string {
	if len(toks) == 0 {
		return ""
	}

	// leading "CMS Collaboration," style run carries no personal names
	var rest []Token
	for _, t := range toks {
		if t.Kind == TokCollab {
			if ref.Collaboration == "" {
				ref.Collaboration = t.Value
			}
			continue
		}
		if t.Kind == TokWord && strings.EqualFold(t.Text, "collaboration") {
			continue
		}
		rest = append(rest, t)
	}
	toks = rest
	if len(toks) == 0 {
		return ""
	}
	if !authorish(toks) {
		return ""
	}

	s := strings.TrimSpace(text[toks[0].Start:toks[len(toks)-1].End])
	s = strings.TrimRight(s, " \t,;:")
	return s
}

// authorish reports whether a token run looks like a name list: initials,
// "et al.", surname-comma patterns or explicit connectors.
func authorish(toks []Token) bool {
	words := 0
	for i, t := range toks {
		if t.Kind == TokPunct && t.Text == "&" {
			return true
		}
		if t.Kind != TokWord {
			continue
		}
		words++
		txt := t.Text
		if strings.EqualFold(txt, "et") || strings.EqualFold(txt, "al") {
			return true
		}
		// single-letter initial followed by a period
		if len([]rune(txt)) == 1 && unicode.IsUpper([]rune(txt)[0]) &&
			i+1 < len(toks) && toks[i+1].Kind == TokPunct && toks[i+1].Text == "." {
			return true
		}
		// Surname, I. or Surname and Surname
		if strings.EqualFold(txt, "and") && words > 1 {
			return true
		}
	}
	// a lone capitalized word of three or more letters is accepted too, the
	// numeration check downstream keeps noise out
	if words == 1 && toks[0].Kind == TokWord {
		r := []rune(toks[0].Text)
		return len(r) >= 3 && unicode.IsUpper(r[0])
	}
	return false
}

// extractTitle returns a quoted title right after the author run and the
// number of tokens consumed, or falls back to a word run when it is followed
// by a journal name.
func extractTitle(toks []Token, text string) (string, int) {
	// skip leading separators
	i := 0
	for i < len(toks) && toks[i].Kind == TokPunct && !isQuote(toks[i].Text) {
		i++
	}
	if i < len(toks) && toks[i].Kind == TokPunct && isQuote(toks[i].Text) {
		for j := i + 1; j < len(toks); j++ {
			if toks[j].Kind == TokPunct && isQuote(toks[j].Text) {
				title := strings.TrimSpace(text[toks[i].End:toks[j].Start])
				title = strings.TrimRight(title, " \t,.;")
				return title, j + 1
			}
		}
		return "", 0
	}

	// unquoted: a run of at least three words directly before the journal
	run := 0
	for j := i; j < len(toks); j++ {
		switch toks[j].Kind {
		case TokWord:
			run++
		case TokPunct:
			if toks[j].Text == "." || toks[j].Text == "-" {
				continue
			}
			return "", 0
		case TokJournal:
			if run >= 3 {
				title := strings.TrimSpace(text[toks[i].Start:toks[j].Start])
				title = strings.TrimRight(title, " \t,.;")
				return title, j
			}
			return "", 0
		default:
			return "", 0
		}
	}
	return "", 0
}

// assignNumeration walks the remaining tokens and fills journal, volume,
// page and year plus the identifier tail.
func assignNumeration(toks []Token, ref *Reference, subRef bool, k *kb.KB) {
	var prevKind TokenKind = -1
	var prevEnd int

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Kind {
		case TokJournal:
			if ref.JournalTitle == "" {
				ref.JournalTitle = t.Value
				// section letter split off the title: "Phys. Rev. D, 60" or
				// "Phys. Rev. D 60" with the D matched separately
				if j, letter := nextLetterWord(toks, i+1); j >= 0 {
					if extended, ok := k.Journals.Extend(t.Value, letter); ok {
						ref.JournalTitle = extended
						i = j
					}
				}
			}
		case TokVolume:
			if ref.JournalTitle != "" && ref.JournalVolume == "" && adjacentToJournal(toks, i) {
				ref.JournalVolume = t.Value
			}
		case TokNumber:
			switch {
			case prevKind == TokYear && t.Start-prevEnd <= 1:
				// YYYY(MM): the month-like part is the volume only for
				// special journals, otherwise it is an issue and drops
				if ref.JournalTitle != "" && k.IsSpecialJournal(ref.JournalTitle) && ref.JournalVolume == "" {
					ref.JournalVolume = t.Value
				}
			case ref.JournalTitle != "" && ref.JournalVolume == "":
				ref.JournalVolume = t.Value
			case ref.JournalVolume != "" && ref.JournalPage == "":
				ref.JournalPage = t.Value
			}
		case TokPageRange:
			if ref.JournalPage == "" {
				ref.JournalPage = t.Value
			}
		case TokYear:
			if ref.JournalYear == "" {
				ref.JournalYear = t.Value
			}
		case TokDOI:
			if ref.DOI == "" {
				ref.DOI = t.Value
			}
		case TokArXiv:
			if ref.ArxivEprint == "" {
				ref.ArxivEprint = t.Value
			}
		case TokReportNum:
			if ref.ReportNumber == "" {
				ref.ReportNumber = t.Value
			}
		case TokCollab:
			if ref.Collaboration == "" {
				ref.Collaboration = t.Value
			}
		case TokWord:
			// a sub-reference repeating the section letter of the inherited
			// title ("ibid. D 81") consumes it silently
			if subRef && ref.JournalTitle != "" && isSectionLetter(t.Text, ref.JournalTitle) {
				continue
			}
		}
		prevKind, prevEnd = t.Kind, t.End
	}
}

// nextLetterWord returns the first non-punctuation token when it is a single
// capital letter word, skipping at most three punctuation tokens.
func nextLetterWord(toks []Token, from int) (int, string) {
	seen := 0
	for j := from; j < len(toks) && seen < 3; j++ {
		t := toks[j]
		if t.Kind == TokPunct {
			seen++
			continue
		}
		if t.Kind == TokWord {
			r := []rune(t.Text)
			if len(r) == 1 && unicode.IsUpper(r[0]) {
				return j, t.Text
			}
		}
		return -1, ""
	}
	return -1, ""
}

// adjacentToJournal accepts a letter-prefixed volume only when nothing but
// punctuation and single letters separate it from the journal name.
func adjacentToJournal(toks []Token, i int) bool {
	steps := 0
	for j := i - 1; j >= 0 && steps < 4; j-- {
		switch toks[j].Kind {
		case TokJournal:
			return true
		case TokPunct:
			steps++
			continue
		case TokWord:
			if len([]rune(toks[j].Text)) == 1 {
				steps++
				continue
			}
			return false
		default:
			return false
		}
	}
	return false
}

func isSectionLetter(word, journal string) bool {
	if len([]rune(word)) != 1 || !unicode.IsUpper([]rune(word)[0]) {
		return false
	}
	fields := strings.Fields(strings.ReplaceAll(journal, ".", " "))
	return len(fields) > 0 && strings.EqualFold(fields[len(fields)-1], word)
}
