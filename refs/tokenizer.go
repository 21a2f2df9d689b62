package refs

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"refx/kb"
)

// Recognition order matters: identifiers and KB matches claim their spans
// first, compound numerations next, plain years and numbers last, and
// whatever is left becomes words and punctuation. Claimed spans never
// overlap.
var (
	doiRe = regexp.MustCompile(`\b10\.\d{4,9}/[^\s]+`)

	arxivURLRe      = regexp.MustCompile(`(?i)\barxiv\.org/abs/([a-z\-]+(?:\.[A-Za-z]{2})?/\d{7}|\d{4}\.\d{4,5})(v\d+)?`)
	arxivPrefNewRe  = regexp.MustCompile(`(?i)\barxiv:\s*(\d{4}\.\d{4,5})(v\d+)?(\s*\[[a-zA-Z.\-]+\])?`)
	arxivPrefOldRe  = regexp.MustCompile(`(?i)\barxiv:\s*([a-z\-]+(?:\.[A-Za-z]{2})?/\d{7})(v\d+)?`)
	arxivPrefBareRe = regexp.MustCompile(`(?i)\barxiv:\s*(\d{7})\s*\[([a-z.\-]+)\]`)
	arxivOldRe      = regexp.MustCompile(`\b[a-z]+(?:-[a-z]+)?(?:\.[A-Z]{2})?/\d{7}(?:v\d+)?\b`)
	arxivNewRe      = regexp.MustCompile(`\b\d{4}\.\d{4,5}(?:v\d+)?\b`)

	ibidRe = regexp.MustCompile(`(?i)\b(?:(erratum|addendum)[\s:\-]*)?ibid\b\.?`)

	compoundVYPRe = regexp.MustCompile(`\b(\d{1,4})\((\d{4})\)(\d{1,5})\b`)
	compoundYMRe  = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\((\d{1,3})\)`)
	compoundVIRe  = regexp.MustCompile(`\b(\d{1,4})\((\d{1,4})\)`)
	compoundVPRe  = regexp.MustCompile(`\b(\d{1,4}):(\d{1,5})\b`)
	articleRRe    = regexp.MustCompile(`\b(\d{3,6})\(R\)`)

	pageRangeRe = regexp.MustCompile(`\b(\d{1,6})\s*[-–—]\s*(\d{1,6})\b`)
	letterVolRe = regexp.MustCompile(`\b([A-Z]{1,2}\d{1,4}|\d{1,4}[A-Z])\b`)
	yearRe      = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})([a-z])?\b`)
	numberRe    = regexp.MustCompile(`\b\d{1,6}\b`)

	trailingPunct = ".,;:)]}>\"'"
)

// Tokenize converts one raw reference string into its typed token sequence.
func Tokenize(raw string, k *kb.KB) []Token {
	tz := &tokenizer{raw: raw, claimed: make([]bool, len(raw))}

	tz.claimDOIs()
	tz.claimArXiv()
	for _, m := range k.Reports.Find(raw) {
		tz.claim(Token{Kind: TokReportNum, Start: m.Start, End: m.End, Value: m.Text})
	}
	for _, m := range k.Journals.Find(raw) {
		tz.claim(Token{Kind: TokJournal, Start: m.Start, End: m.End, Value: m.Abbrev})
	}
	for _, m := range k.FindCollaborations(raw) {
		tz.claim(Token{Kind: TokCollab, Start: m.Start, End: m.End, Value: m.Name})
	}
	tz.claimRe(ibidRe, func(m []int) []Token {
		value := ""
		if m[2] >= 0 {
			value = strings.ToLower(raw[m[2]:m[3]])
		}
		return []Token{{Kind: TokIbid, Start: m[0], End: m[1], Value: value}}
	})
	tz.claimCompounds()
	tz.claimRe(pageRangeRe, func(m []int) []Token {
		return []Token{{Kind: TokPageRange, Start: m[0], End: m[1], Value: raw[m[2]:m[3]] + "-" + raw[m[4]:m[5]]}}
	})
	tz.claimRe(yearRe, func(m []int) []Token {
		if !validYear(raw[m[2]:m[3]]) {
			return nil
		}
		return []Token{{Kind: TokYear, Start: m[0], End: m[1], Value: raw[m[2]:m[3]]}}
	})
	tz.claimRe(letterVolRe, func(m []int) []Token {
		return []Token{{Kind: TokVolume, Start: m[0], End: m[1], Value: raw[m[0]:m[1]]}}
	})
	tz.claimRe(numberRe, func(m []int) []Token {
		return []Token{{Kind: TokNumber, Start: m[0], End: m[1], Value: raw[m[0]:m[1]]}}
	})
	tz.residuals()

	sort.SliceStable(tz.tokens, func(i, j int) bool { return tz.tokens[i].Start < tz.tokens[j].Start })
	for i := range tz.tokens {
		t := &tz.tokens[i]
		t.Text = raw[t.Start:t.End]
	}
	return tz.tokens
}

func validYear(s string) bool {
	y, err := strconv.Atoi(s)
	return err == nil && y >= 1800 && y <= time.Now().Year()+1
}

type tokenizer struct {
	raw     string
	claimed []bool
	tokens  []Token
}

func (tz *tokenizer) free(start, end int) bool {
	for i := start; i < end; i++ {
		if tz.claimed[i] {
			return false
		}
	}
	return true
}

func (tz *tokenizer) claim(toks ...Token) bool {
	lo, hi := toks[0].Start, toks[0].End
	for _, t := range toks {
		if t.Start < lo {
			lo = t.Start
		}
		if t.End > hi {
			hi = t.End
		}
	}
	if !tz.free(lo, hi) {
		return false
	}
	for i := lo; i < hi; i++ {
		tz.claimed[i] = true
	}
	tz.tokens = append(tz.tokens, toks...)
	return true
}

// claimRe finds all matches of re in unclaimed text and converts each via
// mk (submatch index slice as returned by FindAllSubmatchIndex). mk may
// return nil to veto.
func (tz *tokenizer) claimRe(re *regexp.Regexp, mk func(m []int) []Token) {
	for _, m := range re.FindAllStringSubmatchIndex(tz.raw, -1) {
		if !tz.free(m[0], m[1]) {
			continue
		}
		if toks := mk(m); toks != nil {
			tz.claim(toks...)
		}
	}
}

func (tz *tokenizer) claimDOIs() {
	tz.claimRe(doiRe, func(m []int) []Token {
		end := m[1]
		for end > m[0] && strings.ContainsRune(trailingPunct, rune(tz.raw[end-1])) {
			end--
		}
		return []Token{{Kind: TokDOI, Start: m[0], End: end, Value: tz.raw[m[0]:end]}}
	})
}

func (tz *tokenizer) claimArXiv() {
	tz.claimRe(arxivURLRe, func(m []int) []Token {
		id := tz.raw[m[2]:m[3]]
		if m[4] >= 0 {
			id += strings.ToLower(tz.raw[m[4]:m[5]])
		}
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = strings.ToLower(id[:i]) + id[i:]
		}
		return []Token{{Kind: TokArXiv, Start: m[0], End: m[1], Value: id}}
	})
	tz.claimRe(arxivPrefNewRe, func(m []int) []Token {
		id := tz.raw[m[2]:m[3]]
		if m[4] >= 0 {
			id += strings.ToLower(tz.raw[m[4]:m[5]])
		}
		return []Token{{Kind: TokArXiv, Start: m[0], End: m[1], Value: id}}
	})
	tz.claimRe(arxivPrefOldRe, func(m []int) []Token {
		id := strings.ToLower(tz.raw[m[2]:m[3]])
		if m[4] >= 0 {
			id += strings.ToLower(tz.raw[m[4]:m[5]])
		}
		return []Token{{Kind: TokArXiv, Start: m[0], End: m[1], Value: id}}
	})
	// colon-prefixed bare number with the category in brackets:
	// "arXiv:0510213 [hep-ph]" means hep-ph/0510213
	tz.claimRe(arxivPrefBareRe, func(m []int) []Token {
		cat := strings.ToLower(tz.raw[m[4]:m[5]])
		return []Token{{Kind: TokArXiv, Start: m[0], End: m[1], Value: cat + "/" + tz.raw[m[2]:m[3]]}}
	})
	tz.claimRe(arxivOldRe, func(m []int) []Token {
		return []Token{{Kind: TokArXiv, Start: m[0], End: m[1], Value: strings.ToLower(tz.raw[m[0]:m[1]])}}
	})
	tz.claimRe(arxivNewRe, func(m []int) []Token {
		return []Token{{Kind: TokArXiv, Start: m[0], End: m[1], Value: tz.raw[m[0]:m[1]]}}
	})
}

func (tz *tokenizer) claimCompounds() {
	raw := tz.raw
	tz.claimRe(articleRRe, func(m []int) []Token {
		return []Token{{Kind: TokPageRange, Start: m[0], End: m[1], Value: raw[m[2]:m[3]]}}
	})
	tz.claimRe(compoundVYPRe, func(m []int) []Token {
		if !validYear(raw[m[4]:m[5]]) {
			return nil
		}
		return []Token{
			{Kind: TokVolume, Start: m[2], End: m[3], Value: raw[m[2]:m[3]]},
			{Kind: TokYear, Start: m[4], End: m[5], Value: raw[m[4]:m[5]]},
			{Kind: TokPageRange, Start: m[6], End: m[7], Value: raw[m[6]:m[7]]},
		}
	})
	tz.claimRe(compoundYMRe, func(m []int) []Token {
		if !validYear(raw[m[2]:m[3]]) {
			return nil
		}
		return []Token{
			{Kind: TokYear, Start: m[2], End: m[3], Value: raw[m[2]:m[3]]},
			{Kind: TokNumber, Start: m[4], End: m[5], Value: raw[m[4]:m[5]]},
		}
	})
	tz.claimRe(compoundVIRe, func(m []int) []Token {
		// volume with issue, issue discarded
		return []Token{{Kind: TokVolume, Start: m[2], End: m[3], Value: raw[m[2]:m[3]]}}
	})
	tz.claimRe(compoundVPRe, func(m []int) []Token {
		return []Token{
			{Kind: TokVolume, Start: m[2], End: m[3], Value: raw[m[2]:m[3]]},
			{Kind: TokPageRange, Start: m[4], End: m[5], Value: raw[m[4]:m[5]]},
		}
	})
}

// residuals converts unclaimed spans into Word and Punct tokens. Words keep
// internal apostrophes and hyphens; every other symbol is a one-rune Punct.
func (tz *tokenizer) residuals() {
	raw := tz.raw
	i := 0
	for i < len(raw) {
		if tz.claimed[i] {
			i++
			continue
		}
		r, sz := utf8.DecodeRuneInString(raw[i:])
		if unicode.IsSpace(r) {
			i += sz
			continue
		}
		if isWordRune(r) {
			start := i
			for i < len(raw) && !tz.claimed[i] {
				r, sz := utf8.DecodeRuneInString(raw[i:])
				if !isWordRune(r) && !isInnerRune(r, raw, i, start) {
					break
				}
				i += sz
			}
			tz.claim(Token{Kind: TokWord, Start: start, End: i})
			continue
		}
		tz.claim(Token{Kind: TokPunct, Start: i, End: i + sz})
		i += sz
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isInnerRune allows apostrophes and hyphens inside a word but not at its
// edges.
func isInnerRune(r rune, s string, i, start int) bool {
	if r != '\'' && r != '’' && r != '-' {
		return false
	}
	if i == start || i+1 >= len(s) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(s[i+1:])
	return isWordRune(next)
}
