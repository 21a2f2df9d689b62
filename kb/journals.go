package kb

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	minMatchLen      = 3
	volumeWindow     = 14 // bytes after a stop-word match where a volume must show up
	maxJournalTokens = 8
)

// JournalMatch is one recognized journal title with byte offsets into the
// original text.
type JournalMatch struct {
	Abbrev string
	Start  int
	End    int
}

// JournalIndex matches journal titles against text. Titles are indexed under
// a normal form where case, accents and dot/space differences disappear.
type JournalIndex struct {
	names     map[string]string // normalized full name -> canonical abbrev
	stopWords map[string]bool   // normalized single-token matches needing a volume nearby
	maxTokens int
}

var accentFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize lowercases, folds accents, treats dots as spaces and collapses
// runs of whitespace. Idempotent.
func normalize(s string) string {
	if folded, _, err := transform.String(accentFold, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if r == '.' {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Normalize exposes the journal normal form (tested for idempotence).
func Normalize(s string) string { return normalize(s) }

func newJournalIndex(lines []string, stopWords []string) (*JournalIndex, error) {
	idx := &JournalIndex{
		names:     make(map[string]string, len(lines)),
		stopWords: make(map[string]bool, len(stopWords)),
	}
	for _, ln := range lines {
		name, abbrev, err := splitRule(ln)
		if err != nil {
			return nil, err
		}
		key := normalize(name)
		if key == "" {
			continue
		}
		idx.names[key] = abbrev
		if n := len(strings.Fields(key)); n > idx.maxTokens {
			idx.maxTokens = n
		}
	}
	for _, w := range stopWords {
		idx.stopWords[normalize(w)] = true
	}
	if idx.maxTokens == 0 || idx.maxTokens > maxJournalTokens {
		idx.maxTokens = maxJournalTokens
	}
	return idx, nil
}

func (idx *JournalIndex) size() int { return len(idx.names) }

// Extend tries to grow a canonical abbreviation by a section letter, so that
// "Phys. Rev." plus "D" resolves to "Phys. Rev. D" when the KB knows the
// extended title.
func (idx *JournalIndex) Extend(abbrev, letter string) (string, bool) {
	a, ok := idx.names[normalize(abbrev+" "+letter)]
	return a, ok
}

// connectives flag a match embedded in a longer compound title, like
// "Physics" inside "Journal of Physics A".
var connectives = map[string]bool{
	"of": true, "the": true, "in": true, "and": true, "for": true,
	"de": true, "del": true, "della": true, "der": true, "des": true,
	"di": true, "du": true, "la": true, "le": true, "fur": true,
}

type span struct {
	start, end int
	text       string
}

// tokenize splits on whitespace and dots, keeping byte offsets. A terminal
// dot stays out of the token, so "Rev." matches up to the "v".
func tokenize(s string) []span {
	var out []span
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) || r == '.' {
			if start >= 0 {
				out = append(out, span{start, i, s[start:i]})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, span{start, len(s), s[start:]})
	}
	return out
}

// Find returns non-overlapping journal matches, longest first at each
// position, with byte offsets respecting UTF-8 boundaries.
func (idx *JournalIndex) Find(s string) []JournalMatch {
	toks := tokenize(s)
	var out []JournalMatch

	for i := 0; i < len(toks); i++ {
		best := -1
		var bestAbbrev string
		limit := i + idx.maxTokens
		if limit > len(toks) {
			limit = len(toks)
		}
		for j := i; j < limit; j++ {
			key := normalizeTokens(toks[i : j+1])
			abbrev, ok := idx.names[key]
			if !ok {
				continue
			}
			if len(key) < minMatchLen {
				continue
			}
			if !idx.accept(s, toks, i, j, key) {
				continue
			}
			best, bestAbbrev = j, abbrev
		}
		if best >= 0 {
			out = append(out, JournalMatch{Abbrev: bestAbbrev, Start: toks[i].start, End: toks[best].end})
			i = best // skip past the match
		}
	}
	return out
}

func normalizeTokens(toks []span) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.text
	}
	return normalize(strings.Join(parts, " "))
}

// accept applies the boundary and false-positive rules to a candidate match
// covering tokens i..j.
func (idx *JournalIndex) accept(s string, toks []span, i, j int, key string) bool {
	// left neighbor must not be a letter or digit, and the previous word must
	// not be a connective gluing us into a compound title
	if i > 0 {
		prev := toks[i-1]
		if prev.end == toks[i].start { // fused, no separator at all
			return false
		}
		if r := lastRune(s[:toks[i].start]); unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		if connectives[normalize(prev.text)] {
			return false
		}
	}

	// right neighbor: whitespace, punctuation, or a digit when the matched
	// text carries a terminal period
	end := toks[j].end
	if end < len(s) {
		r := firstRune(s[end:])
		switch {
		case unicode.IsSpace(r) || unicode.IsPunct(r) || r == '.':
		case unicode.IsDigit(r):
			if r := lastRune(s[:end]); r != '.' {
				return false
			}
		default:
			return false
		}
	}

	// a lone stop-word only counts when a volume follows shortly
	if idx.stopWords[key] && !volumeFollows(s, end) {
		return false
	}
	return true
}

// volumeFollows looks for a digit run within a short window after the match.
func volumeFollows(s string, from int) bool {
	to := from + volumeWindow
	if to > len(s) {
		to = len(s)
	}
	for _, r := range s[from:to] {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
