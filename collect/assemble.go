package collect

import (
	"regexp"
	"strings"
)

var (
	brokenRangeRe = regexp.MustCompile(`(\d)-\s+(\d)`)
	splitArxivRe  = regexp.MustCompile(`\b(hep|astro|gr|nucl|quant|math|cond|physics|math-ph) (ph|th|ex|lat|qc|mat)(\.[A-Z]{2})?/(\d{7})\b`)
	bracketYearRe = regexp.MustCompile(`\[\s*((?:1[89]|20)\d{2})\s*\]`)
)

// joinLines concatenates collected line texts with single spaces and applies
// the raw-reference cleanups: page ranges broken across lines are rejoined,
// arXiv identifiers with the category split by a space are repaired, and
// brackets enclosing a lone year are stripped.
func joinLines(lines []string) string {
	s := strings.Join(lines, " ")
	s = strings.Join(strings.Fields(s), " ")
	s = brokenRangeRe.ReplaceAllString(s, "$1-$2")
	s = splitArxivRe.ReplaceAllString(s, "$1-$2$3/$4")
	s = bracketYearRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
