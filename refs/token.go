package refs

import "fmt"

// TokenKind discriminates the token sum type. The parser switches over it
// exhaustively; keep the zero value as Word so residuals need no special
// casing.
type TokenKind int

const (
	TokWord TokenKind = iota
	TokPunct
	TokYear      // Value: 4-digit year, astronomy suffix stripped
	TokVolume    // Value: digit run, possibly letter-prefixed ("D60", "249B")
	TokPageRange // Value: "N" or "N-M", (R) suffix stripped
	TokNumber    // bare digit run, role decided positionally by the parser
	TokDOI       // Value: the DOI
	TokArXiv     // Value: canonical eprint id
	TokJournal   // Value: canonical abbreviation
	TokIbid      // Value: "", "erratum" or "addendum"
	TokReportNum // Value: normalized report number
	TokCollab    // Value: canonical collaboration name
)

var tokenKindNames = map[TokenKind]string{
	TokWord:      "Word",
	TokPunct:     "Punct",
	TokYear:      "Year",
	TokVolume:    "Volume",
	TokPageRange: "PageRange",
	TokNumber:    "Number",
	TokDOI:       "DOI",
	TokArXiv:     "ArXivId",
	TokJournal:   "JournalName",
	TokIbid:      "Ibid",
	TokReportNum: "ReportNumber",
	TokCollab:    "Collaboration",
}

func (k TokenKind) String() string {
	if n, ok := tokenKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// Token is one typed element of a raw reference. Start/End are byte offsets
// of the original substring so raw text survives serialization untouched.
type Token struct {
	Kind       TokenKind
	Text       string // raw[Start:End]
	Start, End int
	Value      string // normalized semantic value, empty for Word/Punct
}
