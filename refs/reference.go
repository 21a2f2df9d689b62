// Package refs turns raw reference strings into typed token sequences and
// assigns semantic roles to produce the final structured records.
package refs

import "refx/common"

// Reference is the final structured citation. Field names are part of the
// output schema; unknown fields are never emitted.
type Reference struct {
	RawRef        string           `json:"raw_ref"`
	LineMarker    string           `json:"linemarker,omitempty"`
	Authors       string           `json:"authors,omitempty"`
	Title         string           `json:"title,omitempty"`
	JournalTitle  string           `json:"journal_title,omitempty"`
	JournalVolume string           `json:"journal_volume,omitempty"`
	JournalYear   string           `json:"journal_year,omitempty"`
	JournalPage   string           `json:"journal_page,omitempty"`
	DOI           string           `json:"doi,omitempty"`
	ArxivEprint   string           `json:"arxiv_eprint,omitempty"`
	ReportNumber  string           `json:"report_number,omitempty"`
	Collaboration string           `json:"collaboration,omitempty"`
	Source        common.RefSource `json:"source"`
}

// identified reports whether the record carries at least one identifying
// field. Records with none and a very short raw string are dropped.
func (r *Reference) identified() bool {
	return r.Authors != "" || r.JournalTitle != "" || r.ArxivEprint != "" ||
		r.DOI != "" || r.ReportNumber != ""
}
