// Package collect locates reference sections and footnote zones and groups
// their blocks into per-reference raw strings.
package collect

import "refx/common"

// RawReference is the pre-parse unit: the concatenated text of one citation,
// its line marker and where it came from.
type RawReference struct {
	Text   string
	Marker string
	Source common.RefSource
	Page   int // page the reference starts on
}

// RefHeadingLoc is a verified reference-section anchor.
type RefHeadingLoc struct {
	Page     int
	Block    int
	Text     string
	Terminal bool // heading section runs to the end of the document
}
