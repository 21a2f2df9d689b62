package collect

import (
	"go.uber.org/zap"

	"refx/common"
	"refx/layout"
)

// Options controls collection behavior.
type Options struct {
	Footnotes bool
}

// Collect produces the ordered list of raw references of a document:
// reference-section entries first in page order, then footnotes in page
// order. When no verified heading yields output, the fallback strategies
// take over; the one producing more markers wins.
func Collect(doc *layout.Document, opts Options, log *zap.Logger) []RawReference {
	headings := findHeadings(doc)

	var out []RawReference
	for i, h := range headings {
		var next *RefHeadingLoc
		if i+1 < len(headings) {
			next = &headings[i+1]
		}
		blocks := gatherFromHeading(doc, h, next)
		format := detectFormat(blocks)
		if format == common.MarkerFormatNone && next == nil {
			// heading page may carry no content blocks at all; the format is
			// then decided by what the following pages hold, which gather
			// already pulled in, so nothing more to peek at here
			log.Debug("no marker format after heading", zap.Int("page", h.Page), zap.String("heading", h.Text))
		}
		refs := splitByMarkers(blocks, format, common.RefSourceReferenceSection)
		log.Debug("collected from heading",
			zap.Int("page", h.Page), zap.String("heading", h.Text),
			zap.Stringer("format", format), zap.Int("refs", len(refs)))
		out = append(out, refs...)
	}

	if len(out) == 0 {
		out = fallbackScan(doc, log)
	}

	if opts.Footnotes {
		notes := collectFootnotes(doc)
		if len(notes) > 0 {
			log.Debug("collected footnotes", zap.Int("refs", len(notes)))
		}
		out = append(out, notes...)
	}
	return out
}

// fallbackScan evaluates the dense-block and trailing strategies in
// parallel and keeps whichever yields more markers; the superscript-pair
// scan only runs when both come up empty.
func fallbackScan(doc *layout.Document, log *zap.Logger) []RawReference {
	dense := denseBlockScan(doc)
	trailing := trailingScan(doc)

	denseRefs := splitByMarkers(dense, detectFormat(dense), common.RefSourceReferenceSection)
	trailingRefs := splitByMarkers(trailing, detectFormat(trailing), common.RefSourceReferenceSection)

	best := denseRefs
	strategy := "dense-block"
	if len(trailingRefs) > len(denseRefs) {
		best, strategy = trailingRefs, "trailing"
	}
	if len(best) == 0 {
		sup := superscriptPairScan(doc)
		best = splitByMarkers(sup, common.MarkerFormatSuperscript, common.RefSourceReferenceSection)
		strategy = "superscript-pair"
	}
	if len(best) > 0 {
		log.Debug("fallback strategy used", zap.String("strategy", strategy), zap.Int("refs", len(best)))
	}
	return best
}
