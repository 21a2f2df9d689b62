// Package extract drives the per-document pipeline: decode, layout, zones,
// collection, tokenization, parsing and optional DOI enrichment.
package extract

import (
	"context"
	"os"

	"go.uber.org/zap"

	"refx/collect"
	"refx/layout"
	"refx/pdf"
	"refx/refs"
	"refx/state"
)

// OCR is the optional external recognizer consulted for text-empty pages
// when the fallback is enabled. Left nil the pages simply stay empty.
var OCR pdf.Recognizer

// processDocument runs the full pipeline over one open document. Per-page
// decode failures degrade to empty pages; the only hard failures are the
// initial open (handled by the caller) and context cancellation.
func processDocument(ctx context.Context, doc *pdf.Document, name string, env *state.LocalEnv, log *zap.Logger) ([]refs.Reference, error) {
	pages := make([][]pdf.Char, 0, doc.NumPages())
	for i := 0; i < doc.NumPages(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chars, err := doc.PageChars(i)
		if err != nil {
			log.Warn("page decode failed", zap.String("file", name), zap.Int("page", i+1), zap.Error(err))
		}
		if pdf.TextEmpty(chars) && env.Cfg.Extraction.OCRFallback {
			chars = append(chars, recoverPage(ctx, name, i, env, log)...)
		}
		pages = append(pages, chars)
	}

	lay := layout.BuildDocument(pages)
	if env.DebugLayout {
		layout.DumpZones(os.Stderr, lay)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(reportEntry(name, "zones.txt"), zoneDump(lay))
		env.Rpt.StoreData(reportEntry(name, "text.txt"), []byte(lay.Text()))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raws := collect.Collect(lay, collect.Options{Footnotes: env.Cfg.Extraction.Footnotes}, log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]refs.Reference, 0, len(raws))
	for _, raw := range raws {
		out = append(out, refs.Parse(raw, env.KB)...)
	}
	log.Info("document processed", zap.String("file", name), zap.Int("pages", doc.NumPages()),
		zap.Int("raw_refs", len(raws)), zap.Int("references", len(out)))
	return out, nil
}

// recoverPage asks the external OCR collaborator for synthetic glyphs.
// Failures are swallowed, the page stays text-empty.
func recoverPage(ctx context.Context, name string, page int, env *state.LocalEnv, log *zap.Logger) []pdf.Char {
	if OCR == nil {
		log.Debug("ocr fallback requested but no recognizer is available", zap.String("file", name), zap.Int("page", page+1))
		return nil
	}
	words, err := OCR.RecognizePage(ctx, name, page)
	if err != nil {
		log.Warn("ocr failed", zap.String("file", name), zap.Int("page", page+1), zap.Error(err))
		return nil
	}
	conf := env.Cfg.Extraction.OCRConfidence
	if conf <= 0 {
		conf = pdf.DefaultOCRConfidence
	}
	return pdf.SynthesizeChars(words, page, conf)
}
