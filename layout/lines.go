package layout

import "sort"

// buildLines groups words by baseline within half the median glyph height and
// orders them top to bottom, left to right. Superscript words are flagged
// relative to the dominant font of their line.
func buildLines(words []Word) []Line {
	if len(words) == 0 {
		return nil
	}

	tol := 0.5 * medianFont(words)
	if tol <= 0 {
		tol = 1
	}

	sorted := append([]Word(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Baseline != sorted[j].Baseline {
			return sorted[i].Baseline > sorted[j].Baseline // top first
		}
		return sorted[i].Left < sorted[j].Left
	})

	var lines []Line
	var cur []Word
	curBase := sorted[0].Baseline
	flush := func() {
		if len(cur) == 0 {
			return
		}
		lines = append(lines, makeLine(cur))
		cur = nil
	}
	for _, w := range sorted {
		// superscripts sit above the anchor baseline, so compare against the
		// lowest baseline seen in the group
		if len(cur) > 0 && curBase-w.Baseline > tol {
			flush()
		}
		if len(cur) == 0 || w.Baseline < curBase {
			curBase = w.Baseline
		}
		cur = append(cur, w)
	}
	flush()
	return lines
}

func makeLine(words []Word) Line {
	sort.SliceStable(words, func(i, j int) bool { return words[i].Left < words[j].Left })

	ln := Line{Words: words, Left: words[0].Left, Right: words[0].Right}
	counts := make(map[float64]int)
	base, baseN := 0.0, 0
	for _, w := range words {
		if w.Right > ln.Right {
			ln.Right = w.Right
		}
		counts[w.FontSize]++
	}
	for size, n := range counts {
		if n > baseN || (n == baseN && size > base) {
			base, baseN = size, n
		}
	}
	ln.FontSize = base

	// line baseline: lowest (dominant) baseline among non-superscript words
	ln.Baseline = words[0].Baseline
	for _, w := range words {
		if w.Baseline < ln.Baseline {
			ln.Baseline = w.Baseline
		}
	}
	for i := range ln.Words {
		w := &ln.Words[i]
		w.Superscript = w.FontSize <= supFontFactor*ln.FontSize &&
			w.Baseline > ln.Baseline+supRaiseFactor*ln.FontSize
	}
	return ln
}
