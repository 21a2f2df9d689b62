package layout

import "refx/pdf"

const (
	columnBuckets    = 200
	troughFactor     = 0.3  // of the lower peak
	minColumnShare   = 0.25 // of glyphs each side must hold
	minSplitOffset   = 0.2  // of page width, no split in the outer fifths
	minGutterBuckets = 10   // 5% of width; word gaps stay well under this
)

// detectColumnSplit decides whether the page is two-column and returns the x
// coordinate of the gutter. It builds a histogram of glyph x-midpoints and
// looks for two modes separated by an empty-bucket gap with a trough under
// 30% of the lower peak. Single-column pages get (0, false).
func detectColumnSplit(chars []pdf.Char) (float64, bool) {
	if len(chars) == 0 {
		return 0, false
	}

	minX, maxX := chars[0].X, chars[0].X
	for _, c := range chars {
		mid := c.X + c.W/2
		if mid < minX {
			minX = mid
		}
		if mid > maxX {
			maxX = mid
		}
	}
	width := maxX - minX
	if width <= 0 {
		return 0, false
	}

	var hist [columnBuckets]int
	bucket := func(x float64) int {
		i := int((x - minX) / width * columnBuckets)
		if i < 0 {
			i = 0
		}
		if i >= columnBuckets {
			i = columnBuckets - 1
		}
		return i
	}
	total := 0
	for _, c := range chars {
		hist[bucket(c.X+c.W/2)]++
		total++
	}

	// candidate gutters: runs of empty buckets away from the page edges
	lo := int(minSplitOffset * columnBuckets)
	hi := columnBuckets - lo
	bestStart, bestLen := -1, 0
	run := 0
	for i := lo; i < hi; i++ {
		if hist[i] == 0 {
			run++
			if run > bestLen {
				bestLen = run
				bestStart = i - run + 1
			}
		} else {
			run = 0
		}
	}
	if bestLen < minGutterBuckets {
		return 0, false
	}

	gapLo, gapHi := bestStart, bestStart+bestLen
	leftPeak, rightPeak := 0, 0
	leftCount, rightCount := 0, 0
	for i := 0; i < gapLo; i++ {
		leftCount += hist[i]
		if hist[i] > leftPeak {
			leftPeak = hist[i]
		}
	}
	for i := gapHi; i < columnBuckets; i++ {
		rightCount += hist[i]
		if hist[i] > rightPeak {
			rightPeak = hist[i]
		}
	}

	lower := leftPeak
	if rightPeak < lower {
		lower = rightPeak
	}
	if lower == 0 {
		return 0, false
	}
	// the trough between the two modes lies in the gutter and must stay under
	// troughFactor of the lower peak
	trough := hist[gapLo]
	for i := gapLo + 1; i < gapHi; i++ {
		if hist[i] < trough {
			trough = hist[i]
		}
	}
	if float64(trough) > troughFactor*float64(lower) {
		return 0, false
	}
	if float64(leftCount) < minColumnShare*float64(total) ||
		float64(rightCount) < minColumnShare*float64(total) {
		return 0, false
	}

	mid := float64(gapLo+gapHi) / 2
	return minX + mid/columnBuckets*width, true
}
