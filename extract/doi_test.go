package extract

import "testing"

func TestCacheKeyCanonicalization(t *testing.T) {
	a := cacheKey("J. D. Bekenstein,  Phys. Rev. D 7, 2333 (1973)")
	b := cacheKey("j. d. bekenstein, phys. rev. d 7, 2333 (1973)")
	c := cacheKey("J. D. Bekenstein, Phys. Rev. D 7, 2333 (1973)")
	if a != b || b != c {
		t.Error("case and whitespace variants must hash identically")
	}
	if a == cacheKey("something else entirely") {
		t.Error("distinct references collided")
	}
}

func TestReportEntry(t *testing.T) {
	got := reportEntry("/data/My Paper.pdf", "zones.txt")
	if got != "documents/data-my-paper-pdf/zones.txt" {
		t.Errorf("reportEntry() = %q", got)
	}
}
