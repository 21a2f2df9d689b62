package refs

import (
	"testing"

	"go.uber.org/zap"

	"refx/kb"
)

func testKB(t *testing.T) *kb.KB {
	t.Helper()
	k, err := kb.Load(kb.Paths{}, []string{"Physics", "Science", "Energy", "Nature"}, zap.NewNop())
	if err != nil {
		t.Fatalf("kb.Load() error = %v", err)
	}
	return k
}

func findKind(toks []Token, kind TokenKind) []Token {
	var out []Token
	for _, t := range toks {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

func TestTokenizeIdentifiers(t *testing.T) {
	k := testKB(t)

	tests := []struct {
		name  string
		text  string
		kind  TokenKind
		value string
	}{
		{"doi with trailing dot", "see doi:10.1088/1475-7516/2007/12/001.", TokDOI, "10.1088/1475-7516/2007/12/001"},
		{"arxiv new prefixed", "CMS Collaboration, arXiv:2007.14040 [hep-ex]", TokArXiv, "2007.14040"},
		{"arxiv new with version", "arXiv:2007.14040v2", TokArXiv, "2007.14040v2"},
		{"arxiv old bare", "hep-ph/0510213", TokArXiv, "hep-ph/0510213"},
		{"arxiv old prefixed", "arXiv:hep-ph/0510213", TokArXiv, "hep-ph/0510213"},
		{"arxiv colon category", "arXiv:0510213 [hep-ph]", TokArXiv, "hep-ph/0510213"},
		{"arxiv url", "http://arxiv.org/abs/hep-th/9711200", TokArXiv, "hep-th/9711200"},
		{"report number", "FERMILAB-PUB-04-123-E", TokReportNum, "FERMILAB-PUB-04-123-E"},
		{"journal", "Phys. Rev. D 7, 2333", TokJournal, "Phys. Rev. D"},
		{"collaboration", "ATLAS Collaboration", TokCollab, "ATLAS"},
		{"ibid plain", "ibid. D 81, 022222", TokIbid, ""},
		{"ibid erratum", "Erratum-ibid. B 703, 413", TokIbid, "erratum"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			toks := Tokenize(tc.text, k)
			got := findKind(toks, tc.kind)
			if len(got) == 0 {
				t.Fatalf("Tokenize(%q): no %v token in %+v", tc.text, tc.kind, toks)
			}
			if got[0].Value != tc.value {
				t.Errorf("Tokenize(%q) %v value = %q, want %q", tc.text, tc.kind, got[0].Value, tc.value)
			}
		})
	}
}

func TestTokenizeNumeration(t *testing.T) {
	k := testKB(t)

	t.Run("year in range", func(t *testing.T) {
		toks := Tokenize("published (1973) in print", k)
		years := findKind(toks, TokYear)
		if len(years) != 1 || years[0].Value != "1973" {
			t.Fatalf("years = %+v", years)
		}
	})
	t.Run("year out of range", func(t *testing.T) {
		toks := Tokenize("figure 1750 of 2999", k)
		if years := findKind(toks, TokYear); len(years) != 0 {
			t.Fatalf("years = %+v, want none", years)
		}
	})
	t.Run("astronomy year suffix", func(t *testing.T) {
		toks := Tokenize("Smith 1999a", k)
		years := findKind(toks, TokYear)
		if len(years) != 1 || years[0].Value != "1999" {
			t.Fatalf("years = %+v", years)
		}
	})
	t.Run("article number with rapid suffix", func(t *testing.T) {
		toks := Tokenize("Phys. Rev. D 80, 111301(R) (2009)", k)
		pages := findKind(toks, TokPageRange)
		if len(pages) != 1 || pages[0].Value != "111301" {
			t.Fatalf("pages = %+v, want 111301", pages)
		}
	})
	t.Run("special journal year volume", func(t *testing.T) {
		toks := Tokenize("JCAP 2007(12), 001", k)
		years := findKind(toks, TokYear)
		nums := findKind(toks, TokNumber)
		if len(years) == 0 || years[0].Value != "2007" {
			t.Fatalf("years = %+v", years)
		}
		if len(nums) < 1 || nums[0].Value != "12" {
			t.Fatalf("numbers = %+v", nums)
		}
	})
	t.Run("volume colon page", func(t *testing.T) {
		toks := Tokenize("Nucl. Phys. B 234:509", k)
		vols := findKind(toks, TokVolume)
		pages := findKind(toks, TokPageRange)
		if len(vols) != 1 || vols[0].Value != "234" {
			t.Fatalf("volumes = %+v", vols)
		}
		if len(pages) != 1 || pages[0].Value != "509" {
			t.Fatalf("pages = %+v", pages)
		}
	})
	t.Run("volume with issue", func(t *testing.T) {
		toks := Tokenize("Mod. Phys. Lett. A 19(13), 1001", k)
		vols := findKind(toks, TokVolume)
		if len(vols) == 0 || vols[0].Value != "19" {
			t.Fatalf("volumes = %+v", vols)
		}
	})
	t.Run("page range", func(t *testing.T) {
		toks := Tokenize("pages 100-110 therein", k)
		pages := findKind(toks, TokPageRange)
		if len(pages) != 1 || pages[0].Value != "100-110" {
			t.Fatalf("pages = %+v", pages)
		}
	})
	t.Run("letter volume", func(t *testing.T) {
		toks := Tokenize("Nucl. Phys. 249B, 332", k)
		vols := findKind(toks, TokVolume)
		if len(vols) != 1 || vols[0].Value != "249B" {
			t.Fatalf("volumes = %+v", vols)
		}
	})
}

func TestTokenSpansCoverRawText(t *testing.T) {
	k := testKB(t)
	raw := `J. D. Bekenstein, "Black holes and entropy," Phys. Rev. D 7, 2333 (1973).`
	toks := Tokenize(raw, k)
	prev := 0
	for _, tok := range toks {
		if tok.Start < prev {
			t.Fatalf("tokens overlap at %d: %+v", tok.Start, tok)
		}
		if tok.Text != raw[tok.Start:tok.End] {
			t.Fatalf("token text %q does not match span %q", tok.Text, raw[tok.Start:tok.End])
		}
		prev = tok.End
	}
}
