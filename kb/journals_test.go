package kb

import (
	"testing"

	"go.uber.org/zap"
)

func testKB(t *testing.T) *KB {
	t.Helper()
	k, err := Load(Paths{}, []string{"Physics", "Science", "Energy", "Nature"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return k
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Phys. Rev. D",
		"  Zeitschrift   für Physik ",
		"J.High.Energy.Phys.",
		"nucl-ex",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestJournalFind(t *testing.T) {
	k := testKB(t)

	tests := []struct {
		name   string
		text   string
		abbrev string // empty means no match expected
	}{
		{"canonical with dots", "Phys. Rev. D 7, 2333 (1973)", "Phys. Rev. D"},
		{"full name", "Physical Review Letters 19, 1264 (1967)", "Phys. Rev. Lett."},
		{"case insensitive", "PHYS REV D 80, 111301 (2009)", "Phys. Rev. D"},
		{"special journal", "JCAP 2007(12), 001", "JCAP"},
		{"accented", "Zeitschrift für Physik C 72, 39", "Z. Phys. C"},
		{"stop word alone", "a great contribution to Physics as such", ""},
		{"stop word with volume", "Physics 1, 195 (1964)", "Physics"},
		{"compound embedding", "Journal of Physics A 38, 1145", "J. Phys. A"},
		{"too short fragments", "in the NP B proceedings", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := k.Journals.Find(tc.text)
			if tc.abbrev == "" {
				for _, m := range got {
					if m.Abbrev == "Physics" {
						t.Errorf("Find(%q) produced stop-word match %+v", tc.text, m)
					}
				}
				if tc.name == "too short fragments" && len(got) != 0 {
					t.Errorf("Find(%q) = %+v, want none", tc.text, got)
				}
				return
			}
			if len(got) == 0 {
				t.Fatalf("Find(%q) = none, want %q", tc.text, tc.abbrev)
			}
			if got[0].Abbrev != tc.abbrev {
				t.Errorf("Find(%q)[0].Abbrev = %q, want %q", tc.text, got[0].Abbrev, tc.abbrev)
			}
			if got[0].Start < 0 || got[0].End > len(tc.text) || got[0].Start >= got[0].End {
				t.Errorf("Find(%q) bad span [%d,%d)", tc.text, got[0].Start, got[0].End)
			}
			if tc.text[got[0].Start:got[0].End] == "" {
				t.Errorf("Find(%q) empty span text", tc.text)
			}
		})
	}
}

func TestJournalFindLongestWins(t *testing.T) {
	k := testKB(t)
	got := k.Journals.Find("Phys. Rev. Lett. 19, 1264")
	if len(got) == 0 || got[0].Abbrev != "Phys. Rev. Lett." {
		t.Fatalf("Find() = %+v, want Phys. Rev. Lett.", got)
	}
}

func TestJournalExtend(t *testing.T) {
	k := testKB(t)
	if got, ok := k.Journals.Extend("Phys. Rev.", "D"); !ok || got != "Phys. Rev. D" {
		t.Errorf("Extend(Phys. Rev., D) = %q, %v", got, ok)
	}
	if _, ok := k.Journals.Extend("Phys. Rev.", "Q"); ok {
		t.Error("Extend(Phys. Rev., Q) should not resolve")
	}
}

func TestCollaborations(t *testing.T) {
	k := testKB(t)

	if got := k.FindCollaborations("CMS Collaboration, arXiv:2007.14040"); len(got) == 0 || got[0].Name != "CMS" {
		t.Fatalf("FindCollaborations() = %+v, want CMS", got)
	}
	// all-lowercase words must not trip short collaboration names
	if got := k.FindCollaborations("théorie des cordes"); len(got) != 0 {
		t.Errorf("FindCollaborations() matched inside lowercase prose: %+v", got)
	}
}

func TestSpecialJournals(t *testing.T) {
	k := testKB(t)
	if !k.IsSpecialJournal("JCAP") {
		t.Error("JCAP should be special")
	}
	if k.IsSpecialJournal("Phys. Rev. D") {
		t.Error("Phys. Rev. D should not be special")
	}
}
