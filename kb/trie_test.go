package kb

import "testing"

func TestReportTrieFind(t *testing.T) {
	k := testKB(t)

	tests := []struct {
		name string
		text string
		want string // empty means no match
	}{
		{"canonical", "preprint CERN-TH/2001-123 in print", "CERN-TH-2001-123"},
		{"space separator", "report CERN TH 2001-123", "CERN-TH-2001-123"},
		{"slac", "SLAC-PUB-9609", "SLAC-PUB-9609"},
		{"atlas conf", "ATLAS-CONF-2014-053, 2014", "ATLAS-CONF-2014-053"},
		{"longer prefix wins", "CERN-PH-TH/2010-123", "CERN-PH-TH-2010-123"},
		{"prefix without numeration", "the CERN-TH group", ""},
		{"embedded in word", "preCERN-TH/2001-123", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := k.Reports.Find(tc.text)
			if tc.want == "" {
				if len(got) != 0 {
					t.Fatalf("Find(%q) = %+v, want none", tc.text, got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("Find(%q) = %+v, want exactly one match", tc.text, got)
			}
			if got[0].Text != tc.want {
				t.Errorf("Find(%q).Text = %q, want %q", tc.text, got[0].Text, tc.want)
			}
			if tc.text[got[0].Start:got[0].End] == "" || got[0].End > len(tc.text) {
				t.Errorf("Find(%q) bad span [%d,%d)", tc.text, got[0].Start, got[0].End)
			}
		})
	}
}
