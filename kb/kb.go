// Package kb loads and serves the knowledge bases: journal-title matching,
// report-number patterns, collaboration names and special-journal rules.
// Everything here is built once at startup and read-only afterwards.
package kb

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

//go:embed data/*.kb
var embeddedKB embed.FS

// Paths overrides embedded knowledge bases with files on disk. Empty fields
// keep the embedded data.
type Paths struct {
	Journals        string
	ReportNumbers   string
	Collaborations  string
	SpecialJournals string
}

// KB bundles all knowledge-base services.
type KB struct {
	Journals        *JournalIndex
	Reports         *ReportTrie
	collaborations  map[string]string // normalized -> canonical
	specialJournals map[string]bool   // canonical abbrev -> year_in_volume
}

// Load builds all indices. Any malformed or unreadable KB file is fatal: the
// extractor is useless without its knowledge bases.
func Load(paths Paths, stopWords []string, log *zap.Logger) (*KB, error) {
	kb := &KB{
		collaborations:  make(map[string]string),
		specialJournals: make(map[string]bool),
	}

	lines, err := readKB("data/journals.kb", paths.Journals)
	if err != nil {
		return nil, err
	}
	if kb.Journals, err = newJournalIndex(lines, stopWords); err != nil {
		return nil, err
	}

	if lines, err = readKB("data/report-numbers.kb", paths.ReportNumbers); err != nil {
		return nil, err
	}
	if kb.Reports, err = newReportTrie(lines); err != nil {
		return nil, err
	}

	if lines, err = readKB("data/collaborations.kb", paths.Collaborations); err != nil {
		return nil, err
	}
	for _, ln := range lines {
		kb.collaborations[normalize(ln)] = ln
	}

	if lines, err = readKB("data/special-journals.kb", paths.SpecialJournals); err != nil {
		return nil, err
	}
	for _, ln := range lines {
		name, opts, ok := strings.Cut(ln, "\t")
		if !ok {
			return nil, fmt.Errorf("special-journals kb: malformed line %q", ln)
		}
		kb.specialJournals[strings.TrimSpace(name)] = strings.Contains(opts, "year_in_volume=true")
	}

	log.Debug("knowledge bases loaded",
		zap.Int("journals", kb.Journals.size()),
		zap.Int("report_prefixes", kb.Reports.size()),
		zap.Int("collaborations", len(kb.collaborations)),
		zap.Int("special_journals", len(kb.specialJournals)))
	return kb, nil
}

// IsSpecialJournal reports whether the canonical abbreviation uses the
// YYYY(MM) numeration where the month-like part is the volume.
func (kb *KB) IsSpecialJournal(abbrev string) bool {
	return kb.specialJournals[abbrev]
}

// Collaboration returns the canonical collaboration name for a candidate
// token, if known.
func (kb *KB) Collaboration(name string) (string, bool) {
	c, ok := kb.collaborations[normalize(name)]
	return c, ok
}

// readKB returns non-empty, non-comment lines of a KB file, preferring the
// override path over the embedded copy.
func readKB(embedded, override string) ([]string, error) {
	var (
		data []byte
		err  error
		src  string
	)
	if override != "" {
		src = override
		data, err = os.ReadFile(override)
	} else {
		src = embedded
		data, err = embeddedKB.ReadFile(embedded)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read knowledge base %q: %w", src, err)
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		ln := strings.TrimSpace(sc.Text())
		if ln == "" || strings.HasPrefix(ln, "#") {
			continue
		}
		lines = append(lines, ln)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("unable to scan knowledge base %q: %w", src, err)
	}
	return lines, nil
}

// splitRule cuts one "LEFT ---> RIGHT" KB line.
func splitRule(line string) (string, string, error) {
	left, right, ok := strings.Cut(line, "--->")
	if !ok {
		return "", "", fmt.Errorf("malformed kb rule %q", line)
	}
	return strings.TrimSpace(left), strings.TrimSpace(right), nil
}
