package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if !cfg.Extraction.Footnotes {
		t.Error("footnote collection should be enabled by default")
	}
	if cfg.Extraction.OCRConfidence != 40 {
		t.Errorf("default ocr confidence = %v, want 40", cfg.Extraction.OCRConfidence)
	}
	if len(cfg.Extraction.StopWords) == 0 {
		t.Error("default stop words missing")
	}
	if !cfg.DOI.Enable || cfg.DOI.Endpoint == "" {
		t.Errorf("doi defaults = %+v", cfg.DOI)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
extraction:
  footnotes: false
  timeout_seconds: 30
doi:
  enable: false
logging:
  console:
    level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Extraction.Footnotes {
		t.Error("footnotes should be disabled by file")
	}
	if cfg.Extraction.TimeoutSeconds != 30 {
		t.Errorf("timeout = %d, want 30", cfg.Extraction.TimeoutSeconds)
	}
	if cfg.DOI.Enable {
		t.Error("doi lookup should be disabled by file")
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
	// defaults survive partial files
	if cfg.DOI.Endpoint == "" {
		t.Error("endpoint default lost on merge")
	}
}

func TestLoadConfiguration_UnknownField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("version: 1\nbogus: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfiguration(configPath); err == nil {
		t.Fatal("LoadConfiguration() accepted unknown field")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "extraction:") {
		t.Errorf("dump misses extraction section:\n%s", data)
	}
}

func TestEntryName(t *testing.T) {
	got := EntryName("documents", "/tmp/Some Paper (v2).pdf")
	if strings.ContainsAny(got, " ()") {
		t.Errorf("EntryName() = %q, not slugified", got)
	}
	if !strings.HasPrefix(got, "documents/") {
		t.Errorf("EntryName() = %q", got)
	}
}
