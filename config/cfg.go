package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

// ErrInvalid marks configuration problems so the driver can exit with a
// dedicated code.
var ErrInvalid = errors.New("invalid configuration")

type (
	// KnowledgeBasesConfig points at replacement KB files; empty fields use
	// the embedded data.
	KnowledgeBasesConfig struct {
		Journals        string `yaml:"journals,omitempty" sanitize:"assure_file_access"`
		ReportNumbers   string `yaml:"report_numbers,omitempty" sanitize:"assure_file_access"`
		Collaborations  string `yaml:"collaborations,omitempty" sanitize:"assure_file_access"`
		SpecialJournals string `yaml:"special_journals,omitempty" sanitize:"assure_file_access"`
	}

	ExtractionConfig struct {
		Footnotes      bool     `yaml:"footnotes"`
		OCRFallback    bool     `yaml:"ocr_fallback"`
		OCRConfidence  float64  `yaml:"ocr_confidence" validate:"gte=0,lte=100"`
		TimeoutSeconds int      `yaml:"timeout_seconds" validate:"gte=0"`
		StopWords      []string `yaml:"stop_words"`
	}

	DOIConfig struct {
		Enable         bool   `yaml:"enable"`
		Endpoint       string `yaml:"endpoint" validate:"omitempty,url"`
		CachePath      string `yaml:"cache_path,omitempty" sanitize:"path_clean,assure_dir_exists_for_file"`
		TTLDays        int    `yaml:"ttl_days" validate:"gte=0"`
		TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gte=1"`
	}

	Config struct {
		Version        int                  `yaml:"version" validate:"eq=1"`
		Extraction     ExtractionConfig     `yaml:"extraction"`
		KnowledgeBases KnowledgeBasesConfig `yaml:"knowledge_bases"`
		DOI            DOIConfig            `yaml:"doi"`
		Logging        LoggingConfig        `yaml:"logging"`
		Reporting      ReporterConfig       `yaml:"reporting"`
	}
)

// DocumentTimeout returns the per-document deadline, zero meaning none.
func (c *ExtractionConfig) DocumentTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a
// byte slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
