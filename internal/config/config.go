// Package config loads obagen's optional YAML configuration.
//
// Values are resolved in order of precedence: command-line flags, the
// configuration file, then built-in defaults. Environment variables from
// .env and .env.local next to the configuration file are loaded before
// ${VAR} references in the file are expanded.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "obagen.yaml"

// Config is the full tool configuration.
type Config struct {
	Examples ExamplesConfig `yaml:"examples"`
	Modules  ModulesConfig  `yaml:"modules"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ExamplesConfig controls scraping test programs and splicing guides.
type ExamplesConfig struct {
	Dir           string `yaml:"dir"`            // Test programs root
	Glob          string `yaml:"glob"`           // Pattern under Dir, supports **
	ContentDir    string `yaml:"content_dir"`    // Guide files live here as <guide>.md
	FenceLanguage string `yaml:"fence_language"` // Info string on inserted fences
}

// ModulesConfig controls module inlining.
type ModulesConfig struct {
	Dir          string `yaml:"dir"`
	Pattern      string `yaml:"pattern"`
	Extension    string `yaml:"extension"`
	OutputSuffix string `yaml:"output_suffix"`
	Escape       *bool  `yaml:"escape,omitempty"`
}

// EscapeEnabled reports whether literals are escaped, which is the default.
func (m ModulesConfig) EscapeEnabled() bool {
	return m.Escape == nil || *m.Escape
}

// MetricsConfig controls the run metrics textfile.
type MetricsConfig struct {
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	setDefault(&cfg.Examples.Dir, "test/examples")
	setDefault(&cfg.Examples.Glob, "**/*.oba")
	setDefault(&cfg.Examples.ContentDir, "docs/content")
	setDefault(&cfg.Modules.Dir, "mod")
	setDefault(&cfg.Modules.Pattern, "*.oba")
	setDefault(&cfg.Modules.Extension, ".oba")
	setDefault(&cfg.Modules.OutputSuffix, ".c")
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

// Load reads the configuration at path. When optional is set a missing file
// yields the defaults instead of an error.
func Load(path string, optional bool) (*Config, error) {
	loadEnvFiles(filepath.Dir(path))

	// #nosec G304 -- configuration path is supplied by the operator.
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && optional {
		return Default(), nil
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read configuration").
			WithContext("file", path).
			Build()
	}
	return Parse(data)
}

// Parse decodes configuration bytes, expanding environment references and
// rejecting unknown keys.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").Build()
	}

	if err := cfg.Logging.normalize(); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes the default configuration to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("file", path).
			Build()
	}

	var buf bytes.Buffer
	buf.WriteString("# obagen configuration. Relative paths resolve against the git work-tree root.\n")
	cfg := Default()
	escape := true
	cfg.Modules.Escape = &escape
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode configuration").Build()
	}
	if err := enc.Close(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode configuration").Build()
	}

	// #nosec G306 -- configuration is meant to be committed and readable.
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return ferrors.FileSystemError("failed to write configuration").WithCause(err).
			WithContext("file", path).
			Build()
	}
	return nil
}

func fieldError(field string, err error) error {
	return ferrors.WrapError(err, ferrors.CategoryConfig, fmt.Sprintf("invalid %s", field)).
		WithContext("field", field).
		Build()
}
