package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/manuscript/assemble"
	"github.com/tsawler/manuscript/translate"
)

// Config is the manuscript CLI configuration file.
type Config struct {
	Assemble  assemble.Config  `yaml:"assemble"`
	Translate translate.Config `yaml:"translate"`
	OCR       OCRConfig        `yaml:"ocr"`

	// ImageDir receives images extracted from PDFs.
	ImageDir string `yaml:"image_dir"`

	// Output is "yaml" or "markdown".
	Output string `yaml:"output"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// OCRConfig controls the Tesseract collaborator.
type OCRConfig struct {
	Enabled     bool `yaml:"enabled"`
	PageSegMode int  `yaml:"page_seg_mode"`
}

// TranslationEnabled reports whether a LibreTranslate server is configured.
func (c *Config) TranslationEnabled() bool {
	return c.Translate.URL != ""
}

func (c *Config) defaults() {
	if c.Output == "" {
		c.Output = "yaml"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	switch c.Output {
	case "yaml", "markdown":
	default:
		return fmt.Errorf("unknown output %q (want yaml or markdown)", c.Output)
	}
	if c.OCR.PageSegMode < 0 || c.OCR.PageSegMode > 13 {
		return fmt.Errorf("page_seg_mode %d out of range 0-13", c.OCR.PageSegMode)
	}
	return nil
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
