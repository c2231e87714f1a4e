package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".htrdiff"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk configuration.
// Pointer fields distinguish "not set" from an explicit zero.
type File struct {
	Thresholds   ThresholdsFile `yaml:"thresholds" toml:"thresholds"`
	Workers      int            `yaml:"workers,omitempty" toml:"workers,omitempty"`
	Splitter     string         `yaml:"splitter,omitempty" toml:"splitter,omitempty"`
	SplitPattern string         `yaml:"splitPattern,omitempty" toml:"splitPattern,omitempty"`
	Normalize    *bool          `yaml:"normalize,omitempty" toml:"normalize,omitempty"`
	Language     string         `yaml:"language,omitempty" toml:"language,omitempty"`
	DBDir        string         `yaml:"dbDir,omitempty" toml:"dbDir,omitempty"`
	Save         *bool          `yaml:"save,omitempty" toml:"save,omitempty"`
}

// ThresholdsFile mirrors classify.Thresholds with optional fields.
type ThresholdsFile struct {
	MaxMergeDistance  *int     `yaml:"maxMergeDistance,omitempty" toml:"maxMergeDistance,omitempty"`
	AbbreviationRatio *float64 `yaml:"abbreviationRatio,omitempty" toml:"abbreviationRatio,omitempty"`
	MinTokenLength    *int     `yaml:"minTokenLength,omitempty" toml:"minTokenLength,omitempty"`
}

// LoadConfigFile loads a configuration file.
// Files ending in .toml are decoded as TOML, everything else as YAML.
// Unknown keys are rejected so typos do not silently fall back to defaults.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cf); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return &cf, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cf, nil
}

// Apply copies every value set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f == nil {
		return
	}
	if v := f.Thresholds.MaxMergeDistance; v != nil {
		cfg.Thresholds.MaxMergeDistance = *v
	}
	if v := f.Thresholds.AbbreviationRatio; v != nil {
		cfg.Thresholds.AbbreviationRatio = *v
	}
	if v := f.Thresholds.MinTokenLength; v != nil {
		cfg.Thresholds.MinTokenLength = *v
	}
	if f.Workers != 0 {
		cfg.Workers = f.Workers
	}
	if f.Splitter != "" {
		cfg.Splitter = f.Splitter
	}
	if f.SplitPattern != "" {
		cfg.SplitPattern = f.SplitPattern
	}
	if f.Normalize != nil {
		cfg.Normalize = *f.Normalize
	}
	if f.Language != "" {
		cfg.Language = f.Language
	}
	if f.DBDir != "" {
		cfg.DBDir = f.DBDir
	}
	if f.Save != nil {
		cfg.SaveToDB = *f.Save
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .htrdiff in the current directory
// 3. Look for .htrdiff in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
