package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("yaml file is applied", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, ".htrdiff", `
thresholds:
  maxMergeDistance: 0
  abbreviationRatio: 2.0
workers: 8
splitter: paragraph
normalize: true
language: en
`)
		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		cf.Apply(cfg)

		if cfg.Thresholds.MaxMergeDistance != 0 {
			t.Errorf("MaxMergeDistance = %d, want explicit 0", cfg.Thresholds.MaxMergeDistance)
		}
		if cfg.Thresholds.AbbreviationRatio != 2.0 {
			t.Errorf("AbbreviationRatio = %v, want 2.0", cfg.Thresholds.AbbreviationRatio)
		}
		if cfg.Thresholds.MinTokenLength != 3 {
			t.Errorf("MinTokenLength = %d, want default 3", cfg.Thresholds.MinTokenLength)
		}
		if cfg.Workers != 8 {
			t.Errorf("Workers = %d, want 8", cfg.Workers)
		}
		if cfg.Splitter != "paragraph" {
			t.Errorf("Splitter = %q, want paragraph", cfg.Splitter)
		}
		if !cfg.Normalize {
			t.Error("Normalize should be true")
		}
		if cfg.Language != "en" {
			t.Errorf("Language = %q, want en", cfg.Language)
		}
	})

	t.Run("toml file is applied", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "htrdiff.toml", `
workers = 2
save = true

[thresholds]
minTokenLength = 4
`)
		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		cf.Apply(cfg)

		if cfg.Workers != 2 {
			t.Errorf("Workers = %d, want 2", cfg.Workers)
		}
		if !cfg.SaveToDB {
			t.Error("SaveToDB should be true")
		}
		if cfg.Thresholds.MinTokenLength != 4 {
			t.Errorf("MinTokenLength = %d, want 4", cfg.Thresholds.MinTokenLength)
		}
	})

	t.Run("empty yaml file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cf, err := LoadConfigFile(writeFile(t, ".htrdiff", ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg := NewConfig()
		cf.Apply(cfg)
		if cfg.Workers != DefaultWorkers {
			t.Errorf("Workers = %d, want default", cfg.Workers)
		}
	})

	t.Run("unknown yaml key is rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfigFile(writeFile(t, ".htrdiff", "wokers: 3\n")); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("unknown toml key is rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfigFile(writeFile(t, "c.toml", "wokers = 3\n")); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("nil file applies nothing", func(t *testing.T) {
		t.Parallel()

		var cf *File
		cfg := NewConfig()
		cf.Apply(cfg)
		if cfg.Workers != DefaultWorkers {
			t.Error("nil file should not change config")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "custom.yaml", "workers: 1\n")
		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile = %q, want %q", got, path)
		}
	})

	t.Run("explicit missing path", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})
}
