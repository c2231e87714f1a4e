package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klarakrnjic/Transcribus-project/internal/config"
	"github.com/klarakrnjic/Transcribus-project/internal/database"
	hlog "github.com/klarakrnjic/Transcribus-project/internal/log"
	"github.com/klarakrnjic/Transcribus-project/internal/model"
	"github.com/klarakrnjic/Transcribus-project/internal/pipeline"
	"github.com/klarakrnjic/Transcribus-project/internal/report"
)

const (
	testReference  = "sveti petar je došao\n\nana ima anu\n\ni tada reče kralj\n\ndom je lijep\n\npeta stranica"
	testHypothesis = "sv petar je dosao\n\nana imaanu\n\ni tada rece kraljevstvo"
)

// writeInputs writes the reference and hypothesis fixtures into dir.
func writeInputs(t *testing.T, dir string) (string, string) {
	t.Helper()

	ref := filepath.Join(dir, "ref.txt")
	hyp := filepath.Join(dir, "hyp.txt")
	if err := os.WriteFile(ref, []byte(testReference), 0o600); err != nil {
		t.Fatalf("failed to write reference: %v", err)
	}
	if err := os.WriteFile(hyp, []byte(testHypothesis), 0o600); err != nil {
		t.Fatalf("failed to write hypothesis: %v", err)
	}
	return ref, hyp
}

// writeConfig writes a config file so tests do not pick up one from the
// user's home directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".htrdiff")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func readStats(t *testing.T, prefix string) report.StatsReport {
	t.Helper()

	data, err := os.ReadFile(prefix + report.StatsSuffix)
	if err != nil {
		t.Fatalf("failed to read stats: %v", err)
	}
	var stats report.StatsReport
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("failed to parse stats: %v", err)
	}
	return stats
}

func TestNewAnalyzeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAnalyzeCmd()

	tests := []struct {
		flag      string
		shorthand string
		defValue  string
	}{
		{"workers", "w", "4"},
		{"normalize", "n", "false"},
		{"splitter", "", "regex"},
		{"max-merge-distance", "", "2"},
		{"abbreviation-ratio", "", "1.5"},
		{"min-token-length", "", "3"},
		{"config", "c", ""},
		{"json", "j", "false"},
		{"markdown", "m", "false"},
		{"output", "o", ""},
		{"save", "", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tt.flag)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.flag)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("expected default %q, got %q", tt.defValue, flag.DefValue)
			}
		})
	}

	t.Run("requires three arguments", func(t *testing.T) {
		t.Parallel()

		if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
			t.Error("expected error for two arguments")
		}
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	args := []string{"ref.txt", "hyp.txt", "out/run"}

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags([]string{"--config", writeConfig(t, "")}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Reference != "ref.txt" || cfg.Hypothesis != "hyp.txt" || cfg.OutputPrefix != "out/run" {
			t.Errorf("unexpected inputs: %q %q %q", cfg.Reference, cfg.Hypothesis, cfg.OutputPrefix)
		}
		if cfg.Workers != config.DefaultWorkers {
			t.Errorf("expected workers %d, got %d", config.DefaultWorkers, cfg.Workers)
		}
		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false")
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("config file is applied", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "workers: 2\nnormalize: true\nthresholds:\n  maxMergeDistance: 1\n")
		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Workers != 2 {
			t.Errorf("expected workers 2, got %d", cfg.Workers)
		}
		if !cfg.Normalize {
			t.Error("expected normalize from config file")
		}
		if cfg.Thresholds.MaxMergeDistance != 1 {
			t.Errorf("expected merge distance 1, got %d", cfg.Thresholds.MaxMergeDistance)
		}
	})

	t.Run("flags override config file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "workers: 2\nthresholds:\n  minTokenLength: 5\n")
		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags([]string{"--config", path, "-w", "8", "--min-token-length", "4"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Workers != 8 {
			t.Errorf("expected workers 8, got %d", cfg.Workers)
		}
		if cfg.Thresholds.MinTokenLength != 4 {
			t.Errorf("expected min token length 4, got %d", cfg.Thresholds.MinTokenLength)
		}
	})

	t.Run("explicit missing config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		missing := filepath.Join(t.TempDir(), "nope.yaml")
		if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}
		if _, err := buildConfig(cmd, args); !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewAnalyzeCmd()
		if err := cmd.ParseFlags([]string{"--config", writeConfig(t, "unknownKey: 1\n")}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}
		if _, err := buildConfig(cmd, args); err == nil {
			t.Error("expected error for unknown config key")
		}
	})
}

func TestRunAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("writes report set and summary", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ref, hyp := writeInputs(t, dir)

		cfg := config.NewConfig()
		cfg.Reference, cfg.Hypothesis = ref, hyp
		cfg.OutputPrefix = filepath.Join(dir, "out", "run")

		var stdout, stderr bytes.Buffer
		err := runAnalyze(t.Context(), cfg, analyzeOutput{stdout: &stdout, stderr: &stderr, markdownFile: true}, hlog.Discard())
		if err != nil {
			t.Fatalf("runAnalyze failed: %v", err)
		}

		for _, suffix := range []string{
			report.StatsSuffix, report.ErrorsSuffix, report.SubstitutionsSuffix,
			report.PagesSuffix, report.MarkdownSuffix,
		} {
			if _, err := os.Stat(cfg.OutputPrefix + suffix); err != nil {
				t.Errorf("expected %s to be written: %v", suffix, err)
			}
		}

		stats := readStats(t, cfg.OutputPrefix)
		want := model.Stats{CharSubstitution: 2, CharDeletion: 4, CharInsertion: 6, WordDeletion: 2, WordInsertion: 1}
		if stats.ErrorCounts != want {
			t.Errorf("stats = %+v, want %+v", stats.ErrorCounts, want)
		}
		if stats.TotalCharsRef != 6 || stats.TotalCharsHyp != 8 {
			t.Errorf("totals = %d/%d, want 6/8", stats.TotalCharsRef, stats.TotalCharsHyp)
		}

		if !strings.Contains(stdout.String(), "Reference:") {
			t.Errorf("expected summary on stdout, got %q", stdout.String())
		}
		if !strings.Contains(stderr.String(), "Wrote ") {
			t.Errorf("expected written files on stderr, got %q", stderr.String())
		}
	})

	t.Run("missing input still writes empty report set", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, hyp := writeInputs(t, dir)

		cfg := config.NewConfig()
		cfg.Reference = filepath.Join(dir, "missing.txt")
		cfg.Hypothesis = hyp
		cfg.OutputPrefix = filepath.Join(dir, "empty")
		cfg.SaveToDB = true
		cfg.DBDir = filepath.Join(dir, "db")

		var stdout, stderr bytes.Buffer
		err := runAnalyze(t.Context(), cfg, analyzeOutput{stdout: &stdout, stderr: &stderr}, hlog.Discard())
		if !errors.Is(err, pipeline.ErrMissingInput) {
			t.Fatalf("expected ErrMissingInput, got %v", err)
		}

		stats := readStats(t, cfg.OutputPrefix)
		if !stats.ErrorCounts.IsZero() {
			t.Errorf("expected zero stats, got %+v", stats.ErrorCounts)
		}
		if _, err := os.Stat(cfg.OutputPrefix + report.ErrorsSuffix); !os.IsNotExist(err) {
			t.Error("error log should not be written without errors")
		}
		if _, err := os.Stat(cfg.OutputPrefix + report.SubstitutionsSuffix); err != nil {
			t.Errorf("substitution table should always be written: %v", err)
		}
		if _, err := os.Stat(filepath.Join(cfg.DBDir, database.DBFileName)); !os.IsNotExist(err) {
			t.Error("failed runs should not be saved")
		}
	})

	t.Run("JSON report to file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ref, hyp := writeInputs(t, dir)

		cfg := config.NewConfig()
		cfg.Reference, cfg.Hypothesis = ref, hyp
		cfg.OutputPrefix = filepath.Join(dir, "run")
		cfg.JSONReport = true
		cfg.ReportFile = filepath.Join(dir, "reports", "full.json")

		var stdout, stderr bytes.Buffer
		if err := runAnalyze(t.Context(), cfg, analyzeOutput{stdout: &stdout, stderr: &stderr}, hlog.Discard()); err != nil {
			t.Fatalf("runAnalyze failed: %v", err)
		}
		if stdout.Len() != 0 {
			t.Errorf("expected nothing on stdout, got %q", stdout.String())
		}

		data, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		var full report.JSONReport
		if err := json.Unmarshal(data, &full); err != nil {
			t.Fatalf("failed to parse report: %v", err)
		}
		if full.Result == nil || full.Result.ProcessedPages != 3 {
			t.Errorf("unexpected result in report: %+v", full.Result)
		}
	})
}

func TestAnalyzeAndHistory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ref, hyp := writeInputs(t, dir)
	dbDir := filepath.Join(dir, "db")
	configPath := writeConfig(t, "")

	for range 2 {
		root := NewRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs([]string{"analyze", "--config", configPath, "--save", "--db-dir", dbDir,
			ref, hyp, filepath.Join(dir, "run")})
		if err := root.Execute(); err != nil {
			t.Fatalf("analyze failed: %v", err)
		}
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	runs, err := db.ListRuns(t.Context(), 0)
	_ = db.Close()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 saved runs, got %d", len(runs))
	}

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&out)
		root.SetArgs([]string{"history", "list", "--db-dir", dbDir})
		if err := root.Execute(); err != nil {
			t.Fatalf("history list failed: %v", err)
		}
		if !strings.Contains(out.String(), shortID(runs[0].ID)) {
			t.Errorf("expected run ID in listing, got %q", out.String())
		}
	})

	t.Run("show by prefix", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&out)
		root.SetArgs([]string{"history", "show", "--db-dir", dbDir, "--json", shortID(runs[1].ID)})
		if err := root.Execute(); err != nil {
			t.Fatalf("history show failed: %v", err)
		}
		var full report.JSONReport
		if err := json.Unmarshal(out.Bytes(), &full); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if full.Result.RunID != runs[1].ID {
			t.Errorf("expected run %s, got %s", runs[1].ID, full.Result.RunID)
		}
	})

	t.Run("diff of identical runs", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&out)
		root.SetArgs([]string{"history", "diff", "--db-dir", dbDir, runs[1].ID, runs[0].ID})
		if err := root.Execute(); err != nil {
			t.Fatalf("history diff failed: %v", err)
		}
		if strings.Contains(out.String(), "different documents") {
			t.Error("runs over the same files should share fingerprints")
		}
		if !strings.Contains(out.String(), "Total") {
			t.Errorf("expected totals row, got %q", out.String())
		}
	})
}

func TestHistory_NoDatabase(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"history", "list", "--db-dir", filepath.Join(t.TempDir(), "none")})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "database not found") {
		t.Errorf("expected database not found error, got %v", err)
	}
}
