package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klarakrnjic/Transcribus-project/internal/classify"
	"github.com/klarakrnjic/Transcribus-project/internal/config"
	"github.com/klarakrnjic/Transcribus-project/internal/database"
	"github.com/klarakrnjic/Transcribus-project/internal/document"
	hlog "github.com/klarakrnjic/Transcribus-project/internal/log"
	"github.com/klarakrnjic/Transcribus-project/internal/model"
	"github.com/klarakrnjic/Transcribus-project/internal/normalize"
	"github.com/klarakrnjic/Transcribus-project/internal/pages"
	"github.com/klarakrnjic/Transcribus-project/internal/pipeline"
	"github.com/klarakrnjic/Transcribus-project/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <reference> <hypothesis> <output-prefix>",
		Short: "Classify the errors of a transcription against a reference",
		Long: `Analyze compares an HTR transcription (hypothesis) with a ground-truth
transcription (reference) page by page and classifies every difference.

Plain text files are split into pages on blank lines and numbered separator
lines. Word documents (.docx) are split on their page breaks. Only the pages
present in both documents are compared.

The following files are written next to the output prefix:
  <prefix>_stats.json     error counts per category and character totals
  <prefix>_errors.csv     word-level error log (omitted when there are none)
  <prefix>_char_subs.csv  character substitution table
  <prefix>_pages.csv      per-page counts, CER and WER
  <prefix>_report.md      Markdown report (with --markdown-file)

A summary is printed to standard output.

Examples:
  # Analyze two text transcriptions
  htrdiff analyze ground_truth.txt htr.txt results/letter1

  # Normalize both texts first and save the run to the history database
  htrdiff analyze --normalize --save gt.docx htr.docx results/book

  # Print the full result as JSON
  htrdiff analyze --json gt.txt htr.txt out/run > result.json

  # Tighten the merge heuristic
  htrdiff analyze --max-merge-distance 1 gt.txt htr.txt out/strict`,
		Args: cobra.ExactArgs(3),
		RunE: runAnalyzeCmd,
	}

	// Analysis flags
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of pages analyzed in parallel")
	cmd.Flags().BoolP("normalize", "n", false,
		"Normalize both texts before comparing")
	cmd.Flags().String("language", config.DefaultLanguage,
		"Language used for lowercasing during normalization (BCP 47 tag)")
	cmd.Flags().String("splitter", config.DefaultSplitter,
		"Page splitter for plain text input: regex or paragraph")
	cmd.Flags().String("split-pattern", "",
		"Page boundary regular expression for the regex splitter")

	// Threshold flags
	cmd.Flags().Int("max-merge-distance", classify.DefaultMaxMergeDistance,
		"Largest edit distance for a block to count as a merge or split")
	cmd.Flags().Float64("abbreviation-ratio", classify.DefaultAbbreviationRatio,
		"Length ratio between an expanded word and its abbreviation")
	cmd.Flags().Int("min-token-length", classify.DefaultMinTokenLength,
		"Shortest token considered for lexical and abbreviation checks")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .htrdiff in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Print the full result as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print a Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the printed report to a file instead of standard output")
	cmd.Flags().Bool("markdown-file", false,
		"Also write <prefix>_report.md")
	cmd.Flags().Bool("json-log", false,
		"Emit log records as JSON")

	// History flags
	cmd.Flags().Bool("save", false,
		"Save the run to the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	markdownFile, err := cmd.Flags().GetBool("markdown-file")
	if err != nil {
		return err
	}

	return runAnalyze(ctx, cfg, analyzeOutput{
		stdout:       cmd.OutOrStdout(),
		stderr:       cmd.ErrOrStderr(),
		markdownFile: markdownFile,
	}, logger)
}

// buildConfig creates a Config from the configuration file and flags.
// Flags the user set explicitly take precedence over the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file, error if not found.
	// Otherwise silently continue without one.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("normalize") {
		if cfg.Normalize, err = flags.GetBool("normalize"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("language") {
		if cfg.Language, err = flags.GetString("language"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("splitter") {
		if cfg.Splitter, err = flags.GetString("splitter"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("split-pattern") {
		if cfg.SplitPattern, err = flags.GetString("split-pattern"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-merge-distance") {
		if cfg.Thresholds.MaxMergeDistance, err = flags.GetInt("max-merge-distance"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("abbreviation-ratio") {
		if cfg.Thresholds.AbbreviationRatio, err = flags.GetFloat64("abbreviation-ratio"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("min-token-length") {
		if cfg.Thresholds.MinTokenLength, err = flags.GetInt("min-token-length"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("save") {
		if cfg.SaveToDB, err = flags.GetBool("save"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.JSONLog, err = flags.GetBool("json-log"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) == 3 {
		cfg.Reference = args[0]
		cfg.Hypothesis = args[1]
		cfg.OutputPrefix = args[2]
	}

	return cfg, nil
}

// setupLogger creates the structured logger for a run.
func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.JSONLog {
		return hlog.NewJSONLogger(w, cfg.Verbose)
	}
	return hlog.NewLogger(w, cfg.Verbose)
}

// analyzeOutput holds the destinations of an analyze run.
type analyzeOutput struct {
	stdout       io.Writer
	stderr       io.Writer
	markdownFile bool
}

// newOrchestrator builds the page orchestrator for cfg.
func newOrchestrator(cfg *config.Config, logger *slog.Logger) (*pipeline.Orchestrator, error) {
	splitter, err := pages.ByName(cfg.Splitter, cfg.SplitPattern)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.OrchestratorOption{
		pipeline.WithReader(document.NewReader()),
		pipeline.WithSplitter(splitter),
		pipeline.WithClassifier(classify.New(cfg.Thresholds)),
		pipeline.WithWorkers(cfg.Workers),
		pipeline.WithOrchestratorLogger(logger),
	}
	if cfg.Normalize {
		opts = append(opts, pipeline.WithNormalizer(normalize.New(cfg.LanguageTag())))
	}
	return pipeline.NewOrchestrator(opts...), nil
}

// runAnalyze executes the analysis and writes every output.
//
// A missing input document still produces a complete, empty report set and
// summary; the missing input is reported as the command error afterwards.
func runAnalyze(ctx context.Context, cfg *config.Config, out analyzeOutput, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"reference", cfg.Reference,
		"hypothesis", cfg.Hypothesis,
		"workers", cfg.Workers,
		"normalize", cfg.Normalize,
	)

	orch, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	result, runErr := orch.Run(ctx, cfg.Reference, cfg.Hypothesis)
	if runErr != nil && !errors.Is(runErr, pipeline.ErrMissingInput) {
		return runErr
	}

	files := report.NewFileSet(cfg.OutputPrefix,
		report.WithMarkdownFile(out.markdownFile),
		report.WithFileSetLogger(logger),
	)
	written, err := files.Write(result)
	if err != nil {
		return fmt.Errorf("failed to write report files: %w", err)
	}
	for _, path := range written {
		fmt.Fprintf(out.stderr, "Wrote %s\n", path)
	}

	if err := outputReport(cfg, result, out.stdout); err != nil {
		return fmt.Errorf("failed to output report: %w", err)
	}

	if runErr != nil {
		return runErr
	}

	if cfg.SaveToDB {
		if err := saveRun(ctx, cfg, result, logger); err != nil {
			return err
		}
		fmt.Fprintf(out.stderr, "Saved run %s\n", result.RunID)
	}
	return nil
}

// outputReport prints the result in the requested format.
func outputReport(cfg *config.Config, result *model.Result, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
	_, err := w.Write(result)
	return err
}

// saveRun stores the result and the fingerprints of its inputs.
func saveRun(ctx context.Context, cfg *config.Config, result *model.Result, logger *slog.Logger) error {
	fp, err := database.FingerprintFiles(cfg.Reference, cfg.Hypothesis)
	if err != nil {
		return fmt.Errorf("failed to fingerprint inputs: %w", err)
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SaveRun(ctx, result, fp); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	logger.Info("run saved to database", "run_id", result.RunID, "db", db.Path())
	return nil
}
