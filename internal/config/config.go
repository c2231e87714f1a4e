package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"

	"github.com/klarakrnjic/Transcribus-project/internal/classify"
	"github.com/klarakrnjic/Transcribus-project/internal/pages"
)

// Default configuration values.
const (
	// DefaultWorkers is the number of pages aligned concurrently.
	// Alignment is CPU bound, so a small pool saturates a laptop without
	// holding many quadratic DP tables in memory at once.
	DefaultWorkers = 4

	// DefaultSplitter names the page splitter used for unpaged documents.
	DefaultSplitter = pages.NameRegex

	// DefaultLanguage drives locale-aware lowercasing in the normalizer.
	// The transcriptions this tool was built for are Croatian.
	DefaultLanguage = "hr"

	// AppName is the application name used for XDG directory paths.
	AppName = "htrdiff"
)

// Config holds all configuration options for htrdiff.
// This struct is populated from defaults, the config file and CLI flags,
// in that order, and passed through the application explicitly.
type Config struct {
	// Reference is the path of the gold-standard transcription.
	Reference string

	// Hypothesis is the path of the automatic transcription.
	Hypothesis string

	// OutputPrefix is the path prefix for the report files.
	// For prefix "out/run1" the tool writes out/run1_stats.json and friends.
	OutputPrefix string

	// Thresholds are the word-level classification parameters.
	Thresholds classify.Thresholds

	// Workers is the number of pages processed concurrently.
	// A value of 1 processes pages sequentially.
	Workers int

	// Splitter selects the page splitter for documents without explicit
	// page breaks: "regex" or "paragraph".
	Splitter string

	// SplitPattern overrides the default page boundary pattern of the
	// regex splitter. Empty means pages.DefaultPattern.
	SplitPattern string

	// Normalize enables text normalization of every page before alignment.
	// Input is assumed normalized when false.
	Normalize bool

	// Language is the BCP 47 tag used for lowercasing during normalization.
	Language string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONLog switches log output from text to JSON lines.
	JSONLog bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .htrdiff in the current directory,
	// the user's home directory and the XDG config directory.
	ConfigFilePath string

	// JSONReport prints the full result as JSON instead of the terminal summary.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport prints a Markdown report with tables and a pie chart.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the summary report.
	// When set, the summary goes to this file instead of stdout.
	ReportFile string

	// DBDir is the directory path for storing the run history database.
	// Defaults to the XDG data directory (~/.local/share/htrdiff on Linux).
	DBDir string

	// SaveToDB persists every run to the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Thresholds: classify.DefaultThresholds(),
		Workers:    DefaultWorkers,
		Splitter:   DefaultSplitter,
		Language:   DefaultLanguage,
		DBDir:      XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for htrdiff.
// On Linux: ~/.local/share/htrdiff
// On macOS: ~/Library/Application Support/htrdiff
// On Windows: %LOCALAPPDATA%\htrdiff
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for htrdiff.
// On Linux: ~/.config/htrdiff
// On macOS: ~/Library/Application Support/htrdiff
// On Windows: %APPDATA%\htrdiff
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// LanguageTag parses Language, falling back to language.Und.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und
	}
	return tag
}

// Validate checks if the configuration is valid for an analysis run.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if c.Reference == "" || c.Hypothesis == "" {
		return ErrNoInput
	}
	if c.OutputPrefix == "" {
		return ErrNoOutputPrefix
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if err := ValidateThresholds(c.Thresholds); err != nil {
		return err
	}
	if c.Splitter != pages.NameRegex && c.Splitter != pages.NameParagraph {
		return ErrUnknownSplitter
	}
	if _, err := pages.ByName(c.Splitter, c.SplitPattern); err != nil {
		return ErrInvalidSplitPattern
	}
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return ErrInvalidLanguage
		}
	}
	return nil
}

// ValidateThresholds checks the classifier parameters.
func ValidateThresholds(t classify.Thresholds) error {
	if t.MaxMergeDistance < 0 {
		return ErrInvalidMergeDistance
	}
	if t.AbbreviationRatio < 1 {
		return ErrInvalidAbbreviationRatio
	}
	if t.MinTokenLength < 1 {
		return ErrInvalidMinTokenLength
	}
	return nil
}
