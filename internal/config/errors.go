package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
var (
	// ErrNoInput is returned when the reference or hypothesis path is missing.
	ErrNoInput = errors.New("no input specified: provide a reference and a hypothesis transcription")

	// ErrNoOutputPrefix is returned when no output prefix is given.
	ErrNoOutputPrefix = errors.New("no output prefix specified")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMergeDistance is returned for a negative merge distance.
	ErrInvalidMergeDistance = errors.New("invalid max merge distance: must be non-negative")

	// ErrInvalidAbbreviationRatio is returned when the ratio is below 1.
	// A ratio under 1 would let the "expanded" token be the shorter one.
	ErrInvalidAbbreviationRatio = errors.New("invalid abbreviation ratio: must be at least 1")

	// ErrInvalidMinTokenLength is returned when the minimum token length is not positive.
	ErrInvalidMinTokenLength = errors.New("invalid min token length: must be positive")

	// ErrUnknownSplitter is returned for splitter names other than regex and paragraph.
	ErrUnknownSplitter = errors.New("unknown page splitter: use regex or paragraph")

	// ErrInvalidSplitPattern is returned when the page boundary pattern does not compile.
	ErrInvalidSplitPattern = errors.New("invalid split pattern: not a valid regular expression")

	// ErrInvalidLanguage is returned when the normalization language is not a BCP 47 tag.
	ErrInvalidLanguage = errors.New("invalid language: must be a BCP 47 tag such as hr or en")
)
