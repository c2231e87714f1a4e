package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// ErrPrefixLocked is returned when another process is writing the same
// report set.
var ErrPrefixLocked = errors.New("report prefix is locked by another run")

// File suffixes appended to the output prefix.
const (
	StatsSuffix         = "_stats.json"
	ErrorsSuffix        = "_errors.csv"
	SubstitutionsSuffix = "_char_subs.csv"
	PagesSuffix         = "_pages.csv"
	MarkdownSuffix      = "_report.md"
	lockSuffix          = ".lock"
)

// FileSet writes the report files of one run next to each other:
//
//	<prefix>_stats.json     category counts and character totals
//	<prefix>_errors.csv     word error log, omitted when there are no errors
//	<prefix>_char_subs.csv  substitution table, always written
//	<prefix>_pages.csv      per-page counts and rates
//	<prefix>_report.md      Markdown report, only WithMarkdownFile
//
// The set is written under an exclusive lock on <prefix>.lock so two runs
// with the same prefix cannot interleave their files.
type FileSet struct {
	prefix   string
	markdown bool
	logger   *slog.Logger
}

// FileSetOption configures a FileSet.
type FileSetOption func(*FileSet)

// WithMarkdownFile adds <prefix>_report.md to the set.
func WithMarkdownFile(enabled bool) FileSetOption {
	return func(s *FileSet) {
		s.markdown = enabled
	}
}

// WithFileSetLogger sets the logger.
func WithFileSetLogger(logger *slog.Logger) FileSetOption {
	return func(s *FileSet) {
		s.logger = logger
	}
}

// NewFileSet creates a FileSet for the output prefix.
func NewFileSet(prefix string, opts ...FileSetOption) *FileSet {
	s := &FileSet{prefix: prefix}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Path returns the file path for a suffix.
func (s *FileSet) Path(suffix string) string {
	return s.prefix + suffix
}

// Write writes every file of the set and returns the paths written.
// The parent directory of the prefix is created if needed.
func (s *FileSet) Write(result *model.Result) ([]string, error) {
	if dir := filepath.Dir(s.prefix); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	lockPath := s.Path(lockSuffix)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPrefixLocked, lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release report lock", "lock", lockPath, "error", err)
		}
		_ = os.Remove(lockPath)
	}()

	var written []string
	write := func(suffix string, w func(io.Writer) Writer) error {
		path := s.Path(suffix)
		if err := writeFile(path, w, result); err != nil {
			return err
		}
		written = append(written, path)
		s.logger.Debug("report file written", "path", path)
		return nil
	}

	if err := write(StatsSuffix, func(o io.Writer) Writer { return NewJSONWriter(o, WithPrettyPrint()) }); err != nil {
		return written, err
	}

	if len(result.Errors) > 0 {
		if err := write(ErrorsSuffix, func(o io.Writer) Writer { return NewErrorsCSVWriter(o) }); err != nil {
			return written, err
		}
	} else {
		s.logger.Info("no word-level errors to log", "skipped", s.Path(ErrorsSuffix))
		// A stale log from an earlier run would contradict the new stats.
		if err := os.Remove(s.Path(ErrorsSuffix)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("failed to remove stale error log: %w", err)
		}
	}

	if err := write(SubstitutionsSuffix, func(o io.Writer) Writer { return NewSubstitutionsCSVWriter(o) }); err != nil {
		return written, err
	}
	if err := write(PagesSuffix, func(o io.Writer) Writer { return NewPagesCSVWriter(o) }); err != nil {
		return written, err
	}
	if s.markdown {
		if err := write(MarkdownSuffix, func(o io.Writer) Writer { return NewMarkdownWriter(o) }); err != nil {
			return written, err
		}
	}

	return written, nil
}

// writeFile creates path and writes result through the writer built by newWriter.
func writeFile(path string, newWriter func(io.Writer) Writer, result *model.Result) (err error) {
	f, err := os.Create(path) //nolint:gosec // User-provided output prefix is intentional
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := newWriter(f).Write(result); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
