package document

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a document does not exist or cannot be opened.
	ErrNotFound = errors.New("document not found")

	// ErrUnsupportedFormat is returned for file types the reader cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// FormatError reports a document that exists but could not be decoded.
type FormatError struct {
	// Path is the document path.
	Path string

	// Format is the detected format, e.g. "docx".
	Format string

	// Err is the underlying decoding error.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s document %s: %v", e.Format, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}
