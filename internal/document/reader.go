package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// utf8BOM is stripped from the start of text files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads documents by file extension.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read loads the document at path.
// Missing or unreadable files return an error wrapping ErrNotFound.
func (r *Reader) Read(path string) (model.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return readDocx(path)
	case ".doc", ".odt", ".pdf":
		return model.Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	default:
		return readText(path)
	}
}

// readText loads a UTF-8 text file.
func readText(path string) (model.Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return model.Document{}, openError(path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	return model.Document{Path: path, Text: text}, nil
}

// openError classifies a failure to open path.
func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, path, pathErr.Err)
	}
	return fmt.Errorf("failed to read %s: %w", path, err)
}
