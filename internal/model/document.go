package model

// Document is one transcription loaded for comparison.
type Document struct {
	// Path is where the document was read from.
	Path string

	// Text is the full document text.
	Text string

	// Pages holds the page texts when the source format carries explicit
	// page breaks. Nil means the text still has to be split into pages.
	Pages []string
}

// IsPaged reports whether the document is already split into pages.
func (d Document) IsPaged() bool {
	return d.Pages != nil
}
