package document

import (
	"archive/zip"
	"errors"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// documentPart is the main body part inside a .docx archive.
const documentPart = "word/document.xml"

// Compiled XPath expressions over WordprocessingML.
// local-name() keeps the queries independent of the namespace prefix the
// producing application chose.
var (
	paragraphExpr = xpath.MustCompile(`//*[local-name()='body']//*[local-name()='p']`)
	textRunExpr   = xpath.MustCompile(`.//*[local-name()='t']`)
	pageBreakExpr = xpath.MustCompile(`.//*[local-name()='br'][@*[local-name()='type']='page']`)
)

// errNoBody is returned when an archive has no word/document.xml part.
var errNoBody = errors.New("missing " + documentPart)

// readDocx loads a Word document and splits it at hard page breaks.
// A page ends with the paragraph that holds the break.
func readDocx(path string) (model.Document, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return model.Document{}, &FormatError{Path: path, Format: "docx", Err: err}
		}
		return model.Document{}, openError(path, err)
	}
	defer archive.Close()

	var part *zip.File
	for _, f := range archive.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return model.Document{}, &FormatError{Path: path, Format: "docx", Err: errNoBody}
	}

	rc, err := part.Open()
	if err != nil {
		return model.Document{}, &FormatError{Path: path, Format: "docx", Err: err}
	}
	defer rc.Close()

	root, err := xmlquery.Parse(rc)
	if err != nil {
		return model.Document{}, &FormatError{Path: path, Format: "docx", Err: err}
	}

	pages := splitParagraphs(root)
	return model.Document{
		Path:  path,
		Text:  strings.Join(pages, "\n\n"),
		Pages: pages,
	}, nil
}

// splitParagraphs collects paragraph texts and groups them into pages.
func splitParagraphs(root *xmlquery.Node) []string {
	pages := []string{}
	var current []string

	for _, p := range xmlquery.QuerySelectorAll(root, paragraphExpr) {
		current = append(current, paragraphText(p))
		if xmlquery.QuerySelector(p, pageBreakExpr) != nil {
			pages = append(pages, strings.Join(current, "\n"))
			current = nil
		}
	}
	if len(current) > 0 {
		pages = append(pages, strings.Join(current, "\n"))
	}
	return pages
}

// paragraphText concatenates the text runs of a paragraph.
func paragraphText(p *xmlquery.Node) string {
	var sb strings.Builder
	for _, t := range xmlquery.QuerySelectorAll(p, textRunExpr) {
		sb.WriteString(t.InnerText())
	}
	return sb.String()
}
