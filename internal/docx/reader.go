// Package docx extracts plain text from Word (.docx) documents.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CellSeparator joins the cells of one table row
const CellSeparator = " | "

const documentPart = "word/document.xml"

// ErrNoDocumentPart indicates the archive has no main document part
var ErrNoDocumentPart = errors.New("docx: missing " + documentPart)

// Reader turns a document into a single text blob
type Reader interface {
	Text(path string) (string, error)
}

// Unavailable is the Reader used when document parsing is switched off.
// It yields no text so callers see an empty document.
type Unavailable struct{}

func (Unavailable) Text(string) (string, error) {
	return "", nil
}

// OOXMLReader reads the WordprocessingML body of a .docx archive.
// Output is every body paragraph in order, then every table row with
// its cells joined by CellSeparator, one entry per line.
type OOXMLReader struct{}

func (OOXMLReader) Text(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s in %s: %w", documentPart, path, err)
		}
		defer rc.Close()

		text, err := ParseDocumentXML(rc)
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", path, err)
		}
		return text, nil
	}

	return "", fmt.Errorf("%s: %w", path, ErrNoDocumentPart)
}

// ParseDocumentXML converts a word/document.xml stream to text
func ParseDocumentXML(r io.Reader) (string, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return "", err
	}

	lines := make([]string, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		lines = append(lines, p.Text)
	}

	for _, tbl := range doc.Body.Tables {
		var above []string
		for _, row := range tbl.Rows {
			cells := row.gridTexts(above)
			lines = append(lines, strings.Join(cells, CellSeparator))
			above = cells
		}
	}

	return strings.Join(lines, "\n"), nil
}

type xmlDocument struct {
	Body xmlBody `xml:"body"`
}

// Only direct children of the body count; paragraphs inside tables
// are reached through the table rows.
type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"p"`
	Tables     []xmlTable     `xml:"tbl"`
}

type xmlTable struct {
	Rows []xmlRow `xml:"tr"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"tc"`
}

// gridTexts lays the row's cells out on the table grid. A cell spanning
// several grid columns repeats its text in each, and a vertically merged
// continuation cell takes the text from the same column of the row above.
func (r xmlRow) gridTexts(above []string) []string {
	texts := make([]string, 0, len(r.Cells))
	for _, cell := range r.Cells {
		text := cell.text()
		if cell.Props.VMerge != nil && cell.Props.VMerge.continues() {
			text = ""
			if col := len(texts); col < len(above) {
				text = above[col]
			}
		}
		for i := 0; i < cell.Props.span(); i++ {
			texts = append(texts, text)
		}
	}
	return texts
}

type xmlCell struct {
	Props      xmlCellProps   `xml:"tcPr"`
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlCellProps struct {
	GridSpan *xmlIntVal `xml:"gridSpan"`
	VMerge   *xmlVMerge `xml:"vMerge"`
}

func (p xmlCellProps) span() int {
	if p.GridSpan == nil || p.GridSpan.Val < 1 {
		return 1
	}
	return p.GridSpan.Val
}

type xmlIntVal struct {
	Val int `xml:"val,attr"`
}

// A vMerge without a val, or with val="continue", continues the cell above
type xmlVMerge struct {
	Val string `xml:"val,attr"`
}

func (v xmlVMerge) continues() bool {
	return v.Val == "" || v.Val == "continue"
}

func (c xmlCell) text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}

type xmlParagraph struct {
	Text string
}

// UnmarshalXML collects run text. Properties and text boxes are skipped
// so tab stops and floating content do not leak into the paragraph.
func (p *xmlParagraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr", "rPr", "txbxContent":
				if err := d.Skip(); err != nil {
					return err
				}
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				b.WriteString(s)
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name == start.Name {
				p.Text = b.String()
				return nil
			}
		}
	}
}
