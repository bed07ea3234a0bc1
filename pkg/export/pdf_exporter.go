package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFontFamily = "body"
	pageWidth     = 277.0
	lineHeight    = 5.0
)

// PDFExporter renders datasets into a landscape table. Core PDF fonts only
// cover Latin-1, so Hangul needs a TTF supplied through FontPath.
type PDFExporter struct {
	FontPath string
}

// NewPDFExporter constructs a PDF exporter; fontPath may be empty.
func NewPDFExporter(fontPath string) *PDFExporter {
	return &PDFExporter{FontPath: fontPath}
}

// Render creates a PDF document with an optional title and table body.
// Multi-line cells grow their row.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)

	family := "Arial"
	if e.FontPath != "" {
		pdf.AddUTF8Font(pdfFontFamily, "", e.FontPath)
		pdf.AddUTF8Font(pdfFontFamily, "B", e.FontPath)
		family = pdfFontFamily
	}
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont(family, "B", 14)
		pdf.CellFormat(0, 10, data.Title, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	colWidth := pageWidth / float64(len(data.Headers))

	pdf.SetFont(family, "B", 10)
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, row := range data.Rows {
		row = pad(row, len(data.Headers))
		lines := 1
		for _, value := range row {
			if n := len(pdf.SplitText(flatten(value), colWidth-2)); n > lines {
				lines = n
			}
		}
		height := float64(lines) * lineHeight
		x, y := pdf.GetXY()
		for i, value := range row {
			pdf.Rect(x+float64(i)*colWidth, y, colWidth, height, "D")
			pdf.SetXY(x+float64(i)*colWidth, y)
			pdf.MultiCell(colWidth, lineHeight, flatten(value), "", "L", false)
		}
		pdf.SetXY(x, y+height)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// flatten keeps one line per subject so MultiCell wraps inside the column.
func flatten(value string) string {
	value = strings.ReplaceAll(value, "\n\n", "\n")
	return strings.TrimSpace(value)
}
