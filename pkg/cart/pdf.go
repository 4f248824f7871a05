package cart

import (
	"bytes"

	"github.com/phpdave11/gofpdf"
)

const (
	pdfHeader      = "Shopping list"
	headerFontSize = 16
	bodyFontSize   = 12
)

// RenderPDF turns pre-formatted shopping-list lines into a PDF document.
// The aggregation that produces the lines has no rendering concerns.
func RenderPDF(lines []string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", headerFontSize)
	pdf.Cell(0, 10, pdfHeader)
	pdf.Ln(14)

	pdf.SetFont("Arial", "", bodyFontSize)
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
