package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf for the configured UTF-8 font
	pdfFontName     = "ReportFont"
	pdfFallbackFont = "Arial"
)

type PDFFormatter struct {
	fontPath string
}

func NewPDFFormatter(fontPath string) *PDFFormatter {
	return &PDFFormatter{fontPath: fontPath}
}

// resolveFont registers the configured font when it exists.
// Without it the core Arial font is used, which cannot render CJK text.
func (pf *PDFFormatter) resolveFont(pdf *gofpdf.Fpdf) string {
	if pf.fontPath == "" {
		return pdfFallbackFont
	}
	if _, err := os.Stat(pf.fontPath); err != nil {
		return pdfFallbackFont
	}

	pdf.AddUTF8Font(pdfFontName, "", pf.fontPath)
	pdf.AddUTF8Font(pdfFontName, "B", pf.fontPath)
	return pdfFontName
}

func (pf *PDFFormatter) Format(text string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	fontName := pf.resolveFont(pdf)
	pdf.AddPage()

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, baseTitle)
	pdf.Ln(14)

	for _, l := range splitLines(text) {
		if l.heading {
			pdf.SetFont(fontName, "B", 14)
			_, h := pdf.GetFontSize()
			pdf.Ln(2)
			pdf.MultiCell(0, h*1.5, l.text, "", "", false)
			continue
		}

		pdf.SetFont(fontName, "", 11)
		_, h := pdf.GetFontSize()
		pdf.MultiCell(0, h*1.5, l.text, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
