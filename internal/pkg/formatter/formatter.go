package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/insurance-advisor/internal/entity"
)

const (
	baseTitle     = "保險規劃報告"
	headingPrefix = "## "
)

type Formatter interface {
	Format(plainText string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct {
	fontPath string
}

// NewFactory creates a formatter factory. fontPath points to a UTF-8 TrueType
// font for PDF output and may be empty.
func NewFactory(fontPath string) *Factory {
	return &Factory{fontPath: fontPath}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.ResultFormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.ResultFormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.ResultFormatPDF:
		return NewPDFFormatter(f.fontPath), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}

// line is one line of report text, classified for the binary formats
type line struct {
	text    string
	heading bool
}

func splitLines(text string) []line {
	raw := strings.Split(strings.TrimRight(text, "\n"), "\n")
	out := make([]line, 0, len(raw))
	for _, r := range raw {
		if h, ok := strings.CutPrefix(r, headingPrefix); ok {
			out = append(out, line{text: h, heading: true})
			continue
		}
		out = append(out, line{text: r})
	}
	return out
}
