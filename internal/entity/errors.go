package entity

import "errors"

// Domain errors
var (
	// Profile errors
	ErrMissingField = errors.New("required field is missing")

	// Backend errors
	ErrBackendUnreachable = errors.New("backend service is unreachable")

	// Report errors
	ErrUnsupportedFormat = errors.New("unsupported report format")
	ErrEmptyReport       = errors.New("report is empty")

	// Request errors
	ErrInvalidParameter = errors.New("invalid parameter")
)

type ResultFormat string

const (
	ResultFormatMarkdown ResultFormat = "markdown"
	ResultFormatPDF      ResultFormat = "pdf"
	ResultFormatDOCX     ResultFormat = "docx"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case ResultFormatMarkdown, ResultFormatPDF, ResultFormatDOCX:
		return true
	}
	return false
}
