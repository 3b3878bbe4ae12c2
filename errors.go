package resume2pdf

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Generator.Run matches exactly one of
// these through errors.Is.
var (
	ErrLoad       = errors.New("loading resume data failed")
	ErrTemplate   = errors.New("rendering template failed")
	ErrWrite      = errors.New("writing output failed")
	ErrConversion = errors.New("PDF conversion failed")
)

// Conversion failures. Each wraps ErrConversion.
var (
	ErrBrowserConnect  = fmt.Errorf("%w: failed to connect to browser", ErrConversion)
	ErrPageCreate      = fmt.Errorf("%w: failed to create browser page", ErrConversion)
	ErrPageLoad        = fmt.Errorf("%w: failed to load page", ErrConversion)
	ErrPDFGeneration   = fmt.Errorf("%w: PDF generation failed", ErrConversion)
	ErrMalformedMarkup = fmt.Errorf("%w: HTML has no content to print", ErrConversion)
)

// Option validation errors.
var (
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
	ErrInvalidBackend     = errors.New("invalid PDF backend")
)
