package resume2pdf

import (
	"fmt"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// paperSizes holds portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Comparison is case-insensitive and p is not modified.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// Dimensions returns paper width and height in inches, swapped for
// landscape. Call Validate first; nil or unknown sizes fall back to letter.
func (p *PageSettings) Dimensions() (width, height float64) {
	if p == nil {
		p = DefaultPageSettings()
	}
	size, ok := paperSizes[strings.ToLower(p.Size)]
	if !ok {
		size = paperSizes[PageSizeLetter]
	}
	width, height = size[0], size[1]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

// margin returns the margin, or DefaultMargin for nil settings.
func (p *PageSettings) margin() float64 {
	if p == nil {
		return DefaultMargin
	}
	return p.Margin
}

// Stage identifies a step of the generation pipeline.
type Stage int

// Pipeline stages in execution order.
const (
	StageLoad Stage = iota
	StageRender
	StageWriteHTML
	StageConvert
	StageWritePDF
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageRender:
		return "render"
	case StageWriteHTML:
		return "write html"
	case StageConvert:
		return "convert"
	case StageWritePDF:
		return "write pdf"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// StageError reports the pipeline stage that failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage.String() + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result describes the files produced by a successful run.
type Result struct {
	HTMLPath  string
	PDFPath   string
	HTMLBytes int
	PDFBytes  int

	// Unresolved lists placeholder names that had no binding and were
	// left verbatim in the output.
	Unresolved []string
}
