package resume2pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/internal/document"
	"github.com/alnah/go-resume2pdf/internal/fileutil"
	"github.com/alnah/go-resume2pdf/internal/placeholder"
	"github.com/alnah/go-resume2pdf/internal/render"
)

// Default locations, relative to the working directory.
const (
	DefaultTemplatesDir = "templates"
	DefaultTemplateName = render.DefaultTemplateName
	DefaultHTMLPath     = "output/resume.html"
	DefaultPDFPath      = "output/resume.pdf"
)

// Renderer turns a resume document into HTML using a named template.
type Renderer interface {
	Render(doc document.Value, name string) (string, error)
}

// Logger receives progress messages. Printf-style.
type Logger func(format string, args ...any)

// Paths locates the inputs and outputs of a run.
// Empty fields take the Default* values.
type Paths struct {
	Data      string
	Templates string
	Template  string
	Assets    string // custom styles directory; empty = embedded only
	HTML      string
	PDF       string
}

func (p Paths) withDefaults() Paths {
	if p.Data == "" {
		p.Data = DefaultDataPath
	}
	if p.Templates == "" {
		p.Templates = DefaultTemplatesDir
	}
	if p.Template == "" {
		p.Template = DefaultTemplateName
	}
	if p.HTML == "" {
		p.HTML = DefaultHTMLPath
	}
	if p.PDF == "" {
		p.PDF = DefaultPDFPath
	}
	return p
}

// Generator runs load, render, write HTML, convert, and write PDF in order.
// A failed stage stops the run; files already written stay on disk.
type Generator struct {
	paths     Paths
	renderer  Renderer
	converter PDFConverter
	convOpts  ConverterOptions
	bindings  placeholder.Bindings
	now       func() time.Time
	log       Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRenderer sets the template renderer. By default templates are read
// from Paths.Templates with pongo2.
func WithRenderer(r Renderer) Option {
	return func(g *Generator) { g.renderer = r }
}

// WithConverter sets the PDF converter. The caller keeps ownership and must
// Close it. By default a converter is built from WithConverterOptions and
// closed at the end of Run.
func WithConverter(c PDFConverter) Option {
	return func(g *Generator) { g.converter = c }
}

// WithConverterOptions configures the default converter.
func WithConverterOptions(opts ConverterOptions) Option {
	return func(g *Generator) { g.convOpts = opts }
}

// WithBindings sets placeholder values. By default they are read from
// os.Environ when Run starts.
func WithBindings(b placeholder.Bindings) Option {
	return func(g *Generator) { g.bindings = b }
}

// WithClock sets the time source exposed to templates as now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLogger sets the progress logger.
func WithLogger(l Logger) Option {
	return func(g *Generator) { g.log = l }
}

// NewGenerator creates a Generator for paths.
func NewGenerator(paths Paths, opts ...Option) *Generator {
	g := &Generator{
		paths: paths.withDefaults(),
		now:   time.Now,
		log:   func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run executes the pipeline once. Errors are *StageError values wrapping
// ErrLoad, ErrTemplate, ErrWrite, or ErrConversion.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	bindings := g.bindings
	if bindings == nil {
		bindings = placeholder.FromEnviron(os.Environ())
	}
	res := &Result{HTMLPath: g.paths.HTML, PDFPath: g.paths.PDF}

	// Load
	raw, err := readDocument(g.paths.Data)
	if err != nil {
		return nil, &StageError{Stage: StageLoad, Err: err}
	}
	res.Unresolved = placeholder.Unresolved(raw, bindings)
	doc := placeholder.Substitute(raw, bindings)
	g.log("loaded %s (%d top-level keys)", g.paths.Data, doc.Len())
	if len(res.Unresolved) > 0 {
		g.log("unresolved placeholders kept verbatim: %v", res.Unresolved)
	}

	// Render
	renderer, err := g.rendererFor()
	if err != nil {
		return nil, &StageError{Stage: StageRender, Err: err}
	}
	html, err := renderer.Render(doc, g.paths.Template)
	if err != nil {
		return nil, &StageError{Stage: StageRender, Err: wrapKind(ErrTemplate, err)}
	}
	if title := documentTitle(html); title != "" {
		g.log("rendered %q with %s", title, g.paths.Template)
	} else {
		g.log("rendered %s", g.paths.Template)
	}

	// Write HTML
	if err := fileutil.WriteFile(g.paths.HTML, []byte(html)); err != nil {
		return nil, &StageError{Stage: StageWriteHTML, Err: wrapKind(ErrWrite, err)}
	}
	res.HTMLBytes = len(html)
	g.log("wrote %s (%d bytes)", g.paths.HTML, res.HTMLBytes)

	// Convert
	pdf, err := g.convert(ctx)
	if err != nil {
		return res, &StageError{Stage: StageConvert, Err: wrapKind(ErrConversion, err)}
	}

	// Write PDF
	if err := fileutil.WriteFile(g.paths.PDF, pdf); err != nil {
		return res, &StageError{Stage: StageWritePDF, Err: wrapKind(ErrWrite, err)}
	}
	res.PDFBytes = len(pdf)
	g.log("wrote %s (%d bytes)", g.paths.PDF, res.PDFBytes)

	return res, nil
}

func (g *Generator) rendererFor() (Renderer, error) {
	if g.renderer != nil {
		return g.renderer, nil
	}

	styles, err := assets.NewAssetResolver(g.paths.Assets)
	if err != nil {
		return nil, wrapKind(ErrTemplate, err)
	}
	if dir := styles.CustomDir(); dir != "" {
		g.log("styles from %s, built-in styles as fallback", dir)
	}
	r, err := render.New(g.paths.Templates, render.WithStyles(styles), render.WithClock(g.now))
	if err != nil {
		return nil, wrapKind(ErrTemplate, err)
	}
	return r, nil
}

func (g *Generator) convert(ctx context.Context) ([]byte, error) {
	if err := checkPrintable(g.paths.HTML); err != nil {
		return nil, err
	}

	conv := g.converter
	if conv == nil {
		var err error
		conv, err = NewPDFConverter(g.convOpts)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := conv.Close(); cerr != nil {
				g.log("closing browser: %v", cerr)
			}
		}()
	}

	g.log("converting %s to PDF", g.paths.HTML)
	return conv.ToPDF(ctx, g.paths.HTML)
}

// wrapKind makes err match kind through errors.Is while keeping the
// original chain.
func wrapKind(kind, err error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
