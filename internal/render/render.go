// Package render fills Jinja-style templates with resume data using pongo2.
//
// Templates live in a single directory; {% include %} and {% extends %}
// resolve inside it and can never reach files outside. The document's
// top-level keys become template variables.
package render

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/internal/document"
	"github.com/alnah/go-resume2pdf/internal/markup"
)

// Sentinel errors for rendering.
var (
	ErrTemplateDir      = errors.New("invalid template directory")
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateParse    = errors.New("template parse failed")
	ErrTemplateExecute  = errors.New("template execution failed")
	ErrNotMapping       = errors.New("document root must be a mapping")
)

// DefaultTemplateName is the template rendered when none is configured.
const DefaultTemplateName = "resume.html.j2"

var registerFilters sync.Once

// Renderer renders templates from one directory.
type Renderer struct {
	source assets.TemplateSource
	set    *pongo2.TemplateSet
	styles assets.AssetLoader
	now    func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyles sets the loader behind the stylesheet() template function.
func WithStyles(loader assets.AssetLoader) Option {
	return func(r *Renderer) { r.styles = loader }
}

// WithClock sets the time source for the now variable.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// New creates a Renderer for templates in dir.
// Returns ErrTemplateDir if dir is not a readable directory.
func New(dir string, opts ...Option) (*Renderer, error) {
	fsLoader, err := assets.NewFilesystemLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateDir, err)
	}
	return NewWithSource(fsLoader, opts...), nil
}

// NewWithSource creates a Renderer reading templates from source.
func NewWithSource(source assets.TemplateSource, opts ...Option) *Renderer {
	registerFilters.Do(registerDefaultFilters)

	r := &Renderer{
		source: source,
		styles: assets.NewEmbeddedLoader(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.set = pongo2.NewSet("resume", &templateLoader{source: source})
	r.set.Globals["stylesheet"] = r.stylesheet
	return r
}

// Render executes the named template with doc's top-level entries as
// variables. doc must be a mapping.
func (r *Renderer) Render(doc document.Value, name string) (string, error) {
	if doc.Kind() != document.KindMapping {
		return "", fmt.Errorf("%w: got %s", ErrNotMapping, doc.Kind())
	}
	if name == "" {
		name = DefaultTemplateName
	}

	// Checked up front so a missing file is reported as such rather than
	// as a pongo2 parse error.
	if _, err := r.source.LoadTemplate(name); err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) {
			return "", fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
		}
		return "", fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	tpl, err := r.set.FromFile(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}

	ctx := pongo2.Context{}
	if data, ok := templateValue(doc.Native()).(map[string]any); ok {
		ctx.Update(pongo2.Context(data))
	}
	if _, set := ctx["now"]; !set {
		ctx["now"] = r.now()
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateExecute, name, err)
	}
	return out, nil
}

// decimal prints in shortest round-trip form (3.0, 1500000.0) instead of
// pongo2's fixed six-digit float format, while still comparing as a number.
type decimal float64

func (d decimal) String() string {
	return document.FormatFloat(float64(d))
}

func templateValue(v any) any {
	switch x := v.(type) {
	case float64:
		return decimal(x)
	case []any:
		for i := range x {
			x[i] = templateValue(x[i])
		}
		return x
	case map[string]any:
		for k, item := range x {
			x[k] = templateValue(item)
		}
		return x
	}
	return v
}

// stylesheet is exposed to templates as stylesheet("name").
func (r *Renderer) stylesheet(name string) (*pongo2.Value, error) {
	css, err := r.styles.LoadStyle(name)
	if err != nil {
		return nil, err
	}
	return pongo2.AsSafeValue(css), nil
}

// templateLoader adapts a TemplateSource to pongo2.TemplateLoader.
// Paths are kept relative to the template root; includes resolve against
// the including template's directory.
type templateLoader struct {
	source assets.TemplateSource
}

func (l *templateLoader) Abs(base, name string) string {
	if base != "" && (strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../")) {
		return path.Join(path.Dir(base), name)
	}
	// Leading slashes are kept so LoadTemplate rejects them as absolute.
	return name
}

func (l *templateLoader) Get(p string) (io.Reader, error) {
	content, err := l.source.LoadTemplate(p)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(content), nil
}

var markdownConverter = markup.NewConverter()

func registerDefaultFilters() {
	if !pongo2.FilterExists("markdown") {
		_ = pongo2.RegisterFilter("markdown", filterMarkdown)
	}
	if !pongo2.FilterExists("markdown_inline") {
		_ = pongo2.RegisterFilter("markdown_inline", filterMarkdownInline)
	}
}

func filterMarkdown(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	out, err := markdownConverter.ToHTML(in.String())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:markdown", OrigError: err}
	}
	return pongo2.AsSafeValue(out), nil
}

func filterMarkdownInline(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	out, err := markdownConverter.ToInlineHTML(in.String())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:markdown_inline", OrigError: err}
	}
	return pongo2.AsSafeValue(out), nil
}

// Compile-time interface check.
var _ pongo2.TemplateLoader = (*templateLoader)(nil)
