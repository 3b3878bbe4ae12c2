// Package markup turns short Markdown fields of a resume into safe HTML
// fragments for templates.
package markup

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdown indicates Markdown rendering failed.
var ErrMarkdown = errors.New("markdown rendering failed")

// Converter renders Markdown to sanitized HTML fragments.
type Converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// Option configures a Converter.
type Option func(*converterConfig)

type converterConfig struct {
	hardWraps bool
}

// WithHardWraps treats single newlines as line breaks.
func WithHardWraps() Option {
	return func(c *converterConfig) { c.hardWraps = true }
}

// NewConverter creates a Converter with GFM, footnotes, and chroma
// highlighting for fenced code blocks. Output goes through the bluemonday
// UGC policy; chroma's class attributes are kept so stylesheets can color code.
func NewConverter(opts ...Option) *Converter {
	var cfg converterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rendererOpts := []goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
	}
	if cfg.hardWraps {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithHardWraps()))
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()

	return &Converter{
		md:     goldmark.New(rendererOpts...),
		policy: policy,
	}
}

// ToHTML converts Markdown to a sanitized HTML fragment (no <html> wrapper).
func (c *Converter) ToHTML(content string) (string, error) {
	if content == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdown, err)
	}
	return c.policy.Sanitize(buf.String()), nil
}

// ToInlineHTML converts Markdown and strips a single wrapping paragraph,
// for fields rendered inside an existing block such as <li>.
func (c *Converter) ToInlineHTML(content string) (string, error) {
	out, err := c.ToHTML(content)
	if err != nil {
		return "", err
	}
	trimmed := bytes.TrimSpace([]byte(out))
	if bytes.HasPrefix(trimmed, []byte("<p>")) && bytes.HasSuffix(trimmed, []byte("</p>")) &&
		bytes.Count(trimmed, []byte("<p>")) == 1 {
		return string(trimmed[len("<p>") : len(trimmed)-len("</p>")]), nil
	}
	return out, nil
}
