package resume2pdf

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-resume2pdf/internal/process"
)

// PDFConverter prints a stored HTML file to PDF.
type PDFConverter interface {
	ToPDF(ctx context.Context, htmlPath string) ([]byte, error)
	Close() error
}

// Backend names accepted by NewPDFConverter.
const (
	BackendRod      = "rod"
	BackendChromedp = "chromedp"
)

// DefaultTimeout bounds a single conversion when none is configured.
const DefaultTimeout = 30 * time.Second

// ConverterOptions configures NewPDFConverter.
type ConverterOptions struct {
	Backend    string        // "rod" (default) or "chromedp"
	Timeout    time.Duration // per conversion; 0 = DefaultTimeout
	BrowserBin string        // Chrome executable; empty = ROD_BROWSER_BIN or auto-detect
	NoSandbox  bool          // also enabled by ROD_NO_SANDBOX=1 or CI=true
	Page       *PageSettings // nil = DefaultPageSettings
}

// NewPDFConverter returns the converter for opts.Backend.
// The browser is started lazily on the first ToPDF call.
func NewPDFConverter(opts ConverterOptions) (PDFConverter, error) {
	if opts.Page == nil {
		opts.Page = DefaultPageSettings()
	}
	if err := opts.Page.Validate(); err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.BrowserBin == "" {
		opts.BrowserBin = os.Getenv("ROD_BROWSER_BIN")
	}
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" {
		opts.NoSandbox = true
	}

	switch strings.ToLower(opts.Backend) {
	case "", BackendRod:
		return newRodConverter(opts), nil
	case BackendChromedp:
		return newChromedpConverter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidBackend, opts.Backend, BackendRod, BackendChromedp)
	}
}

// fileURL turns a local path into a file:// URL Chrome can open.
func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if !strings.HasPrefix(u.Path, "/") {
		// Windows drive letters: file:///C:/...
		u.Path = "/" + u.Path
	}
	return u.String(), nil
}

// rodConverter prints through headless Chrome driven by go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodConverter struct {
	opts     ConverterOptions
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newRodConverter(opts ConverterOptions) *rodConverter {
	return &rodConverter{opts: opts}
}

// ensureBrowser lazily launches and connects to the browser. ctx bounds the
// launch (including a first-run download) and the connection; the browser
// itself outlives it.
func (c *rodConverter) ensureBrowser(ctx context.Context) error {
	if c.browser != nil {
		return nil
	}

	l := launcher.New().Context(ctx)
	if c.opts.BrowserBin != "" {
		l = l.Bin(c.opts.BrowserBin)
	}
	if c.opts.NoSandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return browserConnectError(ctx, err)
	}
	c.launcher = l

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		c.killLauncher()
		return browserConnectError(ctx, err)
	}
	c.browser = browser.Context(context.Background())
	return nil
}

// browserConnectError keeps a context error in the chain so callers can
// tell a timeout or interrupt from a broken browser.
func browserConnectError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ErrBrowserConnect, ctxErr)
	}
	return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
}

// ToPDF opens htmlPath in a new tab, waits for load, and prints it.
func (c *rodConverter) ToPDF(ctx context.Context, htmlPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := fileURL(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	if err := c.ensureBrowser(ctx); err != nil {
		return nil, err
	}

	page, err := c.browser.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx)
	if err := page.WaitLoad(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrPageLoad, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(c.printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

func (c *rodConverter) printOptions() *proto.PagePrintToPDF {
	width, height := c.opts.Page.Dimensions()
	margin := c.opts.Page.margin()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}
}

// Close shuts the browser down and kills its process tree.
func (c *rodConverter) Close() error {
	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	c.killLauncher()
	return err
}

func (c *rodConverter) killLauncher() {
	if c.launcher == nil {
		return
	}
	process.KillProcessGroup(c.launcher.PID())
	c.launcher.Kill()
	c.launcher = nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// Compile-time interface check.
var _ PDFConverter = (*rodConverter)(nil)
