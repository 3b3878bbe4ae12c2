package resume2pdf

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// chromedpConverter prints through a Chrome instance started by chromedp's
// exec allocator. It needs a local Chrome or Chromium; nothing is downloaded.
type chromedpConverter struct {
	opts ConverterOptions

	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

func newChromedpConverter(opts ConverterOptions) *chromedpConverter {
	return &chromedpConverter{opts: opts}
}

func (c *chromedpConverter) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.opts.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if c.opts.BrowserBin != "" {
		opts = append(opts, chromedp.ExecPath(c.opts.BrowserBin))
	}
	return opts
}

// ensureBrowser starts Chrome once; later calls reuse the same browser.
// The browser context cannot descend from ctx, so a launch still pending
// when ctx ends is torn down instead.
func (c *chromedpConverter) ensureBrowser(ctx context.Context) error {
	if c.browserCtx != nil {
		return nil
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), c.allocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Run with no actions only launches the browser.
	launched := make(chan error, 1)
	go func() { launched <- chromedp.Run(browserCtx) }()

	select {
	case err := <-launched:
		if err != nil {
			cancelBrowser()
			cancelAlloc()
			return browserConnectError(ctx, err)
		}
	case <-ctx.Done():
		cancelBrowser()
		cancelAlloc()
		return browserConnectError(ctx, ctx.Err())
	}

	c.browserCtx = browserCtx
	c.cancelBrowser = cancelBrowser
	c.cancelAlloc = cancelAlloc
	return nil
}

// ToPDF opens htmlPath in a new tab, waits for the body, and prints it.
func (c *chromedpConverter) ToPDF(ctx context.Context, htmlPath string) ([]byte, error) {
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

	deadline, _ := ctx.Deadline()
	tabCtx, cancelTab := chromedp.NewContext(c.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithDeadline(tabCtx, deadline)
	defer cancelTimeout()
	// Tab contexts must descend from the browser context, so the caller's
	// cancellation is forwarded instead of inherited.
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
	); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}

	width, height := c.opts.Page.Dimensions()
	margin := c.opts.Page.margin()

	var pdf []byte
	err = chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(width).
			WithPaperHeight(height).
			WithMarginTop(margin).
			WithMarginBottom(margin).
			WithMarginLeft(margin).
			WithMarginRight(margin).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// Close shuts the browser down.
func (c *chromedpConverter) Close() error {
	if c.browserCtx == nil {
		return nil
	}
	err := chromedp.Cancel(c.browserCtx)
	c.cancelBrowser()
	c.cancelAlloc()
	c.browserCtx = nil
	return err
}

// Compile-time interface check.
var _ PDFConverter = (*chromedpConverter)(nil)
