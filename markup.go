package resume2pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// checkPrintable rejects an HTML file whose body has neither elements nor
// text, which Chrome would print as a blank page.
func checkPrintable(htmlPath string) error {
	f, err := os.Open(htmlPath) // #nosec G304 -- path is the HTML output just written
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer func() { _ = f.Close() }()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}

	body := doc.Find("body")
	if body.Children().Length() == 0 && strings.TrimSpace(body.Text()) == "" {
		return fmt.Errorf("%w: %s", ErrMalformedMarkup, htmlPath)
	}
	return nil
}

// documentTitle returns the trimmed <title> text, or "" when absent.
func documentTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
