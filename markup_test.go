package resume2pdf

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestCheckPrintable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		wantErr error
	}{
		{
			name: "element in body",
			html: "<html><body><h1>Jane</h1></body></html>",
		},
		{
			name: "text only body",
			html: "<html><body>Jane Doe</body></html>",
		},
		{
			name: "fragment without body tag",
			html: "<p>Jane</p>",
		},
		{
			name:    "empty body",
			html:    "<html><head><title>x</title></head><body></body></html>",
			wantErr: ErrMalformedMarkup,
		},
		{
			name:    "whitespace body",
			html:    "<html><body>\n   \t</body></html>",
			wantErr: ErrMalformedMarkup,
		},
		{
			name:    "empty file",
			html:    "",
			wantErr: ErrMalformedMarkup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "resume.html")
			mustWrite(t, path, tt.html)

			err := checkPrintable(path)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("checkPrintable() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("checkPrintable() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrConversion) {
				t.Errorf("checkPrintable() error = %v, want ErrConversion", err)
			}
		})
	}
}

func TestCheckPrintable_MissingFile(t *testing.T) {
	t.Parallel()

	err := checkPrintable(filepath.Join(t.TempDir(), "nope.html"))
	if !errors.Is(err, ErrPageLoad) {
		t.Errorf("checkPrintable() error = %v, want ErrPageLoad", err)
	}
}

func TestDocumentTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		html string
		want string
	}{
		{"<html><head><title> Jane Doe </title></head><body></body></html>", "Jane Doe"},
		{"<title>First</title><title>Second</title>", "First"},
		{"<html><body><h1>No title</h1></body></html>", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := documentTitle(tt.html); got != tt.want {
			t.Errorf("documentTitle(%q) = %q, want %q", tt.html, got, tt.want)
		}
	}
}
