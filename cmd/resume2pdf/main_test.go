package main

// Notes:
// - runMain tests chdir into a temp project and point XDG_CONFIG_HOME at an
//   empty dir, so they cannot run in parallel.
// - The browser is replaced by fakeConverter; real conversions are covered by
//   the root package integration tests.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	resume2pdf "github.com/alnah/go-resume2pdf"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type fakeConverter struct {
	pdf    []byte
	err    error
	calls  int
	closed bool
}

func (c *fakeConverter) ToPDF(_ context.Context, htmlPath string) ([]byte, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	if _, err := os.Stat(htmlPath); err != nil {
		return nil, err
	}
	return c.pdf, nil
}

func (c *fakeConverter) Close() error {
	c.closed = true
	return nil
}

type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	conv     *fakeConverter
	convOpts resume2pdf.ConverterOptions
}

func newTestEnv(environ ...string) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		conv:   &fakeConverter{pdf: []byte("%PDF-1.4 fake")},
	}
	te.Environment = &Environment{
		Now:     func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) },
		Stdout:  te.stdout,
		Stderr:  te.stderr,
		Environ: func() []string { return environ },
		NewConverter: func(opts resume2pdf.ConverterOptions) (resume2pdf.PDFConverter, error) {
			te.convOpts = opts
			return te.conv, nil
		},
	}
	return te
}

const testTemplate = "<html><head><title>{{ name }}</title></head><body><h1>{{ name }}</h1><p>{{ email }}</p></body></html>"

// setupProject writes files under a temp dir and makes it the working
// directory for the test.
func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(dir)
	return dir
}

func defaultProject() map[string]string {
	files := make(map[string]string)
	files["data/resume.json"] = `{"name": "${FULLNAME}", "email": "${EMAIL}"}`
	files["data/other/resume.json"] = `{"name": "Other", "email": "o@example.com"}`
	files["templates/resume.html.j2"] = testTemplate
	files["templates/unused.html.j2"] = "<p>unused</p>"
	files["templates/alt/resume.html.j2"] = "<html><body><h2>{{ name }}</h2></body></html>"
	files[".env"] = "FULLNAME=Jane Doe\nEMAIL=jane@example.com\n"
	return files
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestRunMain - End-to-end with a fake converter
// ---------------------------------------------------------------------------

func TestRunMain_NoArguments(t *testing.T) {
	setupProject(t, defaultProject())
	te := newTestEnv()

	if code := runMain(nil, te.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d; stderr:\n%s", code, ExitSuccess, te.stderr)
	}

	html := readOutput(t, filepath.Join("output", "resume.html"))
	if !strings.Contains(html, "<h1>Jane Doe</h1>") || !strings.Contains(html, "jane@example.com") {
		t.Errorf("HTML missing substituted values:\n%s", html)
	}
	if pdf := readOutput(t, filepath.Join("output", "resume.pdf")); pdf != "%PDF-1.4 fake" {
		t.Errorf("PDF = %q, want converter output", pdf)
	}

	out := te.stdout.String()
	for _, want := range []string{
		"Resume HTML generated at " + filepath.Join("output", "resume.html"),
		"Resume PDF generated at " + filepath.Join("output", "resume.pdf"),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	if !te.conv.closed {
		t.Error("converter was not closed")
	}
	if te.convOpts.Backend != resume2pdf.BackendRod || te.convOpts.Timeout != 30*time.Second {
		t.Errorf("converter options = %+v, want rod with 30s", te.convOpts)
	}
}

func TestRunMain_ProcessEnvironmentWins(t *testing.T) {
	setupProject(t, defaultProject())
	te := newTestEnv("FULLNAME=John Roe")

	if code := runMain(nil, te.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d; stderr:\n%s", code, te.stderr)
	}

	html := readOutput(t, filepath.Join("output", "resume.html"))
	if !strings.Contains(html, "<h1>John Roe</h1>") {
		t.Errorf("process variable should override .env:\n%s", html)
	}
	if !strings.Contains(html, "jane@example.com") {
		t.Errorf(".env variable not applied:\n%s", html)
	}
}

func TestRunMain_UnresolvedWarning(t *testing.T) {
	files := defaultProject()
	delete(files, ".env")
	setupProject(t, files)
	te := newTestEnv("EMAIL=jane@example.com")

	if code := runMain(nil, te.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d; stderr:\n%s", code, te.stderr)
	}

	html := readOutput(t, filepath.Join("output", "resume.html"))
	if !strings.Contains(html, "<h1>${FULLNAME}</h1>") {
		t.Errorf("unbound placeholder should be kept:\n%s", html)
	}
	if !strings.Contains(te.stderr.String(), "FULLNAME") {
		t.Errorf("stderr should name the unresolved variable:\n%s", te.stderr)
	}
}

func TestRunMain_Flags(t *testing.T) {
	setupProject(t, defaultProject())
	te := newTestEnv()

	args := []string{
		"--data", filepath.Join("data", "other", "resume.json"),
		"--templates", filepath.Join("templates", "alt"),
		"-o", "build",
		"--backend", "chromedp",
		"--timeout", "2m",
	}
	if code := runMain(args, te.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d; stderr:\n%s", code, te.stderr)
	}

	html := readOutput(t, filepath.Join("build", "resume.html"))
	if !strings.Contains(html, "<h2>Other</h2>") {
		t.Errorf("flags not applied:\n%s", html)
	}
	if te.convOpts.Backend != resume2pdf.BackendChromedp || te.convOpts.Timeout != 2*time.Minute {
		t.Errorf("converter options = %+v, want chromedp with 2m", te.convOpts)
	}
}

func TestRunMain_ConfigFile(t *testing.T) {
	files := defaultProject()
	files["resume2pdf.yaml"] = `
templates:
  name: unused.html.j2
output:
  dir: dist
page:
  size: a4
  margin: 1
`
	setupProject(t, files)
	te := newTestEnv()

	if code := runMain(nil, te.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d; stderr:\n%s", code, te.stderr)
	}

	if html := readOutput(t, filepath.Join("dist", "resume.html")); html != "<p>unused</p>" {
		t.Errorf("HTML = %q, want unused template output", html)
	}
	if page := te.convOpts.Page; page == nil || page.Size != "a4" || page.Margin != 1 {
		t.Errorf("page = %+v, want a4 with 1in margin", page)
	}

	// Flags win over the config file.
	te = newTestEnv()
	if code := runMain([]string{"--template", "resume.html.j2"}, te.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d; stderr:\n%s", code, te.stderr)
	}
	if html := readOutput(t, filepath.Join("dist", "resume.html")); !strings.Contains(html, "<h1>Jane Doe</h1>") {
		t.Errorf("--template did not override config:\n%s", html)
	}
}

func TestRunMain_QuietAndVersion(t *testing.T) {
	setupProject(t, defaultProject())

	te := newTestEnv()
	if code := runMain([]string{"-q"}, te.Environment); code != ExitSuccess {
		t.Fatalf("runMain(-q) = %d; stderr:\n%s", code, te.stderr)
	}
	if te.stdout.Len() != 0 {
		t.Errorf("quiet run wrote to stdout:\n%s", te.stdout)
	}

	te = newTestEnv()
	if code := runMain([]string{"--version"}, te.Environment); code != ExitSuccess {
		t.Fatalf("runMain(--version) = %d", code)
	}
	if got := te.stdout.String(); got != "resume2pdf "+Version+"\n" {
		t.Errorf("version output = %q", got)
	}
	if te.conv.calls != 0 {
		t.Error("--version should not convert")
	}

	te = newTestEnv()
	if code := runMain([]string{"--help"}, te.Environment); code != ExitSuccess {
		t.Fatalf("runMain(--help) = %d", code)
	}
	if !strings.Contains(te.stderr.String(), "--templates") {
		t.Errorf("help output missing flags:\n%s", te.stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_ExitCodes - Failures map to exit codes
// ---------------------------------------------------------------------------

func TestRunMain_ExitCodes(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		mutate     func(files map[string]string)
		convErr    error
		wantCode   int
		wantStderr string
		wantHTML   bool
	}{
		{
			name:       "missing data file",
			mutate:     func(f map[string]string) { delete(f, "data/resume.json") },
			wantCode:   ExitIO,
			wantStderr: "error: load:",
		},
		{
			name:       "invalid JSON",
			mutate:     func(f map[string]string) { f["data/resume.json"] = `{"name": ` },
			wantCode:   ExitIO,
			wantStderr: "error: load:",
		},
		{
			name:       "missing template",
			args:       []string{"--template", "nope.html.j2"},
			wantCode:   ExitUsage,
			wantStderr: "hint:",
		},
		{
			name:       "template syntax error",
			mutate:     func(f map[string]string) { f["templates/resume.html.j2"] = "{% if %}" },
			wantCode:   ExitUsage,
			wantStderr: "error: render:",
		},
		{
			name:       "conversion failure keeps HTML",
			convErr:    resume2pdf.ErrPDFGeneration,
			wantCode:   ExitBrowser,
			wantStderr: "error: convert:",
			wantHTML:   true,
		},
		{
			name:       "positional argument",
			args:       []string{"resume.json"},
			wantCode:   ExitUsage,
			wantStderr: "unexpected arguments",
		},
		{
			name:       "unknown flag",
			args:       []string{"--nope"},
			wantCode:   ExitUsage,
			wantStderr: "error:",
		},
		{
			name:       "quiet and verbose",
			args:       []string{"-q", "-v"},
			wantCode:   ExitUsage,
			wantStderr: "mutually exclusive",
		},
		{
			name:       "invalid backend",
			args:       []string{"--backend", "wkhtmltopdf"},
			wantCode:   ExitUsage,
			wantStderr: "pdf.backend",
		},
		{
			name:       "invalid timeout",
			args:       []string{"--timeout", "soon"},
			wantCode:   ExitUsage,
			wantStderr: "pdf.timeout",
		},
		{
			name:       "config not found",
			args:       []string{"--config", "missing.yaml"},
			wantCode:   ExitUsage,
			wantStderr: "config file not found",
		},
		{
			name:       "explicit env file missing",
			args:       []string{"--env-file", "missing.env"},
			wantCode:   ExitIO,
			wantStderr: "missing.env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := defaultProject()
			if tt.mutate != nil {
				tt.mutate(files)
			}
			setupProject(t, files)
			te := newTestEnv()
			te.conv.err = tt.convErr

			code := runMain(tt.args, te.Environment)
			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d; stderr:\n%s", code, tt.wantCode, te.stderr)
			}
			if !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, te.stderr)
			}

			_, err := os.Stat(filepath.Join("output", "resume.html"))
			if gotHTML := err == nil; gotHTML != tt.wantHTML {
				t.Errorf("HTML written = %v, want %v", gotHTML, tt.wantHTML)
			}
			if _, err := os.Stat(filepath.Join("output", "resume.pdf")); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("PDF should not exist after a failure, stat err = %v", err)
			}
		})
	}
}
