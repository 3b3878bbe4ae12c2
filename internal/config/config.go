package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
	"github.com/alnah/go-resume2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "resume2pdf"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxNameLength        = 255
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxBackendLength     = 20
)

// Config holds all configuration for resume generation.
type Config struct {
	Data      string          `yaml:"data"`
	EnvFile   string          `yaml:"envFile"`
	Templates TemplatesConfig `yaml:"templates"`
	Assets    AssetsConfig    `yaml:"assets"`
	Output    OutputConfig    `yaml:"output"`
	PDF       PDFConfig       `yaml:"pdf"`
	Page      PageConfig      `yaml:"page"`
}

// TemplatesConfig locates the resume template.
type TemplatesConfig struct {
	Dir  string `yaml:"dir" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded styles only
}

// OutputConfig names the generated files. HTML and PDF are relative to Dir
// unless absolute.
type OutputConfig struct {
	Dir  string `yaml:"dir"`
	HTML string `yaml:"html" validate:"required"`
	PDF  string `yaml:"pdf" validate:"required"`
}

// PDFConfig selects and tunes the HTML to PDF backend.
type PDFConfig struct {
	Backend    string `yaml:"backend" validate:"oneof=rod chromedp"`
	Timeout    string `yaml:"timeout"` // Go duration, e.g. "30s"
	BrowserBin string `yaml:"browserBin"`
	NoSandbox  bool   `yaml:"noSandbox"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size" validate:"omitempty,oneof=letter a4 legal"`
	Orientation string  `yaml:"orientation" validate:"omitempty,oneof=portrait landscape"`
	Margin      float64 `yaml:"margin" validate:"omitempty,gte=0.25,lte=3"`
}

// DefaultConfig returns the configuration used when no file is loaded:
// data/resume.json rendered through templates/resume.html.j2 into output/.
func DefaultConfig() *Config {
	return &Config{
		Data:    filepath.Join("data", "resume.json"),
		EnvFile: ".env",
		Templates: TemplatesConfig{
			Dir:  "templates",
			Name: "resume.html.j2",
		},
		Output: OutputConfig{
			Dir:  "output",
			HTML: "resume.html",
			PDF:  "resume.pdf",
		},
		PDF: PDFConfig{
			Backend: "rod",
			Timeout: "30s",
		},
		Page: PageConfig{
			Size:        "letter",
			Orientation: "portrait",
			Margin:      0.5,
		},
	}
}

// HTMLPath returns the HTML destination.
func (c *Config) HTMLPath() string {
	return c.outputPath(c.Output.HTML)
}

// PDFPath returns the PDF destination.
func (c *Config) PDFPath() string {
	return c.outputPath(c.Output.PDF)
}

func (c *Config) outputPath(name string) string {
	if filepath.IsAbs(name) || c.Output.Dir == "" {
		return name
	}
	return filepath.Join(c.Output.Dir, name)
}

// Timeout returns pdf.timeout as a duration. Validate rejects values that
// do not parse, so the error is only seen on unvalidated configs.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout: %v", ErrConfigInvalid, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout: must be positive, got %s", ErrConfigInvalid, d)
	}
	return d, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml field names rather than Go names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field lengths, enumerations, and ranges.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"data", c.Data, MaxPathLength},
		{"envFile", c.EnvFile, MaxPathLength},
		{"templates.dir", c.Templates.Dir, MaxPathLength},
		{"templates.name", c.Templates.Name, MaxNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.html", c.Output.HTML, MaxPathLength},
		{"output.pdf", c.Output.PDF, MaxPathLength},
		{"pdf.backend", c.PDF.Backend, MaxBackendLength},
		{"pdf.browserBin", c.PDF.BrowserBin, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrConfigInvalid, describeValidation(err))
	}

	if c.Data == "" {
		return fmt.Errorf("%w: data: required", ErrConfigInvalid)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if c.HTMLPath() == c.PDFPath() {
		return fmt.Errorf("%w: output.html and output.pdf must differ", ErrConfigInvalid)
	}
	return nil
}

// describeValidation reports the first failing field as "path: tag".
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		if fe.Param() != "" {
			return fmt.Sprintf("%s: must satisfy %s=%s, got %v", ns, fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Sprintf("%s: %s", ns, fe.Tag())
	}
	return err.Error()
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or ends in .yaml/.yml, it's
// treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file, or set to empty values, keep their
// DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) && !hasConfigExt(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	cfg.applyDefaults(DefaultConfig())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills every unset field from def.
func (c *Config) applyDefaults(def *Config) {
	setString := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	setString(&c.Data, def.Data)
	setString(&c.EnvFile, def.EnvFile)
	setString(&c.Templates.Dir, def.Templates.Dir)
	setString(&c.Templates.Name, def.Templates.Name)
	setString(&c.Assets.BasePath, def.Assets.BasePath)
	setString(&c.Output.Dir, def.Output.Dir)
	setString(&c.Output.HTML, def.Output.HTML)
	setString(&c.Output.PDF, def.Output.PDF)
	setString(&c.PDF.Backend, def.PDF.Backend)
	setString(&c.PDF.Timeout, def.PDF.Timeout)
	setString(&c.PDF.BrowserBin, def.PDF.BrowserBin)
	setString(&c.Page.Size, def.Page.Size)
	setString(&c.Page.Orientation, def.Page.Orientation)
	if c.Page.Margin == 0 {
		c.Page.Margin = def.Page.Margin
	}
}

// SearchPaths returns the files LoadConfig tries for a config name, in order:
// the current directory, then the user config directory, each with .yaml
// before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-resume2pdf", name+ext))
		}
	}
	return paths
}

// Find returns the first existing file among SearchPaths(name).
func Find(name string) (string, bool) {
	for _, p := range SearchPaths(name) {
		if fileutil.FileExists(p) {
			return p, true
		}
	}
	return "", false
}

func hasConfigExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func resolveConfigPath(name string) (string, error) {
	if p, ok := Find(name); ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(SearchPaths(name), ", "))
}
