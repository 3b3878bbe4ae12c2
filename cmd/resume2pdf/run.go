package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/internal/config"
	"github.com/alnah/go-resume2pdf/internal/hints"
	"github.com/alnah/go-resume2pdf/internal/placeholder"
	"github.com/alnah/go-resume2pdf/internal/render"
)

// ErrEnvFile reports an unreadable dotenv file.
var ErrEnvFile = errors.New("reading env file failed")

// run generates the resume once with flags layered over the config file.
func run(ctx context.Context, f *cliFlags, env *Environment, p *printer) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return withHint(err, hintFor(err, nil))
	}
	mergeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	bindings, err := loadBindings(cfg.EnvFile, f.envFile != "", env)
	if err != nil {
		return err
	}

	convOpts, err := converterOptions(cfg, bindings)
	if err != nil {
		return err
	}

	opts := []resume2pdf.Option{
		resume2pdf.WithBindings(bindings),
		resume2pdf.WithClock(env.Now),
		resume2pdf.WithLogger(p.Verbosef),
		resume2pdf.WithConverterOptions(convOpts),
	}
	if env.NewConverter != nil {
		conv, err := env.NewConverter(convOpts)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := conv.Close(); cerr != nil {
				p.Verbosef("closing browser: %v", cerr)
			}
		}()
		opts = append(opts, resume2pdf.WithConverter(conv))
	}

	gen := resume2pdf.NewGenerator(resume2pdf.Paths{
		Data:      cfg.Data,
		Templates: cfg.Templates.Dir,
		Template:  cfg.Templates.Name,
		Assets:    cfg.Assets.BasePath,
		HTML:      cfg.HTMLPath(),
		PDF:       cfg.PDFPath(),
	}, opts...)

	res, err := gen.Run(ctx)
	if res != nil {
		if len(res.Unresolved) > 0 {
			p.Warnf("%d placeholder(s) left unresolved%s", len(res.Unresolved), hints.ForUnresolved(res.Unresolved))
		}
		if res.HTMLBytes > 0 {
			p.Infof("Resume HTML generated at %s", res.HTMLPath)
		}
		if res.PDFBytes > 0 {
			p.Infof("Resume PDF generated at %s", res.PDFPath)
		}
	}
	if err != nil {
		return withHint(err, hintFor(err, cfg))
	}
	return nil
}

// loadConfig loads --config, else ./resume2pdf.yaml (or the user config
// directory copy) when present, else the defaults.
func loadConfig(f *cliFlags) (*config.Config, error) {
	name := f.config
	if name == "" {
		path, ok := config.Find(config.DefaultName)
		if !ok {
			return config.DefaultConfig(), nil
		}
		name = path
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags overrides config values with flags that were set.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	if f.data != "" {
		cfg.Data = f.data
	}
	if f.templates != "" {
		cfg.Templates.Dir = f.templates
	}
	if f.template != "" {
		cfg.Templates.Name = f.template
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.envFile != "" {
		cfg.EnvFile = f.envFile
	}
	if f.backend != "" {
		cfg.PDF.Backend = f.backend
	}
	if f.timeout != "" {
		cfg.PDF.Timeout = f.timeout
	}
}

// loadBindings returns the process environment plus the variables of the
// dotenv file at path. Process variables win. A missing file is an error
// only when required is set.
func loadBindings(path string, required bool, env *Environment) (placeholder.Bindings, error) {
	b := placeholder.FromEnviron(env.Environ())
	if path == "" {
		return b, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return b, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrEnvFile, path, err)
	}
	for k, v := range vars {
		if _, ok := b[k]; !ok {
			b[k] = v
		}
	}
	return b, nil
}

// converterOptions builds PDF options from cfg. ROD_BROWSER_BIN and
// ROD_NO_SANDBOX may also come from the dotenv file.
func converterOptions(cfg *config.Config, b placeholder.Bindings) (resume2pdf.ConverterOptions, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return resume2pdf.ConverterOptions{}, err
	}

	opts := resume2pdf.ConverterOptions{
		Backend:    cfg.PDF.Backend,
		Timeout:    timeout,
		BrowserBin: cfg.PDF.BrowserBin,
		NoSandbox:  cfg.PDF.NoSandbox,
		Page: &resume2pdf.PageSettings{
			Size:        cfg.Page.Size,
			Orientation: cfg.Page.Orientation,
			Margin:      cfg.Page.Margin,
		},
	}
	if opts.BrowserBin == "" {
		opts.BrowserBin, _ = b.Lookup("ROD_BROWSER_BIN")
	}
	if v, _ := b.Lookup("ROD_NO_SANDBOX"); v == "1" {
		opts.NoSandbox = true
	}
	return opts, nil
}

// hintedError appends an actionable hint to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }

func (e *hintedError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// hintFor picks a hint for err. cfg may be nil before the config is loaded.
func hintFor(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(config.DefaultName))
	case cfg == nil:
		return ""
	case errors.Is(err, resume2pdf.ErrLoad) && errors.Is(err, fs.ErrNotExist):
		return hints.ForMissingData(cfg.Data)
	case errors.Is(err, render.ErrTemplateNotFound), errors.Is(err, render.ErrTemplateDir):
		return hints.ForTemplateNotFound(cfg.Templates.Dir)
	case errors.Is(err, resume2pdf.ErrTemplate) && strings.Contains(err.Error(), assets.ErrStyleNotFound.Error()):
		resolver, rerr := assets.NewAssetResolver(cfg.Assets.BasePath)
		if rerr != nil {
			return ""
		}
		return hints.ForStyleNotFound(resolver.StyleNames())
	case errors.Is(err, resume2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect(cfg.PDF.Backend)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, resume2pdf.ErrWrite):
		return hints.ForOutputDirectory()
	}
	return ""
}
