package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks command-line mistakes.
var ErrUsage = errors.New("usage error")

// cliFlags holds every command-line option. Empty values mean
// "not set on the command line" and leave the config value alone.
type cliFlags struct {
	config    string
	data      string
	templates string
	template  string
	output    string
	envFile   string
	backend   string
	timeout   string
	quiet     bool
	verbose   bool
	version   bool
}

// newFlagSet declares the flags on a fresh FlagSet bound to f.
func newFlagSet(f *cliFlags, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("resume2pdf", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path (default: ./resume2pdf.yaml if present)")
	fs.StringVar(&f.data, "data", "", "resume data file (default: data/resume.json)")
	fs.StringVar(&f.templates, "templates", "", "template directory (default: templates)")
	fs.StringVar(&f.template, "template", "", "template name inside the directory (default: resume.html.j2)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: output)")
	fs.StringVar(&f.envFile, "env-file", "", "dotenv file with placeholder values (default: .env)")
	fs.StringVar(&f.backend, "backend", "", "PDF backend: rod or chromedp")
	fs.StringVar(&f.timeout, "timeout", "", "PDF generation timeout, e.g. 30s, 2m")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show each pipeline step")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: resume2pdf [flags]\n\n")
		fmt.Fprintf(output, "Render data/resume.json through templates/resume.html.j2 into\n")
		fmt.Fprintf(output, "output/resume.html and output/resume.pdf.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args (without the program name).
func parseFlags(args []string, output io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	fs := newFlagSet(f, output)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments: %s", ErrUsage, strings.Join(fs.Args(), " "))
	}
	if f.quiet && f.verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, nil
}
