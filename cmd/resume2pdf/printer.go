package main

import (
	"fmt"
	"io"
)

// printer writes progress to stdout and problems to stderr.
// quiet hides progress; verbose adds step details.
type printer struct {
	out     io.Writer
	err     io.Writer
	quiet   bool
	verbose bool
}

func newPrinter(env *Environment, f *cliFlags) *printer {
	return &printer{out: env.Stdout, err: env.Stderr, quiet: f.quiet, verbose: f.verbose}
}

// Infof prints a progress line unless quiet.
func (p *printer) Infof(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Verbosef prints a detail line in verbose mode only.
func (p *printer) Verbosef(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.err, "  "+format+"\n", args...)
}

// Warnf prints a warning unless quiet.
func (p *printer) Warnf(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.err, "warning: "+format+"\n", args...)
}

// Errorf always prints.
func (p *printer) Errorf(format string, args ...any) {
	fmt.Fprintf(p.err, "error: "+format+"\n", args...)
}
