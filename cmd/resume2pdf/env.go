package main

import (
	"io"
	"os"
	"time"

	resume2pdf "github.com/alnah/go-resume2pdf"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Environ func() []string

	// NewConverter builds the PDF converter. Nil uses the Generator default.
	NewConverter func(resume2pdf.ConverterOptions) (resume2pdf.PDFConverter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Environ:      os.Environ,
		NewConverter: resume2pdf.NewPDFConverter,
	}
}
