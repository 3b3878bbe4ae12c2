package resume2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-resume2pdf/internal/document"
	"github.com/alnah/go-resume2pdf/internal/placeholder"
	"github.com/alnah/go-resume2pdf/internal/yamlutil"
)

// DefaultDataPath is the resume data file read when none is configured.
const DefaultDataPath = "data/resume.json"

// LoadDocument reads the resume at path, parses it as JSON (or YAML), and
// returns it with ${NAME} placeholders expanded from b.
// All failures wrap ErrLoad.
func LoadDocument(path string, b placeholder.Bindings) (document.Value, error) {
	doc, err := readDocument(path)
	if err != nil {
		return document.Value{}, err
	}
	return placeholder.Substitute(doc, b), nil
}

// readDocument parses the file at path without substituting placeholders.
func readDocument(path string) (document.Value, error) {
	if path == "" {
		path = DefaultDataPath
	}

	info, err := os.Stat(path)
	if err != nil {
		return document.Value{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if info.IsDir() {
		return document.Value{}, fmt.Errorf("%w: %s is a directory", ErrLoad, path)
	}
	if info.Size() > int64(yamlutil.MaxInputSize) {
		return document.Value{}, fmt.Errorf("%w: %s: %d bytes exceeds %d", ErrLoad, path, info.Size(), yamlutil.MaxInputSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- data path is user-provided
	if err != nil {
		return document.Value{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	doc, err := decodeByExtension(path, data)
	if err != nil {
		return document.Value{}, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	if doc.Kind() != document.KindMapping {
		return document.Value{}, fmt.Errorf("%w: %s: top level must be an object, got %s", ErrLoad, path, doc.Kind())
	}

	return doc, nil
}

// decodeByExtension reads .json files as JSON and .yaml/.yml files as YAML.
// Other names are sniffed by their first byte.
func decodeByExtension(path string, data []byte) (document.Value, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return document.DecodeJSON(data)
	case ".yaml", ".yml":
		return document.DecodeYAML(data)
	default:
		return document.Decode(data)
	}
}
