// Package yamlutil is the single entry point to the YAML decoder.
// Resume documents and config files both go through here, so input limits
// are enforced in one place.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the bytes accepted by any decode (4MB).
var MaxInputSize = 4 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// UnmarshalStrict decodes into a struct and fails on keys the struct does
// not declare.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

// UnmarshalOrdered decodes mappings as yaml.MapSlice so key order survives.
func UnmarshalOrdered(data []byte, v any) error {
	return decode(data, v, yaml.UseOrderedMap())
}

// CheckInput applies the size limits of every decode to data. Decoders
// outside this package call it before parsing.
func CheckInput(data []byte) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	if err := CheckInput(data); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}

	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
