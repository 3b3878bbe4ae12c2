package assets

import "errors"

// Sentinel errors for style and template lookups.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName covers empty names, separators in style names,
	// and absolute or parent-relative template paths.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")

	// ErrPathTraversal is returned when a resolved file, symlinks included,
	// lies outside the base directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
