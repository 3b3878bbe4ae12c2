package assets

import (
	"fmt"
	"path"
	"strings"
)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateTemplatePath checks a slash-separated template path relative to
// the template root. Subdirectories are allowed; absolute paths, parent
// references, backslashes, and NUL bytes are not.
func ValidateTemplatePath(p string) error {
	if p == "" {
		return fmt.Errorf("%w: empty template path", ErrInvalidAssetName)
	}
	if strings.ContainsAny(p, "\\\x00") || path.IsAbs(p) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, p)
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return fmt.Errorf("%w: %q", ErrPathTraversal, p)
		}
	}
	return nil
}
