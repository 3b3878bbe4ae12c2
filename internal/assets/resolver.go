package assets

import (
	"errors"
)

// AssetResolver looks up styles in a custom directory first and falls back
// to the embedded set when the custom directory does not have the style.
type AssetResolver struct {
	custom   *FilesystemLoader // nil when no custom path is configured
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath means embedded styles only.
// Returns ErrInvalidBasePath if customBasePath is set but not a readable directory.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// LoadStyle loads a CSS style by name.
// Validation and I/O errors from the custom directory are returned as is;
// only ErrStyleNotFound triggers the embedded fallback.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom != nil {
		css, err := r.custom.LoadStyle(name)
		if err == nil || !errors.Is(err, ErrStyleNotFound) {
			return css, err
		}
	}
	return r.embedded.LoadStyle(name)
}

// StyleNames lists the built-in style names, for hints.
func (r *AssetResolver) StyleNames() []string {
	return r.embedded.StyleNames()
}

// CustomDir returns the resolved custom style directory, or "" when styles
// come from the embedded set only.
func (r *AssetResolver) CustomDir() string {
	if r.custom == nil {
		return ""
	}
	return r.custom.BasePath()
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
