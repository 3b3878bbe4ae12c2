package assets

// AssetLoader defines the contract for loading CSS styles.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}

// TemplateSource reads template files relative to a root directory.
type TemplateSource interface {
	// LoadTemplate returns the content of the template at the relative path.
	// Returns ErrTemplateNotFound if the file does not exist.
	LoadTemplate(path string) (string, error)
}

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"
