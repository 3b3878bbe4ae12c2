// Package assets provides CSS styles and HTML templates for resume rendering.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - styles and templates from a directory on disk
//	    └── AssetResolver     - custom-first lookup with embedded fallback
//
// Templates are only ever read from disk: the template directory is the
// user's, and a missing template is an error rather than a silent fallback.
// Styles fall back to the embedded set so templates can reference
// stylesheet("default") without shipping CSS.
//
// # Directory Structure
//
//	{assetsBasePath}/
//	└── styles/
//	    └── {name}.css
//
//	{templateDir}/
//	├── resume.html.j2
//	└── partials/...
//
// # Security
//
// Style names are validated to prevent path traversal. Template paths may
// contain subdirectories but never escape the template directory;
// FilesystemLoader resolves symlinks and verifies containment.
package assets
