// Package assets provides the static parts of a WordprocessingML package.
//
// # Loader Architecture
//
//	PartLoader (interface)
//	    │
//	    └── EmbeddedLoader    - loads from go:embed filesystem
//
// Every generated document shares the same styles, numbering definitions,
// relationships and content types. These parts are embedded at compile time
// and copied verbatim into each archive. Only word/document.xml and
// docProps/core.xml vary per request and are produced by the docx package.
//
// # Part Names
//
// Parts are addressed by a short asset name (for example "styles") rather
// than their archive path. StaticParts maps each asset name to the path it
// occupies inside the .docx archive.
//
// # Security
//
// Asset names are validated to prevent path traversal into the embedded
// filesystem.
package assets
