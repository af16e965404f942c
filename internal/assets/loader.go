package assets

// PartLoader defines the contract for loading static package parts.
type PartLoader interface {
	// LoadPart loads a part by asset name (without .xml extension).
	// Returns ErrPartNotFound if the part doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPart(name string) ([]byte, error)
}

// Part associates an embedded asset with its path in the archive.
type Part struct {
	Path  string
	Asset string
}

// staticParts lists the fixed parts in archive order.
// [Content_Types].xml must come first for some consumers.
var staticParts = []Part{
	{Path: "[Content_Types].xml", Asset: "content-types"},
	{Path: "_rels/.rels", Asset: "package-rels"},
	{Path: "word/_rels/document.xml.rels", Asset: "document-rels"},
	{Path: "word/styles.xml", Asset: "styles"},
	{Path: "word/numbering.xml", Asset: "numbering"},
	{Path: "word/settings.xml", Asset: "settings"},
	{Path: "docProps/app.xml", Asset: "app"},
}

// StaticParts returns the fixed parts in archive order.
// The returned slice is a copy and may be modified by the caller.
func StaticParts() []Part {
	out := make([]Part, len(staticParts))
	copy(out, staticParts)
	return out
}
