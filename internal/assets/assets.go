package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadPart loads a static part by name using the default embedded loader.
// Returns ErrPartNotFound if the part does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadPart(name string) ([]byte, error) {
	return defaultLoader.LoadPart(name)
}

// Default returns the package-level embedded loader.
func Default() PartLoader {
	return defaultLoader
}
