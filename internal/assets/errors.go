package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrPartNotFound indicates the requested part does not exist.
	ErrPartNotFound = errors.New("part not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")
)
