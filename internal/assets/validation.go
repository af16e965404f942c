package assets

import "fmt"

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Part names are lowercase ASCII letters, digits and hyphens. Anything else,
// including path separators and dots, returns ErrInvalidAssetName.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
