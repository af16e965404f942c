package docx

import "errors"

// Sentinel errors for package serialization.
var (
	// ErrPart indicates a package part could not be produced or written.
	ErrPart = errors.New("failed to write package part")

	// ErrArchive indicates the archive could not be read back.
	ErrArchive = errors.New("invalid docx archive")
)
