package pdd

import "errors"

// Sentinel errors for library operations.
var (
	// Client errors. DecodeRequest and Request.Validate wrap ErrInvalidInput
	// together with one of the specific causes below.
	ErrInvalidInput  = errors.New("invalid input")
	ErrTitleRequired = errors.New("title is required and must be a string")
	ErrListsRequired = errors.New("objectives, requirements, and manualSteps must be arrays")

	// Malformed request errors. These are not client errors: the endpoint
	// answers them with the generic generation failure.
	ErrMalformedRequest = errors.New("malformed request")
	ErrMalformedField   = errors.New("malformed field")
	ErrMalformedEntry   = errors.New("malformed list entry")

	// Generation errors.
	ErrGeneration = errors.New("document generation failed")
	ErrStaticPart = errors.New("static document part unavailable")
)
