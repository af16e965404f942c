package server

import "errors"

// ErrListen is returned when the listener cannot be opened.
var ErrListen = errors.New("cannot listen")

// Client-facing error messages of the generation endpoint.
const (
	MessageTitleRequired    = "Invalid input: title is required and must be a string"
	MessageListsRequired    = "Invalid input: objectives, requirements, and manualSteps must be arrays"
	MessageGenerationFailed = "Failed to generate document. Please check your input and try again."
)
