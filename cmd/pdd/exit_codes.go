package main

import (
	"errors"
	"net/http"
	"os"

	pdd "github.com/alnah/go-pdd"
	"github.com/alnah/go-pdd/client"
	"github.com/alnah/go-pdd/internal/config"
	"github.com/alnah/go-pdd/internal/fileutil"
	"github.com/alnah/go-pdd/internal/logging"
	"github.com/alnah/go-pdd/internal/server"
	"github.com/alnah/go-pdd/internal/yamlutil"
)

// Exit codes for the pdd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, environment, or request
	ExitIO      = 3 // Input not readable, output not writable
	ExitNetwork = 4 // Listener or remote server errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// A rejected request is the caller's fault even when a remote server said so.
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
			return ExitUsage
		}
		return ExitNetwork
	}

	// Network errors (exit 4)
	if errors.Is(err, client.ErrRequest) ||
		errors.Is(err, client.ErrResponse) ||
		errors.Is(err, server.ErrListen) {
		return ExitNetwork
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, client.ErrDownload) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, logging.ErrInvalidFormat) ||
		errors.Is(err, yamlutil.ErrInputTooLarge) ||
		errors.Is(err, fileutil.ErrInvalidFileName) ||
		errors.Is(err, pdd.ErrInvalidInput) ||
		errors.Is(err, pdd.ErrMalformedRequest) {
		return ExitUsage
	}

	return ExitGeneral
}
