package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrNoInput     = errors.New("no input: pass a JSON or YAML file, - for stdin, or --example")
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write document")
	ErrInvalidEnv  = errors.New("invalid environment variable")

	ErrUnsupportedShell = errors.New("unsupported shell")
)
