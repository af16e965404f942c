// Package validate checks the shape of document requests with JSON Schema.
//
// Validation runs in two ordered stages so callers can report the first
// failing rule: the title stage, then the lists stage. A body that is not a
// JSON object fails the title stage.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Sentinel errors for validation stages.
var (
	// ErrTitle indicates title is absent, not a string, or empty.
	ErrTitle = errors.New("title is required and must be a string")

	// ErrLists indicates one of the list fields is absent or not an array.
	ErrLists = errors.New("objectives, requirements, and manualSteps must be arrays")

	// ErrSchema indicates the document could not be evaluated at all.
	ErrSchema = errors.New("schema evaluation failed")
)

const titleSchema = `{
  "type": "object",
  "required": ["title"],
  "properties": {
    "title": {"type": "string", "minLength": 1}
  }
}`

const listsSchema = `{
  "type": "object",
  "required": ["objectives", "requirements", "manualSteps"],
  "properties": {
    "objectives":   {"type": "array"},
    "requirements": {"type": "array"},
    "manualSteps":  {"type": "array"}
  }
}`

// Validator holds the compiled request schemas. Safe for concurrent use.
type Validator struct {
	stages []stage
}

type stage struct {
	schema *gojsonschema.Schema
	err    error
}

// New compiles the request schemas.
func New() (*Validator, error) {
	title, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(titleSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling title schema: %w", err)
	}
	lists, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(listsSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling lists schema: %w", err)
	}
	return &Validator{stages: []stage{
		{schema: title, err: ErrTitle},
		{schema: lists, err: ErrLists},
	}}, nil
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default returns a lazily compiled package-level Validator.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = New()
	})
	return defaultValidator, defaultErr
}

// Validate checks a decoded JSON document (as produced by encoding/json into
// an any) against each stage in order and returns the first failure.
func (v *Validator) Validate(doc any) error {
	loader := gojsonschema.NewGoLoader(doc)
	for _, s := range v.stages {
		result, err := s.schema.Validate(loader)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSchema, err)
		}
		if !result.Valid() {
			return fmt.Errorf("%w: %s", s.err, describe(result.Errors()))
		}
	}
	return nil
}

func describe(errs []gojsonschema.ResultError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
