package pdd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alnah/go-pdd/internal/validate"
)

// DecodeRequest parses and validates a raw JSON request body.
//
// Shape errors wrap ErrInvalidInput with ErrTitleRequired or ErrListsRequired.
// Unparseable JSON, a null body and values that cannot be used as text wrap
// ErrMalformedRequest.
//
// Optional text fields and list entries are coerced: null, false, 0 and ""
// become empty (list entries are later dropped as blank). Other non-string
// values are rejected.
func DecodeRequest(body []byte) (*Request, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	// A null body has no fields to read, unlike other non-object values.
	if doc == nil {
		return nil, fmt.Errorf("%w: body is null", ErrMalformedRequest)
	}

	v, err := validate.Default()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if err := v.Validate(doc); err != nil {
		switch {
		case errors.Is(err, validate.ErrTitle):
			return nil, invalidInput(ErrTitleRequired)
		case errors.Is(err, validate.ErrLists):
			return nil, invalidInput(ErrListsRequired)
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
	}

	// Validation guarantees an object with a string title and three arrays.
	obj := doc.(map[string]any)
	req := &Request{Title: obj["title"].(string)}

	if req.ProblemStatement, err = coerceField("problemStatement", obj["problemStatement"]); err != nil {
		return nil, err
	}
	if req.AutomationIdeas, err = coerceField("automationIdeas", obj["automationIdeas"]); err != nil {
		return nil, err
	}
	if req.Objectives, err = coerceList("objectives", obj["objectives"]); err != nil {
		return nil, err
	}
	if req.Requirements, err = coerceList("requirements", obj["requirements"]); err != nil {
		return nil, err
	}
	if req.ManualSteps, err = coerceList("manualSteps", obj["manualSteps"]); err != nil {
		return nil, err
	}

	return req, nil
}

func invalidInput(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, cause)
}

func coerceField(name string, v any) (string, error) {
	s, ok := coerceText(v)
	if !ok {
		return "", fmt.Errorf("%w: %w: %s has type %s", ErrMalformedRequest, ErrMalformedField, name, jsonType(v))
	}
	return s, nil
}

func coerceList(name string, v any) ([]string, error) {
	items := v.([]any)
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := coerceText(item)
		if !ok {
			return nil, fmt.Errorf("%w: %w: %s[%d] has type %s", ErrMalformedRequest, ErrMalformedEntry, name, i, jsonType(item))
		}
		out[i] = s
	}
	return out, nil
}

// coerceText maps a decoded JSON value to text. Falsy scalars map to "".
func coerceText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case bool:
		return "", !x
	case float64:
		return "", x == 0
	default:
		return "", false
	}
}

func jsonType(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
