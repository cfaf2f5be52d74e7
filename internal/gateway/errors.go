package gateway

import "errors"

// Terminal gateway failures. Callers match these with errors.Is; everything
// else coming out of this package wraps one of them.
var (
	// ErrUnavailable indicates the model could not be reached or did not
	// answer within the deadline.
	ErrUnavailable = errors.New("model gateway unavailable")
	// ErrEmptyResponse indicates the model answered with no text content.
	ErrEmptyResponse = errors.New("model returned an empty response")
	// ErrSchemaValidation indicates no schema-conformant structured output
	// was produced within the bounded retry budget.
	ErrSchemaValidation = errors.New("no schema-conformant output")
)
