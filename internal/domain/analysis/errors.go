package analysis

import "errors"

var (
	// ErrInvalidInput is a structurally invalid request (HTTP 400).
	ErrInvalidInput = errors.New("invalid input")
	// ErrExtractionFailure means no parseable JSON object was found in the
	// provider reply. It is absorbed by the fallback path.
	ErrExtractionFailure = errors.New("no JSON object in provider response")
	// ErrUnexpected is anything else that escaped the pipeline (HTTP 500).
	ErrUnexpected = errors.New("unexpected analysis error")
)

// InputError carries the client-facing message for ErrInvalidInput.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// InvalidInput builds an InputError.
func InvalidInput(msg string) error {
	return &InputError{Message: msg}
}
