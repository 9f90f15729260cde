package ai

import (
	"errors"
)

// Prompt is the fixed pair of instructions sent to the model.
type Prompt struct {
	System string
	User   string
}

var (
	// ErrNoChoices is returned when the upstream answers 2xx but carries no completion.
	ErrNoChoices = errors.New("upstream returned no completion choices")

	// ErrMissingKey is returned by Complete when called without credentials.
	ErrMissingKey = errors.New("api key missing")
)

// StatusError reports a failed upstream call. Its message is deliberately
// generic: the response body is never inspected.
type StatusError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return e.Provider + " API Error"
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
