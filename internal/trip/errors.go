package trip

import (
	"errors"
)

// Kind classifies why a plan request failed. Every kind maps to exactly one
// HTTP status in the handler.
type Kind int

const (
	KindConfig Kind = iota + 1
	KindMethod
	KindUpstream
	KindMalformed
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindMethod:
		return "method"
	case KindUpstream:
		return "upstream"
	case KindMalformed:
		return "malformed"
	case KindBadRequest:
		return "bad_request"
	default:
		return "unknown"
	}
}

const (
	MsgAPIKeyMissing    = "Server configuration error: API Key missing"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgInvalidBody      = "invalid request body"
)

// Error is the failure result of Planner.Plan. Msg is what the caller sees.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Msg: err.Error(), Err: err}
}

// KindOf extracts the Kind from err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}
