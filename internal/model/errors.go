package model

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure so callers can branch on it without
// parsing error text. The caller-facing message for every delivery-side
// kind is generic; the detail stays in server logs.
type Kind string

const (
	KindAuth                 Kind = "auth"
	KindValidation           Kind = "validation"
	KindThrottled            Kind = "throttled"
	KindConfigurationMissing Kind = "configuration_missing"
	KindTransport            Kind = "transport"
	KindRemoteRejected       Kind = "remote_rejected"
	KindInternal             Kind = "internal"
)

// Error is a classified pipeline error.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError creates a classified error with a server-side detail message.
func NewError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// WrapError classifies an underlying error.
func WrapError(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// KindOf extracts the Kind from err. Unclassified errors are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
