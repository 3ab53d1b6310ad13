// Package errors defines the service's error taxonomy. Every failure that
// crosses a package boundary carries one of the codes below, and the HTTP
// layer maps codes to statuses through their metadata.
package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeMalformedPayload Code = "MALFORMED_PAYLOAD"
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodeInvalidAmount    Code = "INVALID_AMOUNT"
	CodeRateLimit        Code = "RATE_LIMITED"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeDependency       Code = "DEPENDENCY_ERROR"
)

// Metadata is the per-code contract: which status the API answers with,
// whether a retry can help, the fallback public text, and whether structured
// details may be exposed to the client.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeMalformedPayload: {http.StatusBadRequest, false, "malformed payload", true},
	CodeValidation:       {http.StatusBadRequest, false, "validation failed", true},
	CodeUnauthorized:     {http.StatusUnauthorized, false, "authentication required", false},
	CodeForbidden:        {http.StatusForbidden, false, "access denied", false},
	CodeNotFound:         {http.StatusNotFound, false, "resource not found", false},
	CodeConflict:         {http.StatusConflict, false, "conflict detected", false},
	CodeInvalidAmount:    {http.StatusUnprocessableEntity, false, "amount not allowed", true},
	CodeRateLimit:        {http.StatusTooManyRequests, true, "rate limit exceeded", false},
	CodeInternal:         {http.StatusInternalServerError, true, "internal server error", false},
	CodeDependency:       {http.StatusServiceUnavailable, true, "dependency unavailable", true},
}

// MetadataFor resolves a code's metadata, treating unknown codes as internal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Error is the taxonomy's error value. The message is operator-facing unless
// the HTTP layer decides the code is a client fault.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails attaches structured context; it only reaches the client when
// the code's metadata allows details.
func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As finds the first taxonomy error in the chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf extracts the taxonomy code from an error chain, defaulting to internal.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// IsRetryable reports whether the error maps to a transient failure.
func IsRetryable(err error) bool {
	return MetadataFor(CodeOf(err)).Retryable
}
