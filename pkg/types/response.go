// Package types holds the wire shapes shared by the HTTP layer.
package types

// SuccessEnvelope wraps every successful API response.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body. Details carries structured
// context only when the error code allows it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every failed API response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
