// Package api defines the JSON envelopes shared by every HTTP handler.
package api

// ErrorResponse is the body returned for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	// Details carries per-field validation messages keyed by JSON field name.
	Details map[string]string `json:"details,omitempty"`
	// Detail carries the underlying store error for 500 responses.
	Detail string `json:"detail,omitempty"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
