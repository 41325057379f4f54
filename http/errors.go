package http

import (
	"errors"
	"fmt"
)

// UpstreamError indicates the upstream API answered with a non-success status
// other than 404 (absence) or 204 (empty success).
type UpstreamError struct {
	// StatusCode is the HTTP status code
	StatusCode int
	// Status is the HTTP status line message
	Status string
	// Body is the raw response body
	Body []byte
}

// Error returns a string representation of the upstream error.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: %s", e.Status)
}

// TransportError indicates the request never produced an HTTP response
// (connection refused, DNS failure, timeout).
type TransportError struct {
	// URL is the request URL that failed
	URL string
	// Err is the underlying transport error
	Err error
}

// Error returns a string representation of the transport error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *TransportError) Unwrap() error { return e.Err }

// ParseError indicates a success response carried a body that could not be
// decoded as JSON.
type ParseError struct {
	// Err is the underlying decode error
	Err error
}

// Error returns a string representation of the parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response: %v", e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ParseError) Unwrap() error { return e.Err }

// ContentTypeError indicates a success response carried a non-JSON content type.
type ContentTypeError struct {
	// ContentType is the Content-Type header value of the response
	ContentType string
}

// Error returns a string representation of the content type error.
func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("unexpected content type %q", e.ContentType)
}

// ErrEmptyResponse indicates a success response declared a JSON content type
// but carried no body.
var ErrEmptyResponse = errors.New("empty response body")
