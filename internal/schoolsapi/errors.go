package schoolsapi

import (
	"fmt"
)

// Network error codes
const (
	ErrTransport     = "transport_failed"
	ErrHTTPStatus    = "http_status"
	ErrMalformedBody = "malformed_body"
)

// DefaultAPIErrorMessage is used when a failed envelope carries no message
const DefaultAPIErrorMessage = "API returned false status"

// NetworkError is a failure to obtain a usable envelope: the transport
// call failed, the status was not 2xx, or the body could not be decoded.
type NetworkError struct {
	Code       string
	StatusCode int
	URL        string
	Err        error
}

func (e *NetworkError) Error() string {
	switch e.Code {
	case ErrHTTPStatus:
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	case ErrMalformedBody:
		return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("HTTP request failed: %v", e.Err)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a logical failure reported by the server in the envelope
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
