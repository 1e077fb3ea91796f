package postgrest

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrMethodNotSet is the panic value raised when a request without an HTTP
// method is executed. Builders obtained from a Client always carry one.
var ErrMethodNotSet = errors.New("postgrest: request method not set")

// HTTPError is returned when PostgREST answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string // raw response body, usually a JSON error object
	Cause      error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected response status: %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// ErrorDetails is the JSON error object PostgREST puts in error responses.
type ErrorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Details decodes the PostgREST error object from the body. It reports false
// when the body is not such an object.
func (e *HTTPError) Details() (*ErrorDetails, bool) {
	var d ErrorDetails
	if err := json.Unmarshal([]byte(e.Body), &d); err != nil {
		return nil, false
	}
	if d.Code == "" && d.Message == "" {
		return nil, false
	}
	return &d, true
}

// TransportError is returned when no response could be obtained or the
// response could not be decoded.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("postgrest request failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
