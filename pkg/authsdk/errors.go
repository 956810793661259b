package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoChallenge is returned by NewChallenge when there is no pending
// challenge to complete. Callers should send the user back to login.
var ErrNoChallenge = errors.New("authsdk: no pending email challenge")

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse turns a non-2xx response body into an APIError. Bodies
// that are not {"message": ...} fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var msg MessageResponse
	if err := json.Unmarshal(body, &msg); err == nil && msg.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
}
