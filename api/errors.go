package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotAuthenticated means no usable auth token is stored. No request is
// sent in that case.
var ErrNotAuthenticated = errors.New("not authenticated")

// Error is a non-2xx reply. Message carries the server's structured error
// payload when it sent one, and Body holds that payload verbatim.
type Error struct {
	StatusCode int             `json:"status"`
	Message    string          `json:"message"`
	Body       json.RawMessage `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func decodeError(status int, body []byte) *Error {
	apiErr := &Error{StatusCode: status, Message: http.StatusText(status)}
	var env envelope
	if len(body) > 0 && json.Unmarshal(body, &env) == nil && env.Message != "" {
		apiErr.Message = env.Message
		apiErr.Body = append(json.RawMessage(nil), body...)
	}
	return apiErr
}

// StatusOf extracts the HTTP status from an API error, 0 otherwise.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
