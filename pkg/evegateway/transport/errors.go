package transport

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ESIError is returned for any non-success ESI response. StatusCode is the
// upstream status, unchanged.
type ESIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *ESIError) Error() string {
	return e.Message
}

// AsESIError unwraps err to an *ESIError if there is one in the chain
func AsESIError(err error) (*ESIError, bool) {
	var esiErr *ESIError
	if errors.As(err, &esiErr) {
		return esiErr, true
	}
	return nil, false
}

// newESIError builds the error for a failed call; body is the raw response
// body, which ESI usually fills with {"error": "..."}.
func newESIError(endpoint string, statusCode int, body []byte) *ESIError {
	message := fmt.Sprintf("Request failed with status code: %d", statusCode)

	var payload struct {
		Error string `json:"error"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		message = fmt.Sprintf("%s (%s)", message, payload.Error)
	}

	return &ESIError{
		StatusCode: statusCode,
		Message:    message,
		Endpoint:   endpoint,
	}
}
