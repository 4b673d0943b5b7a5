package inboxsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is any non-success answer from the server.
type APIError struct {
	StatusCode int
	Message    string

	// Details is set by the suggestions endpoint only.
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("inbox api: %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("inbox api: %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	var env Response
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	var sugg SuggestionsErrorResponse
	if err := json.Unmarshal(body, &sugg); err == nil && sugg.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: sugg.Error, Details: sugg.Details}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
