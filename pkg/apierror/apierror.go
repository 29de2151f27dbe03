// Package apierror carries coded errors reported by the hosting backend
// across package boundaries without losing the HTTP status they arrived with.
package apierror

import "fmt"

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status}
}

// FromStatus wraps a bare non-success HTTP status from the backend when the
// response body carried no usable error payload.
func FromStatus(status int) *APIError {
	return &APIError{
		Code:       "BACKEND_ERROR",
		Message:    fmt.Sprintf("backend returned status %d", status),
		HTTPStatus: status,
	}
}
